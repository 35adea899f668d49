package pipewire

import (
	"sync"
)

type createCall struct {
	core    Core
	factory string
	typ     string
	version uint32
	props   *Properties
}

type syncCall struct {
	core Core
	id   uint32
	seq  int
}

type listenerCall struct {
	target uintptr
	hook   Hook
	events uintptr
	data   uintptr
}

// fakeLibrary records every call and simulates the loop thread. When
// autoDone is set each CoreSync is answered from a goroutine holding the
// loop lock, after announcing globals.
type fakeLibrary struct {
	mu  sync.Mutex
	ops []string

	createProxy Proxy
	creates     []createCall

	syncResult int
	nextSeq    int
	syncs      []syncCall

	destroyed         []Proxy
	coreListeners     []listenerCall
	registryListeners []listenerCall

	loopResult  ThreadLoop
	startResult int
	coreResult  Core
	regResult   Registry

	autoDone  bool
	syncError int
	globals   []Global

	loopMu sync.Mutex
	wg     sync.WaitGroup
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		createProxy: 100,
		loopResult:  1,
		coreResult:  3,
		regResult:   4,
	}
}

func (f *fakeLibrary) record(op string) {
	f.mu.Lock()
	f.ops = append(f.ops, op)
	f.mu.Unlock()
}

func (f *fakeLibrary) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

func (f *fakeLibrary) CreateObject(core Core, factory, typ string, version uint32, props *Properties) Proxy {
	f.record("create_object")
	f.mu.Lock()
	f.creates = append(f.creates, createCall{core, factory, typ, version, props})
	f.mu.Unlock()
	return f.createProxy
}

func (f *fakeLibrary) CoreSync(core Core, id uint32, seq int) int {
	f.record("core_sync")
	f.mu.Lock()
	f.syncs = append(f.syncs, syncCall{core, id, seq})
	res := f.syncResult
	if res == 0 {
		f.nextSeq++
		res = f.nextSeq
	}
	var data uintptr
	if len(f.coreListeners) > 0 {
		data = f.coreListeners[len(f.coreListeners)-1].data
	}
	auto, syncErr, globals := f.autoDone, f.syncError, f.globals
	f.mu.Unlock()

	if auto && res >= 0 {
		f.wg.Add(1)
		go func() {
			defer f.wg.Done()
			f.loopMu.Lock()
			defer f.loopMu.Unlock()
			s := lookupSession(data)
			if s == nil {
				return
			}
			for _, g := range globals {
				s.handleGlobal(g)
			}
			if syncErr != 0 {
				s.handleError(IDCore, res, syncErr, "sync failed")
				return
			}
			s.handleDone(IDCore, res)
		}()
	}
	return res
}

func (f *fakeLibrary) ProxyDestroy(proxy Proxy) {
	f.record("proxy_destroy")
	f.mu.Lock()
	f.destroyed = append(f.destroyed, proxy)
	f.mu.Unlock()
}

func (f *fakeLibrary) CoreAddListener(core Core, hook Hook, events CoreEvents, data uintptr) {
	f.record("core_add_listener")
	f.mu.Lock()
	f.coreListeners = append(f.coreListeners, listenerCall{uintptr(core), hook, uintptr(events), data})
	f.mu.Unlock()
}

func (f *fakeLibrary) RegistryAddListener(registry Registry, hook Hook, events RegistryEvents, data uintptr) {
	f.record("registry_add_listener")
	f.mu.Lock()
	f.registryListeners = append(f.registryListeners, listenerCall{uintptr(registry), hook, uintptr(events), data})
	f.mu.Unlock()
}

func (f *fakeLibrary) Init() { f.record("init") }

func (f *fakeLibrary) ThreadLoopNew(name string) ThreadLoop {
	f.record("thread_loop_new")
	return f.loopResult
}

func (f *fakeLibrary) ThreadLoopStart(loop ThreadLoop) int {
	f.record("thread_loop_start")
	return f.startResult
}

func (f *fakeLibrary) ThreadLoopStop(loop ThreadLoop) { f.record("thread_loop_stop") }

func (f *fakeLibrary) ThreadLoopLock(loop ThreadLoop) { f.loopMu.Lock() }

func (f *fakeLibrary) ThreadLoopUnlock(loop ThreadLoop) { f.loopMu.Unlock() }

func (f *fakeLibrary) ThreadLoopDestroy(loop ThreadLoop) { f.record("thread_loop_destroy") }

func (f *fakeLibrary) ContextNew(loop ThreadLoop) Context {
	f.record("context_new")
	return 2
}

func (f *fakeLibrary) ContextConnect(ctx Context, props *Properties) Core {
	f.record("context_connect")
	return f.coreResult
}

func (f *fakeLibrary) ContextDestroy(ctx Context) { f.record("context_destroy") }

func (f *fakeLibrary) CoreDisconnect(core Core) int {
	f.record("core_disconnect")
	return 0
}

func (f *fakeLibrary) CoreGetRegistry(core Core, version uint32) Registry {
	f.record("core_get_registry")
	return f.regResult
}

func (f *fakeLibrary) HookNew() Hook {
	f.record("hook_new")
	f.mu.Lock()
	defer f.mu.Unlock()
	return Hook(10 + len(f.ops))
}

func (f *fakeLibrary) HookFree(hook Hook) { f.record("hook_free") }

func (f *fakeLibrary) CoreEventsNew(cb CoreCallbacks) CoreEvents {
	f.record("core_events_new")
	return 7
}

func (f *fakeLibrary) RegistryEventsNew(cb RegistryCallbacks) RegistryEvents {
	f.record("registry_events_new")
	return 8
}

func (f *fakeLibrary) EventsFree(events uintptr) { f.record("events_free") }
