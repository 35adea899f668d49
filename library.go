package pipewire

import (
	"sync"
	"sync/atomic"
)

// CoreCallbacks holds native function pointers for a core event table.
// Zero entries are left unset in the table.
type CoreCallbacks struct {
	Done  uintptr // void (*)(void *data, uint32_t id, int seq)
	Error uintptr // void (*)(void *data, uint32_t id, int seq, int res, const char *msg)
}

// RegistryCallbacks holds native function pointers for a registry event table.
type RegistryCallbacks struct {
	Global       uintptr // void (*)(void *data, uint32_t id, uint32_t perms, const char *type, uint32_t version, const struct spa_dict *props)
	GlobalRemove uintptr // void (*)(void *data, uint32_t id)
}

// Library is the primitive surface of libpipewire used by Client and
// Session. Implementations forward directly to the native library and never
// validate handles; that is the caller's job.
type Library interface {
	// CreateObject asks the factory to create an object of the given
	// interface type. It returns 0 on failure.
	CreateObject(core Core, factory, typ string, version uint32, props *Properties) Proxy
	// CoreSync starts a sync for seq on object id and returns the
	// sequence number or a negative errno.
	CoreSync(core Core, id uint32, seq int) int
	ProxyDestroy(proxy Proxy)
	CoreAddListener(core Core, hook Hook, events CoreEvents, data uintptr)
	RegistryAddListener(registry Registry, hook Hook, events RegistryEvents, data uintptr)

	Init()
	ThreadLoopNew(name string) ThreadLoop
	ThreadLoopStart(loop ThreadLoop) int
	ThreadLoopStop(loop ThreadLoop)
	ThreadLoopLock(loop ThreadLoop)
	ThreadLoopUnlock(loop ThreadLoop)
	ThreadLoopDestroy(loop ThreadLoop)
	ContextNew(loop ThreadLoop) Context
	ContextConnect(ctx Context, props *Properties) Core
	ContextDestroy(ctx Context)
	CoreDisconnect(core Core) int
	CoreGetRegistry(core Core, version uint32) Registry

	HookNew() Hook
	HookFree(hook Hook)
	CoreEventsNew(cb CoreCallbacks) CoreEvents
	RegistryEventsNew(cb RegistryCallbacks) RegistryEvents
	EventsFree(events uintptr)
}

// libraryRegistry holds the registered native backend.
type libraryRegistry struct {
	lib Library
	mu  sync.RWMutex
}

var (
	globalLibrary    = &libraryRegistry{}
	libraryAvailable atomic.Bool
)

// RegisterLibrary registers the native backend. Backends call it from init
// once their shared libraries are loaded.
func RegisterLibrary(lib Library) {
	globalLibrary.mu.Lock()
	defer globalLibrary.mu.Unlock()
	globalLibrary.lib = lib
	libraryAvailable.Store(lib != nil)
}

// DefaultLibrary returns the registered native backend, or
// ErrLibraryUnavailable.
func DefaultLibrary() (Library, error) {
	globalLibrary.mu.RLock()
	defer globalLibrary.mu.RUnlock()
	if globalLibrary.lib == nil {
		return nil, ErrLibraryUnavailable
	}
	return globalLibrary.lib, nil
}

// Available reports whether a native backend is usable at runtime.
func Available() bool {
	return libraryAvailable.Load()
}
