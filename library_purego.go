//go:build linux && !cgo

// Native backend loading libpipewire-0.3 and libgopw at runtime with purego.
//
// libpipewire exports the lifecycle functions directly. The object, sync and
// listener calls are inline in the PipeWire headers, so they go through the
// libgopw shim built from clib/.

package pipewire

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ebitengine/purego"
)

var (
	pwOnce     sync.Once
	pwHandle   uintptr
	gopwHandle uintptr
	pwInitErr  error
	pwLoaded   bool
)

// libpipewire-0.3 function pointers
var (
	pwInit                func(argc, argv uintptr)
	pwThreadLoopNew       func(name string, props uintptr) uintptr
	pwThreadLoopStart     func(loop uintptr) int32
	pwThreadLoopStop      func(loop uintptr)
	pwThreadLoopLock      func(loop uintptr)
	pwThreadLoopUnlock    func(loop uintptr)
	pwThreadLoopDestroy   func(loop uintptr)
	pwThreadLoopGetLoop   func(loop uintptr) uintptr
	pwContextNew          func(loop, props, userDataSize uintptr) uintptr
	pwContextConnect      func(ctx, props, userDataSize uintptr) uintptr
	pwContextDestroy      func(ctx uintptr)
	pwCoreDisconnect      func(core uintptr) int32
	pwProxyDestroy        func(proxy uintptr)
	pwPropertiesNewString func(args string) uintptr
	pwPropertiesSet       func(props uintptr, key, value string) int32
	pwPropertiesFree      func(props uintptr)
)

// libgopw function pointers
var (
	gopwCoreCreateObject    func(core uintptr, factory, typ string, version uint32, props uintptr) uintptr
	gopwCoreSync            func(core uintptr, id uint32, seq int32) int32
	gopwCoreAddListener     func(core, hook, events, data uintptr)
	gopwRegistryAddListener func(registry, hook, events, data uintptr)
	gopwCoreGetRegistry     func(core uintptr, version uint32) uintptr
	gopwHookNew             func() uintptr
	gopwHookFree            func(hook uintptr)
	gopwCoreEventsNew       func(done, errorFn uintptr) uintptr
	gopwRegistryEventsNew   func(global, globalRemove uintptr) uintptr
	gopwEventsFree          func(events uintptr)
)

// loadPipeWire loads both shared libraries once.
func loadPipeWire() error {
	pwOnce.Do(func() {
		pwInitErr = loadPipeWireLibs()
		if pwInitErr == nil {
			pwLoaded = true
		}
	})
	return pwInitErr
}

func loadPipeWireLibs() error {
	handle, err := dlopenFirst([]string{"libpipewire-0.3.so.0", "libpipewire-0.3.so"})
	if err != nil {
		return fmt.Errorf("failed to load libpipewire-0.3: %w", err)
	}
	pwHandle = handle

	shim, err := dlopenFirst(getGopwLibPaths())
	if err != nil {
		purego.Dlclose(pwHandle)
		return fmt.Errorf("failed to load libgopw: %w", err)
	}
	gopwHandle = shim

	if err := loadPipeWireSymbols(); err != nil {
		purego.Dlclose(gopwHandle)
		purego.Dlclose(pwHandle)
		return err
	}
	return nil
}

func dlopenFirst(paths []string) (uintptr, error) {
	var lastErr error
	for _, path := range paths {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return handle, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return 0, lastErr
	}
	return 0, errors.New("not found in any standard location")
}

func getGopwLibPaths() []string {
	const libName = "libgopw.so"
	var paths []string

	// Environment variable overrides
	if envPath := os.Getenv(EnvLibPath); envPath != "" {
		paths = append(paths, envPath)
	}
	if envPath := os.Getenv(EnvSDKLibPath); envPath != "" {
		paths = append(paths, filepath.Join(envPath, libName))
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, libName),
			filepath.Join(exeDir, "..", "lib", libName),
		)
	}

	paths = append(paths, buildDirCandidates(libName)...)

	return append(paths,
		libName,
		"/usr/local/lib/"+libName,
		"/usr/lib/"+libName,
	)
}

// buildDirCandidates lists dir/build/name for the working directory and
// each of its parents, nearest first, so tests and examples find the shim
// built by clib/Makefile.
func buildDirCandidates(name string) []string {
	dir, err := os.Getwd()
	if err != nil {
		return nil
	}
	var out []string
	for {
		out = append(out, filepath.Join(dir, "build", name))
		parent := filepath.Dir(dir)
		if parent == dir {
			return out
		}
		dir = parent
	}
}

// requiredSymbols is checked before RegisterLibFunc, which panics on a
// missing symbol.
var requiredSymbols = map[*uintptr][]string{
	&pwHandle: {
		"pw_init", "pw_thread_loop_new", "pw_thread_loop_start",
		"pw_thread_loop_stop", "pw_thread_loop_lock", "pw_thread_loop_unlock",
		"pw_thread_loop_destroy", "pw_thread_loop_get_loop", "pw_context_new",
		"pw_context_connect", "pw_context_destroy", "pw_core_disconnect",
		"pw_proxy_destroy", "pw_properties_new_string", "pw_properties_set",
		"pw_properties_free",
	},
	&gopwHandle: {
		"gopw_core_create_object", "gopw_core_sync", "gopw_core_add_listener",
		"gopw_registry_add_listener", "gopw_core_get_registry", "gopw_hook_new",
		"gopw_hook_free", "gopw_core_events_new", "gopw_registry_events_new",
		"gopw_events_free",
	},
}

func loadPipeWireSymbols() error {
	for handle, names := range requiredSymbols {
		for _, name := range names {
			if _, err := purego.Dlsym(*handle, name); err != nil {
				return fmt.Errorf("missing symbol %s: %w", name, err)
			}
		}
	}

	purego.RegisterLibFunc(&pwInit, pwHandle, "pw_init")
	purego.RegisterLibFunc(&pwThreadLoopNew, pwHandle, "pw_thread_loop_new")
	purego.RegisterLibFunc(&pwThreadLoopStart, pwHandle, "pw_thread_loop_start")
	purego.RegisterLibFunc(&pwThreadLoopStop, pwHandle, "pw_thread_loop_stop")
	purego.RegisterLibFunc(&pwThreadLoopLock, pwHandle, "pw_thread_loop_lock")
	purego.RegisterLibFunc(&pwThreadLoopUnlock, pwHandle, "pw_thread_loop_unlock")
	purego.RegisterLibFunc(&pwThreadLoopDestroy, pwHandle, "pw_thread_loop_destroy")
	purego.RegisterLibFunc(&pwThreadLoopGetLoop, pwHandle, "pw_thread_loop_get_loop")
	purego.RegisterLibFunc(&pwContextNew, pwHandle, "pw_context_new")
	purego.RegisterLibFunc(&pwContextConnect, pwHandle, "pw_context_connect")
	purego.RegisterLibFunc(&pwContextDestroy, pwHandle, "pw_context_destroy")
	purego.RegisterLibFunc(&pwCoreDisconnect, pwHandle, "pw_core_disconnect")
	purego.RegisterLibFunc(&pwProxyDestroy, pwHandle, "pw_proxy_destroy")
	purego.RegisterLibFunc(&pwPropertiesNewString, pwHandle, "pw_properties_new_string")
	purego.RegisterLibFunc(&pwPropertiesSet, pwHandle, "pw_properties_set")
	purego.RegisterLibFunc(&pwPropertiesFree, pwHandle, "pw_properties_free")

	purego.RegisterLibFunc(&gopwCoreCreateObject, gopwHandle, "gopw_core_create_object")
	purego.RegisterLibFunc(&gopwCoreSync, gopwHandle, "gopw_core_sync")
	purego.RegisterLibFunc(&gopwCoreAddListener, gopwHandle, "gopw_core_add_listener")
	purego.RegisterLibFunc(&gopwRegistryAddListener, gopwHandle, "gopw_registry_add_listener")
	purego.RegisterLibFunc(&gopwCoreGetRegistry, gopwHandle, "gopw_core_get_registry")
	purego.RegisterLibFunc(&gopwHookNew, gopwHandle, "gopw_hook_new")
	purego.RegisterLibFunc(&gopwHookFree, gopwHandle, "gopw_hook_free")
	purego.RegisterLibFunc(&gopwCoreEventsNew, gopwHandle, "gopw_core_events_new")
	purego.RegisterLibFunc(&gopwRegistryEventsNew, gopwHandle, "gopw_registry_events_new")
	purego.RegisterLibFunc(&gopwEventsFree, gopwHandle, "gopw_events_free")

	return nil
}

// IsNativeAvailable reports whether libpipewire and libgopw could be loaded.
func IsNativeAvailable() bool {
	if err := loadPipeWire(); err != nil {
		return false
	}
	return pwLoaded
}

// NativeLoadError returns why the native backend is unavailable, or nil.
func NativeLoadError() error {
	return loadPipeWire()
}

// nativeLibrary implements Library over the loaded function pointers.
type nativeLibrary struct{}

// newNativeProperties copies props into a pw_properties owned by the caller.
func newNativeProperties(props *Properties) uintptr {
	p := pwPropertiesNewString("")
	if p == 0 || props == nil {
		return p
	}
	for _, it := range props.Items {
		pwPropertiesSet(p, it.Key, it.Value)
	}
	return p
}

func (nativeLibrary) CreateObject(core Core, factory, typ string, version uint32, props *Properties) Proxy {
	// struct pw_properties starts with its struct spa_dict.
	dict := newNativeProperties(props)
	if dict != 0 {
		defer pwPropertiesFree(dict)
	}
	return Proxy(gopwCoreCreateObject(uintptr(core), factory, typ, version, dict))
}

func (nativeLibrary) CoreSync(core Core, id uint32, seq int) int {
	return int(gopwCoreSync(uintptr(core), id, int32(seq)))
}

func (nativeLibrary) ProxyDestroy(proxy Proxy) { pwProxyDestroy(uintptr(proxy)) }

func (nativeLibrary) CoreAddListener(core Core, hook Hook, events CoreEvents, data uintptr) {
	gopwCoreAddListener(uintptr(core), uintptr(hook), uintptr(events), data)
}

func (nativeLibrary) RegistryAddListener(registry Registry, hook Hook, events RegistryEvents, data uintptr) {
	gopwRegistryAddListener(uintptr(registry), uintptr(hook), uintptr(events), data)
}

func (nativeLibrary) Init() { pwInit(0, 0) }

func (nativeLibrary) ThreadLoopNew(name string) ThreadLoop {
	return ThreadLoop(pwThreadLoopNew(name, 0))
}

func (nativeLibrary) ThreadLoopStart(loop ThreadLoop) int {
	return int(pwThreadLoopStart(uintptr(loop)))
}

func (nativeLibrary) ThreadLoopStop(loop ThreadLoop)    { pwThreadLoopStop(uintptr(loop)) }
func (nativeLibrary) ThreadLoopLock(loop ThreadLoop)    { pwThreadLoopLock(uintptr(loop)) }
func (nativeLibrary) ThreadLoopUnlock(loop ThreadLoop)  { pwThreadLoopUnlock(uintptr(loop)) }
func (nativeLibrary) ThreadLoopDestroy(loop ThreadLoop) { pwThreadLoopDestroy(uintptr(loop)) }

func (nativeLibrary) ContextNew(loop ThreadLoop) Context {
	return Context(pwContextNew(pwThreadLoopGetLoop(uintptr(loop)), 0, 0))
}

// ContextConnect hands the properties over to the core.
func (nativeLibrary) ContextConnect(ctx Context, props *Properties) Core {
	return Core(pwContextConnect(uintptr(ctx), newNativeProperties(props), 0))
}

func (nativeLibrary) ContextDestroy(ctx Context) { pwContextDestroy(uintptr(ctx)) }

func (nativeLibrary) CoreDisconnect(core Core) int {
	return int(pwCoreDisconnect(uintptr(core)))
}

func (nativeLibrary) CoreGetRegistry(core Core, version uint32) Registry {
	return Registry(gopwCoreGetRegistry(uintptr(core), version))
}

func (nativeLibrary) HookNew() Hook      { return Hook(gopwHookNew()) }
func (nativeLibrary) HookFree(hook Hook) { gopwHookFree(uintptr(hook)) }

func (nativeLibrary) CoreEventsNew(cb CoreCallbacks) CoreEvents {
	return CoreEvents(gopwCoreEventsNew(cb.Done, cb.Error))
}

func (nativeLibrary) RegistryEventsNew(cb RegistryCallbacks) RegistryEvents {
	return RegistryEvents(gopwRegistryEventsNew(cb.Global, cb.GlobalRemove))
}

func (nativeLibrary) EventsFree(events uintptr) { gopwEventsFree(events) }

func init() {
	if loadPipeWire() == nil {
		RegisterLibrary(nativeLibrary{})
	}
}
