//go:build linux && cgo

// Native backend linking libpipewire-0.3 and libgopw with cgo.

package pipewire

/*
#cgo pkg-config: libpipewire-0.3
#cgo CFLAGS: -I${SRCDIR}/clib
#cgo LDFLAGS: -L${SRCDIR}/build -lgopw -Wl,-rpath,${SRCDIR}/build

#include <stdlib.h>
#include <pipewire/pipewire.h>
#include "gopw.h"
*/
import "C"

import "unsafe"

// IsNativeAvailable reports whether libpipewire and libgopw could be loaded.
// With CGO this is always true since they link at compile time.
func IsNativeAvailable() bool {
	return true
}

// NativeLoadError returns why the native backend is unavailable, or nil.
func NativeLoadError() error {
	return nil
}

// nativeLibrary implements Library over the linked libraries.
type nativeLibrary struct{}

func ptr(h uintptr) unsafe.Pointer { return unsafe.Pointer(h) }

// newNativeProperties copies props into a pw_properties owned by the caller.
func newNativeProperties(props *Properties) *C.struct_pw_properties {
	empty := C.CString("")
	defer C.free(unsafe.Pointer(empty))

	p := C.pw_properties_new_string(empty)
	if p == nil || props == nil {
		return p
	}
	for _, it := range props.Items {
		key := C.CString(it.Key)
		value := C.CString(it.Value)
		C.pw_properties_set(p, key, value)
		C.free(unsafe.Pointer(key))
		C.free(unsafe.Pointer(value))
	}
	return p
}

func (nativeLibrary) CreateObject(core Core, factory, typ string, version uint32, props *Properties) Proxy {
	cfactory := C.CString(factory)
	defer C.free(unsafe.Pointer(cfactory))
	ctype := C.CString(typ)
	defer C.free(unsafe.Pointer(ctype))

	p := newNativeProperties(props)
	if p != nil {
		defer C.pw_properties_free(p)
	}
	return Proxy(C.gopw_core_create_object(ptr(uintptr(core)), cfactory, ctype,
		C.uint32_t(version), unsafe.Pointer(p)))
}

func (nativeLibrary) CoreSync(core Core, id uint32, seq int) int {
	return int(C.gopw_core_sync(ptr(uintptr(core)), C.uint32_t(id), C.int(seq)))
}

func (nativeLibrary) ProxyDestroy(proxy Proxy) {
	C.pw_proxy_destroy((*C.struct_pw_proxy)(ptr(uintptr(proxy))))
}

func (nativeLibrary) CoreAddListener(core Core, hook Hook, events CoreEvents, data uintptr) {
	C.gopw_core_add_listener(ptr(uintptr(core)), ptr(uintptr(hook)), ptr(uintptr(events)), ptr(data))
}

func (nativeLibrary) RegistryAddListener(registry Registry, hook Hook, events RegistryEvents, data uintptr) {
	C.gopw_registry_add_listener(ptr(uintptr(registry)), ptr(uintptr(hook)), ptr(uintptr(events)), ptr(data))
}

func (nativeLibrary) Init() { C.pw_init(nil, nil) }

func (nativeLibrary) ThreadLoopNew(name string) ThreadLoop {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return ThreadLoop(unsafe.Pointer(C.pw_thread_loop_new(cname, nil)))
}

func threadLoop(loop ThreadLoop) *C.struct_pw_thread_loop {
	return (*C.struct_pw_thread_loop)(ptr(uintptr(loop)))
}

func (nativeLibrary) ThreadLoopStart(loop ThreadLoop) int {
	return int(C.pw_thread_loop_start(threadLoop(loop)))
}

func (nativeLibrary) ThreadLoopStop(loop ThreadLoop)    { C.pw_thread_loop_stop(threadLoop(loop)) }
func (nativeLibrary) ThreadLoopLock(loop ThreadLoop)    { C.pw_thread_loop_lock(threadLoop(loop)) }
func (nativeLibrary) ThreadLoopUnlock(loop ThreadLoop)  { C.pw_thread_loop_unlock(threadLoop(loop)) }
func (nativeLibrary) ThreadLoopDestroy(loop ThreadLoop) { C.pw_thread_loop_destroy(threadLoop(loop)) }

func (nativeLibrary) ContextNew(loop ThreadLoop) Context {
	l := C.pw_thread_loop_get_loop(threadLoop(loop))
	return Context(unsafe.Pointer(C.pw_context_new(l, nil, 0)))
}

// ContextConnect hands the properties over to the core.
func (nativeLibrary) ContextConnect(ctx Context, props *Properties) Core {
	c := C.pw_context_connect((*C.struct_pw_context)(ptr(uintptr(ctx))), newNativeProperties(props), 0)
	return Core(unsafe.Pointer(c))
}

func (nativeLibrary) ContextDestroy(ctx Context) {
	C.pw_context_destroy((*C.struct_pw_context)(ptr(uintptr(ctx))))
}

func (nativeLibrary) CoreDisconnect(core Core) int {
	return int(C.pw_core_disconnect((*C.struct_pw_core)(ptr(uintptr(core)))))
}

func (nativeLibrary) CoreGetRegistry(core Core, version uint32) Registry {
	return Registry(C.gopw_core_get_registry(ptr(uintptr(core)), C.uint32_t(version)))
}

func (nativeLibrary) HookNew() Hook      { return Hook(C.gopw_hook_new()) }
func (nativeLibrary) HookFree(hook Hook) { C.gopw_hook_free(ptr(uintptr(hook))) }

func (nativeLibrary) CoreEventsNew(cb CoreCallbacks) CoreEvents {
	return CoreEvents(C.gopw_core_events_new(ptr(cb.Done), ptr(cb.Error)))
}

func (nativeLibrary) RegistryEventsNew(cb RegistryCallbacks) RegistryEvents {
	return RegistryEvents(C.gopw_registry_events_new(ptr(cb.Global), ptr(cb.GlobalRemove)))
}

func (nativeLibrary) EventsFree(events uintptr) { C.gopw_events_free(ptr(events)) }

func init() {
	RegisterLibrary(nativeLibrary{})
}
