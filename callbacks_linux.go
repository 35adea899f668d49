//go:build linux

package pipewire

import (
	"sync"

	"github.com/ebitengine/purego"
)

// Native trampolines shared by every session. purego callbacks are never
// released, so they are created once and dispatch on the data token.
var (
	trampolineOnce    sync.Once
	coreCallbacks     CoreCallbacks
	registryCallbacks RegistryCallbacks
)

func initTrampolines() {
	trampolineOnce.Do(func() {
		coreCallbacks = CoreCallbacks{
			Done: purego.NewCallback(func(data uintptr, id uint32, seq int32) {
				if s := lookupSession(data); s != nil {
					s.handleDone(id, int(seq))
				}
			}),
			Error: purego.NewCallback(func(data uintptr, id uint32, seq int32, res int32, msg uintptr) {
				if s := lookupSession(data); s != nil {
					s.handleError(id, int(seq), int(res), cString(msg))
				}
			}),
		}
		registryCallbacks = RegistryCallbacks{
			Global: purego.NewCallback(func(data uintptr, id, permissions uint32, typ uintptr, version uint32, props uintptr) {
				if s := lookupSession(data); s != nil {
					s.handleGlobal(Global{
						ID:          id,
						Permissions: permissions,
						Type:        cString(typ),
						Version:     version,
						Props:       propertiesFromDict(props),
					})
				}
			}),
			GlobalRemove: purego.NewCallback(func(data uintptr, id uint32) {
				if s := lookupSession(data); s != nil {
					s.handleGlobalRemove(id)
				}
			}),
		}
	})
}

func nativeCoreCallbacks() CoreCallbacks {
	initTrampolines()
	return coreCallbacks
}

func nativeRegistryCallbacks() RegistryCallbacks {
	initTrampolines()
	return registryCallbacks
}
