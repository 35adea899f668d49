//go:build !linux

package pipewire

// No native event trampolines outside Linux; sessions never see events.
func nativeCoreCallbacks() CoreCallbacks         { return CoreCallbacks{} }
func nativeRegistryCallbacks() RegistryCallbacks { return RegistryCallbacks{} }
