//go:build !linux

package pipewire

// IsNativeAvailable reports whether libpipewire and libgopw could be loaded.
// PipeWire is only supported on Linux.
func IsNativeAvailable() bool { return false }

// NativeLoadError returns why the native backend is unavailable.
func NativeLoadError() error { return ErrLibraryUnavailable }
