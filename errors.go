package pipewire

import (
	"errors"
	"fmt"
	"syscall"
)

// Errno is a negative errno code as returned by PipeWire calls.
type Errno int

var (
	// ErrInvalidArgument is returned when a required handle is nil.
	ErrInvalidArgument = Errno(-int(syscall.EINVAL))
	// ErrIO is returned when the library failed to create an object.
	ErrIO = Errno(-int(syscall.EIO))
	// ErrLibraryUnavailable is returned when no native backend could be loaded.
	ErrLibraryUnavailable = errors.New("pipewire: native library not available")
)

func (e Errno) Error() string {
	n := int(e)
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("pipewire: %s (%d)", syscall.Errno(n).Error(), int(e))
}

// Code returns the negative code of e.
func (e Errno) Code() int {
	if e > 0 {
		return -int(e)
	}
	return int(e)
}

// Is lets errors.Is match Errno values regardless of sign.
func (e Errno) Is(target error) bool {
	t, ok := target.(Errno)
	return ok && t.Code() == e.Code()
}

// Code maps err to a negative errno code: 0 for nil, the Errno code when err
// wraps one, -EIO otherwise.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var e Errno
	if errors.As(err, &e) {
		return e.Code()
	}
	return ErrIO.Code()
}

// resultError converts a raw library result into an error. Non-negative
// results are not errors.
func resultError(res int) error {
	if res >= 0 {
		return nil
	}
	return Errno(res)
}
