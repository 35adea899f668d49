//go:build linux

// Shared utilities for reading native memory handed to callbacks.

package pipewire

import "unsafe"

// maxCString bounds cString against unterminated input.
const maxCString = 4096

// cString copies the NUL-terminated string at p into Go memory.
func cString(p uintptr) string {
	if p == 0 {
		return ""
	}
	base := unsafe.Pointer(p)
	n := 0
	for n < maxCString && *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n))
}

// Layout of struct spa_dict and struct spa_dict_item.
type spaDictItem struct {
	key   uintptr
	value uintptr
}

type spaDict struct {
	flags  uint32
	nItems uint32
	items  uintptr
}

// propertiesFromDict copies a struct spa_dict into Go memory.
func propertiesFromDict(ptr uintptr) *Properties {
	if ptr == 0 {
		return NewProperties(0)
	}
	d := (*spaDict)(unsafe.Pointer(ptr))
	props := NewProperties(int(d.nItems))
	if d.nItems == 0 || d.items == 0 {
		return props
	}
	items := unsafe.Slice((*spaDictItem)(unsafe.Pointer(d.items)), d.nItems)
	for _, it := range items {
		props.Set(cString(it.key), cString(it.value))
	}
	return props
}
