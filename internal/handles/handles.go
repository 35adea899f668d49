// Package handles maps Go values to integer tokens that can be handed to
// native code as callback user data.
//
// Go pointers cannot be stored in C memory, so a value is registered here and
// its token travels through C instead. Tokens start at 1; 0 is never issued
// and stays usable as a nil token.
package handles

import "sync"

var (
	mu      sync.RWMutex
	handles = make(map[uintptr]any)
	nextID  uintptr = 1
)

// Register stores v and returns its token. v stays reachable until
// Unregister is called.
func Register(v any) uintptr {
	mu.Lock()
	defer mu.Unlock()
	id := nextID
	nextID++
	handles[id] = v
	return id
}

// Lookup returns the value registered under id, or nil.
func Lookup(id uintptr) any {
	mu.RLock()
	defer mu.RUnlock()
	return handles[id]
}

// Unregister drops id. Unknown ids are ignored.
func Unregister(id uintptr) {
	mu.Lock()
	defer mu.Unlock()
	delete(handles, id)
}

// Count returns the number of registered tokens.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(handles)
}
