//go:build linux

package pipewire

import (
	"context"
	"runtime"
	"testing"
	"time"
	"unsafe"
)

func TestNativeAvailability(t *testing.T) {
	t.Logf("native backend available: %v (load error: %v)", IsNativeAvailable(), NativeLoadError())
}

func TestNativeSession(t *testing.T) {
	if !IsNativeAvailable() {
		t.Skip("libpipewire/libgopw not available")
	}
	lib, err := DefaultLibrary()
	if err != nil {
		t.Skipf("no native library registered: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := Connect(ctx, NewClient(lib), WithApplicationName("gopw-test"))
	if err != nil {
		t.Skipf("PipeWire daemon not reachable: %v", err)
	}
	defer s.Close()

	globals := s.Globals()
	if len(globals) == 0 {
		t.Fatal("expected registry globals after the initial roundtrip")
	}
	for _, g := range globals {
		if g.Type == "" {
			t.Errorf("global %d has no type", g.ID)
		}
	}

	if err := s.Roundtrip(ctx); err != nil {
		t.Fatalf("Roundtrip: %v", err)
	}
}

func TestPropertiesFromDict(t *testing.T) {
	key1, val1 := []byte("node.name\x00"), []byte("mic\x00")
	key2, val2 := []byte("node.id\x00"), []byte("30\x00")
	items := []spaDictItem{
		{key: uintptr(unsafe.Pointer(&key1[0])), value: uintptr(unsafe.Pointer(&val1[0]))},
		{key: uintptr(unsafe.Pointer(&key2[0])), value: uintptr(unsafe.Pointer(&val2[0]))},
	}
	d := spaDict{nItems: uint32(len(items)), items: uintptr(unsafe.Pointer(&items[0]))}

	p := propertiesFromDict(uintptr(unsafe.Pointer(&d)))
	runtime.KeepAlive(items)
	runtime.KeepAlive([][]byte{key1, val1, key2, val2})
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if v, _ := p.Get(KeyNodeName); v != "mic" {
		t.Errorf("node.name = %q, want mic", v)
	}
	if v, _ := p.Get(KeyNodeID); v != "30" {
		t.Errorf("node.id = %q, want 30", v)
	}
	if propertiesFromDict(0).Len() != 0 {
		t.Error("nil dict should give empty properties")
	}
	if cString(0) != "" {
		t.Error("nil string should be empty")
	}
}

func TestCString(t *testing.T) {
	s := []byte("PipeWire:Interface:Port\x00trailing")
	if got := cString(uintptr(unsafe.Pointer(&s[0]))); got != "PipeWire:Interface:Port" {
		t.Errorf("cString = %q", got)
	}

	long := make([]byte, maxCString+16)
	for i := range long {
		long[i] = 'a'
	}
	if got := cString(uintptr(unsafe.Pointer(&long[0]))); len(got) != maxCString {
		t.Errorf("unterminated string length = %d, want %d", len(got), maxCString)
	}
	runtime.KeepAlive(s)
	runtime.KeepAlive(long)
}
