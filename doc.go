// Package pipewire provides a small Go client for PipeWire link control,
// backed by libpipewire-0.3 and a native shim (libgopw).
//
// Key pieces include:
//   - Client: adapters for link creation, core sync, registry teardown and
//     listener registration
//   - Session: a connected core with its thread loop, registry globals and
//     roundtrip (sync and wait) support
//   - Library: the primitive surface the adapters forward to
//
// # Architecture
//
//	Client.CreateLink -> LinkProperties -> Library.CreateObject("link-factory")
//	Client.SyncCore   -> Library.CoreSync(IDCore, seq)
//	Session           -> ThreadLoop + Context + Core + Registry -> Client
//
// Handles (Core, ThreadLoop, Registry, Proxy, ...) are opaque tokens owned by
// the native runtime. They are never dereferenced in Go.
//
// # Native Libraries
//
// Bindings load libpipewire-0.3.so.0 and libgopw.so, built from clib/ into
// build/. Set GOPW_SDK_LIB_PATH to the directory containing libgopw.so, or
// GOPW_LIB_PATH to the file itself. By default the package uses purego
// (CGO_ENABLED=0). With CGO enabled it links against the same shim.
//
// # Configuration
//
// Links are created with object.linger=true. The link.passive flag comes
// from Config.Passive; ConfigFromEnv derives it from PIPEWIRE_LINK_PASSIVE.
package pipewire
