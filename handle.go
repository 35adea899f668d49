package pipewire

// Core is an open connection to the PipeWire daemon (struct pw_core).
type Core uintptr

// ThreadLoop is a PipeWire thread loop (struct pw_thread_loop).
type ThreadLoop uintptr

// Context is a PipeWire context (struct pw_context).
type Context uintptr

// Registry is the registry proxy of a core (struct pw_registry).
type Registry uintptr

// Proxy is a client-side representative of a server-side object
// (struct pw_proxy).
type Proxy uintptr

// Hook is caller-provided listener storage (struct spa_hook). The runtime
// owns the record once a listener is registered on it.
type Hook uintptr

// CoreEvents is a native core event table (struct pw_core_events).
type CoreEvents uintptr

// RegistryEvents is a native registry event table
// (struct pw_registry_events).
type RegistryEvents uintptr

func (c Core) IsNil() bool           { return c == 0 }
func (l ThreadLoop) IsNil() bool     { return l == 0 }
func (c Context) IsNil() bool        { return c == 0 }
func (r Registry) IsNil() bool       { return r == 0 }
func (p Proxy) IsNil() bool          { return p == 0 }
func (h Hook) IsNil() bool           { return h == 0 }
func (e CoreEvents) IsNil() bool     { return e == 0 }
func (e RegistryEvents) IsNil() bool { return e == 0 }

// Proxy reinterprets the registry as a generic proxy.
func (r Registry) Proxy() Proxy { return Proxy(r) }

// Well-known ids, factories and interface types.
const (
	// IDCore is the reserved id of the core object.
	IDCore uint32 = 0

	LinkFactory = "link-factory"

	TypeInterfaceLink = "PipeWire:Interface:Link"
	TypeInterfaceNode = "PipeWire:Interface:Node"
	TypeInterfacePort = "PipeWire:Interface:Port"

	VersionLink     uint32 = 3
	VersionRegistry uint32 = 3
)
