package pipewire

import "strings"

// Property keys used by the link adapters and the registry resolver.
const (
	KeyLinkOutputNode = "link.output.node"
	KeyLinkOutputPort = "link.output.port"
	KeyLinkInputNode  = "link.input.node"
	KeyLinkInputPort  = "link.input.port"
	KeyLinkPassive    = "link.passive"
	KeyObjectLinger   = "object.linger"

	KeyNodeName      = "node.name"
	KeyNodeID        = "node.id"
	KeyPortName      = "port.name"
	KeyPortDirection = "port.direction"
)

// PropItem is a single key/value entry.
type PropItem struct {
	Key   string
	Value string
}

// Properties is an ordered list of key/value pairs, the Go side of a
// struct spa_dict.
type Properties struct {
	Items []PropItem
}

// NewProperties returns an empty property list with room for n entries.
func NewProperties(n int) *Properties {
	return &Properties{Items: make([]PropItem, 0, n)}
}

// Set appends key=value.
func (p *Properties) Set(key, value string) {
	p.Items = append(p.Items, PropItem{Key: key, Value: value})
}

// Get returns the first value stored for key.
func (p *Properties) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, it := range p.Items {
		if it.Key == key {
			return it.Value, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

func (p *Properties) String() string {
	if p == nil {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, it := range p.Items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(it.Key)
		b.WriteByte('=')
		b.WriteString(it.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// ParseBool interprets s the way PipeWire interprets boolean properties:
// only "true" and "1" are true.
func ParseBool(s string) bool {
	return s == "true" || s == "1"
}
