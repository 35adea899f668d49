package pipewire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"1", true},
		{" 1", false},
		{"+1", false},
		{"1abc", false},
		{"01", false},
		{"1.0", false},
		{"", false},
		{"0", false},
		{"2", false},
		{"-1", false},
		{"TRUE", false},
		{"True", false},
		{"yes", false},
		{"false", false},
		{"4294967297", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBool(tt.in))
		})
	}
}

func TestLinkProperties(t *testing.T) {
	p := LinkProperties(1, 2, 3, 4, false)
	assert.Equal(t, 5, p.Len())
	assert.Equal(t, "{link.output.node=1 link.output.port=2 link.input.node=3 link.input.port=4 object.linger=true}", p.String())

	_, ok := p.Get(KeyLinkPassive)
	assert.False(t, ok)

	p = LinkProperties(1, 2, 3, 4, true)
	assert.Equal(t, 6, p.Len())
	v, ok := p.Get(KeyLinkPassive)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestPropertiesNil(t *testing.T) {
	var p *Properties
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, "{}", p.String())
	_, ok := p.Get(KeyNodeName)
	assert.False(t, ok)
}

func TestHandleNil(t *testing.T) {
	assert.True(t, Core(0).IsNil())
	assert.False(t, Core(1).IsNil())
	assert.True(t, ThreadLoop(0).IsNil())
	assert.True(t, Registry(0).IsNil())
	assert.Equal(t, Proxy(7), Registry(7).Proxy())
}
