package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/pipewire"
)

const samplePlan = `
passive: true
links:
  - output: {node: 42, port: 57}
    input: {node: 48, port: 61}
  - output: "mic:capture_FL"
    input:
      name: "recorder:input_FL"
`

type linkCall struct{ outNode, outPort, inNode, inPort uint32 }

type fakeLinker struct {
	calls []linkCall
	err   error
}

func (f *fakeLinker) CreateLink(outNode, outPort, inNode, inPort uint32) error {
	f.calls = append(f.calls, linkCall{outNode, outPort, inNode, inPort})
	return f.err
}

type fakeResolver map[string][2]uint32

func (f fakeResolver) FindPort(node, port string, dir pipewire.Direction) (uint32, uint32, error) {
	ids, ok := f[node+":"+port+"/"+dir.String()]
	if !ok {
		return 0, 0, pipewire.ErrNotFound
	}
	return ids[0], ids[1], nil
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte(samplePlan))
	require.NoError(t, err)

	require.NotNil(t, p.Passive)
	assert.True(t, *p.Passive)
	require.Len(t, p.Links, 2)
	assert.Equal(t, Endpoint{Node: 42, Port: 57}, p.Links[0].Output)
	assert.Equal(t, Endpoint{Node: 48, Port: 61}, p.Links[0].Input)
	assert.Equal(t, "mic:capture_FL", p.Links[1].Output.Name)
	assert.Equal(t, "recorder:input_FL", p.Links[1].Input.Name)
	assert.Equal(t, "42:57 -> 48:61", p.Links[0].String())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing port", "links:\n  - output: {node: 1}\n    input: {node: 2, port: 3}\n"},
		{"bad name", "links:\n  - output: nocolon\n    input: {node: 2, port: 3}\n"},
		{"trailing colon", "links:\n  - output: {node: 1, port: 2}\n    input: \"node:\"\n"},
		{"not yaml", "links: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePlan), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, p.Links, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	p, err := Parse([]byte(samplePlan))
	require.NoError(t, err)

	linker := &fakeLinker{}
	resolver := fakeResolver{
		"mic:capture_FL/out":    {10, 11},
		"recorder:input_FL/in":  {20, 21},
		"recorder:input_FL/out": {99, 99},
		"mic:capture_FL/in":     {98, 98},
	}

	n, err := p.Apply(linker, resolver)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []linkCall{{42, 57, 48, 61}, {10, 11, 20, 21}}, linker.calls)
}

func TestApplyContinuesAfterFailure(t *testing.T) {
	p, err := Parse([]byte(samplePlan))
	require.NoError(t, err)

	linker := &fakeLinker{}
	n, err := p.Apply(linker, fakeResolver{})
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, pipewire.ErrNotFound)
	assert.Len(t, linker.calls, 1)

	linker = &fakeLinker{err: pipewire.ErrIO}
	n, err = p.Apply(linker, nil)
	assert.Equal(t, 0, n)
	assert.True(t, errors.Is(err, pipewire.ErrIO))
}
