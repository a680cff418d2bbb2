package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/assets/texture"
)

func TestResolutionFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want float64
	}{
		{"hero.png", 1},
		{"hero@2x.png", 2},
		{"img/hero@0.5x.png", 0.5},
		{"hero@.75x.webp", 0.75},
		{"user@example.com/a.png", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolutionFromURL(tt.url, 1), tt.url)
	}
}

func TestMetadataFingerprint(t *testing.T) {
	nearest := texture.ScaleNearest
	linear := texture.ScaleLinear

	tests := []struct {
		name string
		url  string
		meta Metadata
		want string
	}{
		{"default", "a.png", Metadata{}, ""},
		{"explicit linear", "a.png", Metadata{ScaleMode: &linear}, ""},
		{"nearest", "a.png", Metadata{ScaleMode: &nearest}, "#mode=nearest"},
		{"resolution", "a.png", Metadata{Resolution: 2}, "#res=2"},
		{"resolution matches url", "a@2x.png", Metadata{Resolution: 2}, ""},
		{"svg size", "a.svg", Metadata{ResourceOptions: ResourceOptions{Width: 10, Height: 20}}, "#w=10,h=20"},
		{"svg scale", "a.svg", Metadata{ResourceOptions: ResourceOptions{Scale: 0.5}}, "#s=0.5"},
		{"size hides scale", "a.svg", Metadata{ResourceOptions: ResourceOptions{Width: 10, Scale: 0.5}}, "#w=10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.meta.fingerprint(tt.url))
		})
	}
}

func TestMetadataSourceKey(t *testing.T) {
	nearest := texture.ScaleNearest
	assert.Equal(t, "a.png#default", Metadata{}.sourceKey("a.png"))
	assert.Equal(t, "a.png#mode=nearest", Metadata{ScaleMode: &nearest}.sourceKey("a.png"))
	assert.NotEqual(t, "a.png", Metadata{}.sourceKey("a.png"))
}

func TestMetadataYAML(t *testing.T) {
	var m Metadata
	err := yaml.Unmarshal([]byte(`
scaleMode: nearest
resolution: 2
resourceOptions:
  width: 128
  height: 256
`), &m)
	require.NoError(t, err)

	require.NotNil(t, m.ScaleMode)
	assert.Equal(t, texture.ScaleNearest, *m.ScaleMode)
	assert.Equal(t, 2.0, m.Resolution)
	assert.Equal(t, ResourceOptions{Width: 128, Height: 256}, m.ResourceOptions)

	err = yaml.Unmarshal([]byte("scaleMode: cubic"), &m)
	assert.Error(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "complete", StateComplete.String())
	assert.Equal(t, "errored", StateErrored.String())
	assert.Equal(t, "unknown", State(42).String())
}
