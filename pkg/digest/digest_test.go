package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitylab/trident/pkg/profile"
)

func sampleMetadata() profile.Metadata {
	return profile.Metadata{
		Components: []profile.Component{
			profile.NewComponent(profile.ComponentMinecraft, "1.20.1"),
			profile.NewComponent(profile.ComponentFabric, "0.15.0"),
		},
		Layers: []profile.Layer{
			{Summary: "base", Enabled: true, Content: []string{"pkg:curseforge/1919@810"}},
			{Summary: "extras", Enabled: false, Content: []string{"pkg:m/X@1"}},
		},
	}
}

func TestDigest_Deterministic(t *testing.T) {
	m1 := sampleMetadata()
	m2 := sampleMetadata()
	assert.Equal(t, Digest(m1), Digest(m2))
}

func TestDigest_SensitiveToComponentVersion(t *testing.T) {
	base := sampleMetadata()
	changed := sampleMetadata()
	changed.Components[0].Version = "1.20.2"
	assert.NotEqual(t, Digest(base), Digest(changed))
}

func TestDigest_SensitiveToLayerEnabled(t *testing.T) {
	base := sampleMetadata()
	changed := sampleMetadata()
	changed.Layers[1].Enabled = true
	assert.NotEqual(t, Digest(base), Digest(changed))
}

func TestDigest_SensitiveToLayerContent(t *testing.T) {
	base := sampleMetadata()
	changed := sampleMetadata()
	changed.Layers[0].Content = append([]string{}, changed.Layers[0].Content...)
	changed.Layers[0].Content = append(changed.Layers[0].Content, "pkg:m/Y@1")
	assert.NotEqual(t, Digest(base), Digest(changed))
}

func TestDigest_SensitiveToLayerOrder(t *testing.T) {
	base := sampleMetadata()
	reordered := sampleMetadata()
	reordered.Layers[0], reordered.Layers[1] = reordered.Layers[1], reordered.Layers[0]
	assert.NotEqual(t, Digest(base), Digest(reordered))
}

func TestDigest_IncludesDisabledLayers(t *testing.T) {
	withDisabled := sampleMetadata()
	withoutDisabled := sampleMetadata()
	withoutDisabled.Layers = withoutDisabled.Layers[:1]
	assert.NotEqual(t, Digest(withDisabled), Digest(withoutDisabled))
}
