package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BodyWithGeometry(t *testing.T) {
	b := NewBuilder()
	b.Material("steel", "Steel")
	body := b.Body("box", "Box", "")
	geom := b.Geometry("box-shape", "", "box", "steel")

	doc := b.Document()
	owner, ok := doc.FrameOwner(FrameID("box"))
	require.True(t, ok)
	assert.Equal(t, body, owner)

	geoms := doc.BodyGeometries(body)
	require.Len(t, geoms, 1)
	assert.Equal(t, geom, geoms[0].ID)
	assert.Equal(t, ID("steel"), geoms[0].Material)

	f, ok := doc.Frame(geoms[0].Frame)
	require.True(t, ok)
	assert.Equal(t, FrameID("box"), f.Parent)
}

func TestBuilder_DuplicateKeyPanics(t *testing.T) {
	b := NewBuilder()
	b.Material("steel", "Steel")
	assert.Panics(t, func() { b.Material("steel", "Again") })
}
