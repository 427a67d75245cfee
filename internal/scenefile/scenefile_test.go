package scenefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/simgraph/internal/entity"
)

func TestLoad_RigYAML(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "rig.yaml"))
	require.NoError(t, err)

	assert.Len(t, doc.Frames(), 6, "one declared frame plus one per body and geometry")
	assert.Len(t, doc.Bodies(), 2)
	assert.Len(t, doc.Geometries(), 3)
	assert.Len(t, doc.Materials(), 2)
	assert.Len(t, doc.ContactMaterials(), 1)
	require.Len(t, doc.Constraints(), 1)

	base, ok := doc.Body(entity.KeyID("base"))
	require.True(t, ok)
	assert.Equal(t, "Base", base.Name)
	assert.Equal(t, entity.MotionStatic, base.MotionControl)
	assert.Equal(t, 10.0, base.Mass)

	arm, ok := doc.Body(entity.KeyID("arm"))
	require.True(t, ok)
	assert.Equal(t, entity.MotionDynamics, arm.MotionControl, "motion control defaults to dynamics")
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, arm.AngularVelocity)

	armFrame, ok := doc.Frame(arm.Frame)
	require.True(t, ok)
	assert.Equal(t, entity.KeyID("rig"), armFrame.Parent)

	capsule, ok := doc.Geometry(entity.KeyID("arm-capsule"))
	require.True(t, ok)
	assert.Equal(t, arm.ID, capsule.Body)
	assert.Equal(t, entity.KeyID("ice"), capsule.Material)
	assert.True(t, capsule.CollisionsEnabled)
	capsuleFrame, ok := doc.Frame(capsule.Frame)
	require.True(t, ok)
	assert.Equal(t, arm.Frame, capsuleFrame.Parent, "attached geometry frames sit under the body frame")

	world := doc.WorldTransform(capsule.Frame)
	assert.InDelta(t, 1.0, world.Position.X(), 1e-9)
	assert.InDelta(t, 1.0, world.Position.Z(), 1e-9)

	floor, ok := doc.Geometry(entity.KeyID("floor"))
	require.True(t, ok)
	assert.Equal(t, entity.Nil, floor.Body)
	assert.False(t, floor.CollisionsEnabled)
	require.Len(t, floor.Shapes, 1)
	assert.Equal(t, entity.ShapePlane, floor.Shapes[0].Type)

	joint := doc.Constraints()[0]
	assert.Equal(t, [2]entity.ID{base.ID, arm.ID}, joint.Bodies)
	assert.True(t, joint.Enabled)

	cm, ok := doc.ContactMaterial(entity.KeyID("ice"), entity.KeyID("steel"))
	require.True(t, ok)
	assert.Equal(t, "SteelIce", cm.Name)
}

func TestLoad_CUEMatchesYAML(t *testing.T) {
	fromYAML, err := Load(filepath.Join("testdata", "rig.yaml"))
	require.NoError(t, err)
	fromCUE, err := Load(filepath.Join("testdata", "rig.cue"))
	require.NoError(t, err)

	assert.Equal(t, fromYAML.Frames(), fromCUE.Frames())
	assert.Equal(t, fromYAML.Bodies(), fromCUE.Bodies())
	assert.Equal(t, fromYAML.Geometries(), fromCUE.Geometries())
	assert.Equal(t, fromYAML.Constraints(), fromCUE.Constraints())
	assert.Equal(t, fromYAML.Materials(), fromCUE.Materials())
	assert.Equal(t, fromYAML.ContactMaterials(), fromCUE.ContactMaterials())
}

func TestDecodeYAML_Empty(t *testing.T) {
	doc, err := DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Bodies())
	assert.Empty(t, doc.Frames())
}

func TestDecodeYAML_UnknownField(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("bodies:\n  - id: a\n    colour: red\n"))
	require.Error(t, err)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Message, "colour")
}

func TestDecodeYAML_UUIDKeysPassThrough(t *testing.T) {
	const id = "0190a5b2-7c3d-7e4f-8a1b-2c3d4e5f6a7b"
	doc, err := DecodeYAML(strings.NewReader("materials:\n  - id: " + id + "\n"))
	require.NoError(t, err)

	require.Len(t, doc.Materials(), 1)
	assert.Equal(t, id, doc.Materials()[0].ID.String())
}

func TestDecodeYAML_BuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			name:  "missing id",
			input: "materials:\n  - name: Steel\n",
			field: "materials[0].id",
		},
		{
			name:  "duplicate id",
			input: "bodies:\n  - id: a\n  - id: a\n",
			field: "bodies[1]",
		},
		{
			name:  "short rotation",
			input: "frames:\n  - id: f\n    rotation: [1, 0]\n",
			field: "frames[0].rotation",
		},
		{
			name:  "long position",
			input: "bodies:\n  - id: a\n    position: [1, 2, 3, 4]\n",
			field: "bodies[0].position",
		},
		{
			name:  "contact material pair",
			input: "contact_materials:\n  - id: c\n    materials: [steel]\n",
			field: "contact_materials[0].materials",
		},
		{
			name:  "three constraint bodies",
			input: "constraints:\n  - id: c\n    type: lock\n    bodies: [a, b, c]\n",
			field: "constraints[0].bodies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(tt.input))
			require.Error(t, err)

			var de *DecodeError
			require.True(t, errors.As(err, &de), "got %T: %v", err, err)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestDecodeYAML_ParentResolvesToEntityFrame(t *testing.T) {
	input := `
bodies:
  - id: chassis
geometries:
  - id: sensor
    parent: chassis
    position: [0, 0, 2]
`
	doc, err := DecodeYAML(strings.NewReader(input))
	require.NoError(t, err)

	sensor, ok := doc.Geometry(entity.KeyID("sensor"))
	require.True(t, ok)
	assert.Equal(t, entity.Nil, sensor.Body, "parent alone does not attach to the body")

	frame, ok := doc.Frame(sensor.Frame)
	require.True(t, ok)
	chassis, _ := doc.Body(entity.KeyID("chassis"))
	assert.Equal(t, chassis.Frame, frame.Parent)
}

func TestDecodeCUE_SyntaxErrorPosition(t *testing.T) {
	_, err := DecodeCUE("bad.cue", []byte("name: \"x\"\nbodies: [{id: \"a\",,}]\n"))
	require.Error(t, err)

	var de *DecodeError
	require.True(t, errors.As(err, &de), "got %T: %v", err, err)
	require.True(t, de.Pos.IsValid())
	assert.Equal(t, "bad.cue", de.Pos.Filename())
	assert.Equal(t, 2, de.Pos.Line())
	assert.Contains(t, err.Error(), "bad.cue:2:")
}

func TestDecodeCUE_SchemaViolations(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown field", input: `bodies: [{id: "a", colour: "red"}]`},
		{name: "wrong type", input: `bodies: [{id: "a", mass: "heavy"}]`},
		{name: "bad enum", input: `bodies: [{id: "a", motion_control: "flying"}]`},
		{name: "negative mass", input: `bodies: [{id: "a", mass: -1}]`},
		{name: "empty id", input: `materials: [{id: ""}]`},
		{name: "bad vector", input: `frames: [{id: "f", position: [1, 2]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCUE("doc.cue", []byte(tt.input))
			require.Error(t, err)

			var de *DecodeError
			assert.True(t, errors.As(err, &de), "got %T: %v", err, err)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("scene.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrSourceUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.yaml"))
	assert.True(t, Supported("a.YML"))
	assert.True(t, Supported("a.cue"))
	assert.False(t, Supported("a.db"))
	assert.False(t, Supported("a"))
}
