package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/simgraph/internal/testutil"
	"github.com/roach88/simgraph/internal/tree"
)

func TestValidate_Text(t *testing.T) {
	stdout, _, err := execute(t, "validate", filepath.Join("testdata", "rig.yaml"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "✓ Scene valid")
	assert.Contains(t, stdout, "RigidBody        2")
	assert.Contains(t, stdout, "Geometry         3")
	assert.Contains(t, stdout, "constraint roots: 1")
}

func TestValidate_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "validate", filepath.Join("testdata", "rig.yaml"))
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, map[string]int{
		"Assembly":        1,
		"RigidBody":       2,
		"Geometry":        3,
		"Constraint":      1,
		"Material":        2,
		"ContactMaterial": 1,
	}, resp.Data.Nodes)
	assert.Equal(t, map[string]int{
		"generic":          2,
		"constraint":       1,
		"material":         2,
		"contact material": 1,
	}, resp.Data.Roots)
	assert.Empty(t, resp.Data.Diagnostics)
}

func TestValidate_ReportsDiagnostics(t *testing.T) {
	b := testutil.NewBuilder()
	b.FreeGeometry("g", "G", "", "unobtainium")
	db := packDocument(t, b)

	stdout, _, err := execute(t, "validate", db)
	require.NoError(t, err)

	assert.Contains(t, stdout, "1 warning(s):")
	assert.Contains(t, stdout, string(tree.DiagMissingMaterial))
}

func TestValidate_CableBodiesAreFiltered(t *testing.T) {
	b := testutil.NewBuilder()
	b.Body("a", "A", "")
	b.Body("b", "B", "")
	b.Cable("cable", "b")
	b.Constraint("hinge", "Hinge", "a", "b")
	db := packDocument(t, b)

	stdout, _, err := execute(t, "--format", "json", "validate", db)
	require.NoError(t, err)

	var resp struct {
		Data ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, 1, resp.Data.Nodes["RigidBody"], "cable bodies belong to the cable subsystem")
	assert.Equal(t, 1, resp.Data.Nodes["Constraint"], "the hinge keeps its remaining body")
}

func TestValidate_MissingDocument(t *testing.T) {
	stdout, _, err := execute(t, "validate", filepath.Join("testdata", "missing.cue"))

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error ["+ErrCodeNotFound+"]")
}
