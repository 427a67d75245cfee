package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/simgraph/internal/testutil"
	"github.com/roach88/simgraph/internal/tree"
)

type importResponse struct {
	Status string       `json:"status"`
	Data   ImportResult `json:"data"`
	Error  *CLIError    `json:"error"`
}

func decodeResponse(t *testing.T, out string) importResponse {
	t.Helper()
	var resp importResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp
}

func TestImport_TextOutline(t *testing.T) {
	stdout, _, err := execute(t, "import", filepath.Join("testdata", "rig.yaml"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "Simulation [Container]")
	assert.Contains(t, stdout, "  Rig [Assembly]\n")
	assert.Contains(t, stdout, "    Base [RigidBody]\n")
	assert.Contains(t, stdout, "      BaseBox [Geometry] -> Steel\n")
	assert.Contains(t, stdout, "      ArmCapsule [Geometry] -> Ice\n")
	assert.Contains(t, stdout, "  Floor [Geometry]\n")
	assert.Contains(t, stdout, "    Joint [Constraint] -> Base, Arm\n")
	assert.Contains(t, stdout, "Created 10 object(s)")
	assert.NotContains(t, stdout, "warning(s)")
}

func TestImport_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "import", filepath.Join("testdata", "rig.yaml"))
	require.NoError(t, err)

	resp := decodeResponse(t, stdout)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 10, resp.Data.Created)
	assert.Empty(t, resp.Data.Diagnostics)

	var scene struct {
		Objects []struct {
			Name string `json:"name"`
		} `json:"objects"`
	}
	require.NoError(t, json.Unmarshal(resp.Data.Scene, &scene))
	require.Len(t, scene.Objects, 1)
	assert.Equal(t, "Simulation", scene.Objects[0].Name)
}

func TestImport_RootNameFlag(t *testing.T) {
	stdout, _, err := execute(t, "import", "--root-name", "Cell", filepath.Join("testdata", "rig.yaml"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "Cell [Container]")
	assert.NotContains(t, stdout, "Simulation")
}

func TestImport_WritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.json")

	stdout, _, err := execute(t, "--format", "json", "import", "--snapshot", path, filepath.Join("testdata", "rig.yaml"))
	require.NoError(t, err)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, string(decodeResponse(t, stdout).Data.Scene), string(written))
}

func TestImport_Deterministic(t *testing.T) {
	first, _, err := execute(t, "--format", "json", "import", filepath.Join("testdata", "rig.yaml"))
	require.NoError(t, err)
	second, _, err := execute(t, "--format", "json", "import", filepath.Join("testdata", "rig.yaml"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestImport_ReportsDiagnostics(t *testing.T) {
	b := testutil.NewBuilder()
	b.Body("box", "Box", "")
	b.Geometry("shape", "Shape", "box", "unobtainium")
	db := packDocument(t, b)

	stdout, _, err := execute(t, "--format", "json", "import", db)
	require.NoError(t, err)

	resp := decodeResponse(t, stdout)
	require.Len(t, resp.Data.Diagnostics, 1)
	assert.Equal(t, tree.DiagMissingMaterial, resp.Data.Diagnostics[0].Code)
	assert.Equal(t, testutil.ID("shape"), resp.Data.Diagnostics[0].ID)
	assert.Equal(t, 2, resp.Data.Created)
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantCode string
	}{
		{"missing document", filepath.Join("testdata", "missing.yaml"), ErrCodeNotFound},
		{"missing database", filepath.Join("testdata", "missing.db"), ErrCodeNotFound},
		{"unsupported type", filepath.Join("testdata", "rig.txt"), ErrCodeUnsupported},
		{"unknown field", filepath.Join("testdata", "bad.yaml"), ErrCodeDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "--format", "json", "import", tt.path)

			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			resp := decodeResponse(t, stdout)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
