package snapshot

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/simgraph/internal/scene"
)

// AssertGolden compares the snapshot of g against testdata/golden/{name}.golden.
//
// To regenerate golden files, run the test with -update.
func AssertGolden(t *testing.T, name string, g *scene.Graph) error {
	t.Helper()

	data, err := Marshal(g)
	if err != nil {
		return err
	}

	gd := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gd.Assert(t, name, data)
	return nil
}
