package scenefile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/simgraph/internal/entity"
)

// Supported reports whether path has a document extension this package
// decodes.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".cue":
		return true
	}
	return false
}

// Load reads and decodes the document at path, choosing the decoder by
// extension.
func Load(path string) (*entity.Document, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrSourceUnavailable, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return DecodeCUE(path, data)
	}
	return DecodeYAML(bytes.NewReader(data))
}
