package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roach88/simgraph/internal/entity"
	"github.com/roach88/simgraph/internal/scenefile"
	"github.com/roach88/simgraph/internal/store"
)

var errUnsupported = errors.New("unsupported document type")

// isDatabase reports whether path names a store produced by pack.
func isDatabase(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".db")
}

// openSource opens path as an entity source. SQLite stores are chosen by
// the .db extension; everything else goes through the document decoders.
func openSource(ctx context.Context, path string) (entity.Source, error) {
	if isDatabase(path) {
		doc, err := store.OpenSource(ctx, path)
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
	if !scenefile.Supported(path) {
		return nil, fmt.Errorf("%w %q (want .yaml, .yml, .cue or .db)", errUnsupported, filepath.Ext(path))
	}
	doc, err := scenefile.Load(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// sourceFailure maps an openSource error to an error code and reports it.
func sourceFailure(f *OutputFormatter, err error) error {
	switch {
	case errors.Is(err, errUnsupported):
		return fail(f, ExitCommandError, ErrCodeUnsupported, err.Error())
	case errors.Is(err, entity.ErrSourceUnavailable):
		return fail(f, ExitCommandError, ErrCodeNotFound, err.Error())
	default:
		return fail(f, ExitCommandError, ErrCodeDecode, err.Error())
	}
}
