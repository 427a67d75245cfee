package scenefile

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// DecodeError reports an invalid document. Pos is set for CUE sources.
type DecodeError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *DecodeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError converts the first CUE error into a DecodeError. Positions
// inside filename are preferred over positions in the schema.
func formatCUEError(err error, filename string) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	de := &DecodeError{Field: "cue", Message: first.Error()}
	if path := first.Path(); len(path) > 0 {
		de.Field = joinPath(path)
	}
	for _, pos := range errors.Positions(first) {
		if !de.Pos.IsValid() || pos.Filename() == filename {
			de.Pos = pos
		}
		if pos.Filename() == filename {
			break
		}
	}
	return de
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 && len(p) > 0 && p[0] != '[' {
			out += "."
		}
		out += p
	}
	return out
}
