package scenefile

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/simgraph/internal/entity"
)

//go:embed schema.cue
var schemaSource []byte

// DecodeCUE decodes a CUE simulation document. filename labels positions in
// errors.
//
// The document is unified with the #Document schema, so unknown fields,
// wrong types and invalid enum values are rejected with their position.
func DecodeCUE(filename string, src []byte) (*entity.Document, error) {
	f, err := decodeCUEFile(filename, src)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

func decodeCUEFile(filename string, src []byte) (*File, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile document schema: %w", err)
	}

	doc := ctx.CompileBytes(src, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, formatCUEError(err, filename)
	}

	v := schema.LookupPath(cue.ParsePath("#Document")).Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err, filename)
	}

	var f File
	if err := v.Decode(&f); err != nil {
		return nil, formatCUEError(err, filename)
	}
	return &f, nil
}
