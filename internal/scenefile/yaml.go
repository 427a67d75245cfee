package scenefile

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/simgraph/internal/entity"
)

// DecodeYAML decodes a YAML simulation document. Unknown fields are errors.
func DecodeYAML(r io.Reader) (*entity.Document, error) {
	f, err := decodeYAMLFile(r)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

func decodeYAMLFile(r io.Reader) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, &DecodeError{Message: fmt.Sprintf("parse YAML: %v", err)}
	}
	return &f, nil
}
