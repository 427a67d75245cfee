package entity

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// ID identifies an entity. It is the sole key for node identity.
type ID = uuid.UUID

// Nil is the zero identifier, used for absent links.
var Nil = uuid.Nil

// Namespace is the UUID namespace for identifiers derived from document keys.
// Changing it changes every derived ID, so it is fixed forever.
var Namespace = uuid.MustParse("6f1d3c52-8a4e-4f0b-9a37-2c5e1b7d9e40")

// ParseID parses a hyphenated UUID string.
func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("parse id %q: %w", s, err)
	}
	return id, nil
}

// KeyID maps a document key to an ID.
//
// A key that is already a UUID is used as-is. Any other key is hashed into
// a name-based (version 5) UUID so documents without UUIDs reconstruct to
// the same identifiers every time.
func KeyID(key string) ID {
	if key == "" {
		return Nil
	}
	if id, err := uuid.Parse(key); err == nil {
		return id
	}
	return uuid.NewSHA1(Namespace, []byte(key))
}

// IDSource issues fresh identifiers for things no document names, such as
// a reconstruction pass.
type IDSource interface {
	NewID() ID
}

// TimeOrdered issues UUIDv7 identifiers, which sort by creation time.
type TimeOrdered struct{}

func (TimeOrdered) NewID() ID {
	return uuid.Must(uuid.NewV7())
}

// Sequence issues the name-derived identifiers of "prefix/1", "prefix/2", ...
// so runs that need fresh identifiers stay reproducible. Safe for concurrent
// use.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() ID {
	return KeyID(fmt.Sprintf("%s/%d", s.prefix, s.n.Add(1)))
}
