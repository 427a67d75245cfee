package scene

import (
	"errors"

	"github.com/roach88/simgraph/internal/entity"
)

// Handle addresses a host object. NoHandle means "none".
type Handle int64

// NoHandle is the zero Handle.
const NoHandle Handle = 0

// ErrUnknownHandle is returned when a parent handle names no object.
var ErrUnknownHandle = errors.New("unknown handle")

// ContainerKind is the Kind of plain grouping objects.
const ContainerKind = "Container"

// Component is a host-specific attribute bundle attached to an object,
// e.g. a rigid body's mass properties or one collision shape.
type Component struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// ObjectSpec describes a representation object to create.
type ObjectSpec struct {
	Name       string
	Kind       string
	World      entity.Transform
	Components []Component

	// References links the object to already materialized objects it
	// depends on (a geometry's material, a constraint's bodies).
	References []Handle
}

// Host creates objects in a scene graph.
//
// Parent NoHandle places the object at the top level of the scene.
// Transforms are given in world space; the host derives local placement.
type Host interface {
	CreateContainer(name string, parent Handle, world entity.Transform) (Handle, error)
	CreateObject(spec ObjectSpec, parent Handle) (Handle, error)
}
