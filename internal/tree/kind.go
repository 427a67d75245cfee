package tree

// Kind enumerates the node kinds of a reconstructed tree.
type Kind int

const (
	KindUnknown Kind = iota
	KindGeometry
	KindRigidBody
	KindAssembly
	KindConstraint
	KindMaterial
	KindContactMaterial
)

// String returns the kind's tag name. Tag names double as fallback display
// names for entities without a declared name.
func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "Geometry"
	case KindRigidBody:
		return "RigidBody"
	case KindAssembly:
		return "Assembly"
	case KindConstraint:
		return "Constraint"
	case KindMaterial:
		return "Material"
	case KindContactMaterial:
		return "ContactMaterial"
	default:
		return "Unknown"
	}
}

// RootCategory selects one of the tree's root lists.
type RootCategory int

const (
	GenericRoots RootCategory = iota
	ConstraintRoots
	MaterialRoots
	ContactMaterialRoots

	rootCategoryCount
)

func (c RootCategory) String() string {
	switch c {
	case GenericRoots:
		return "generic"
	case ConstraintRoots:
		return "constraint"
	case MaterialRoots:
		return "material"
	case ContactMaterialRoots:
		return "contact material"
	default:
		return "unknown"
	}
}

// categoryOf maps a kind to the root list it belongs in when it is a root.
// Kinds without a dedicated list are generic.
func categoryOf(k Kind) RootCategory {
	switch k {
	case KindConstraint:
		return ConstraintRoots
	case KindMaterial:
		return MaterialRoots
	case KindContactMaterial:
		return ContactMaterialRoots
	default:
		return GenericRoots
	}
}
