package generator

import (
	"fmt"

	"github.com/roach88/simgraph/internal/entity"
	"github.com/roach88/simgraph/internal/scene"
	"github.com/roach88/simgraph/internal/tree"
)

// DefaultRootName names the top-level container of a pass.
const DefaultRootName = "Simulation"

// categoryContainers names the containers holding specialized roots, in the
// order their names are reserved.
var categoryContainers = []struct {
	cat  tree.RootCategory
	name string
}{
	{tree.MaterialRoots, "Materials"},
	{tree.ContactMaterialRoots, "ContactMaterials"},
	{tree.ConstraintRoots, "Constraints"},
}

// Context is the state of one generation pass: the host being written,
// the top-level container, and the names already in use.
//
// A Context belongs to exactly one pass and is discarded with it. The
// top-level and category container names are claimed when the Context is
// created, before any entity is named, so an entity declaring one of them is
// suffixed even when that container ends up unused.
type Context struct {
	Host  scene.Host
	Root  scene.Handle
	Names *Names

	categories     map[tree.RootCategory]scene.Handle
	containerNames map[tree.RootCategory]string
}

// NewContext creates the pass's top-level container in host.
func NewContext(host scene.Host, rootName string) (*Context, error) {
	if rootName == "" {
		rootName = DefaultRootName
	}
	c := &Context{
		Host:           host,
		Names:          NewNames(),
		categories:     make(map[tree.RootCategory]scene.Handle),
		containerNames: make(map[tree.RootCategory]string),
	}
	root, err := host.CreateContainer(c.Names.ClaimExact(rootName), scene.NoHandle, entity.Identity())
	if err != nil {
		return nil, fmt.Errorf("create top-level container: %w", err)
	}
	c.Root = root
	for _, cc := range categoryContainers {
		c.containerNames[cc.cat] = c.Names.ClaimExact(cc.name)
	}
	return c, nil
}

// Container returns the container that holds roots of cat, creating it under
// Root on first use. Generic roots live directly under Root.
func (c *Context) Container(cat tree.RootCategory) (scene.Handle, error) {
	if cat == tree.GenericRoots {
		return c.Root, nil
	}
	if h, ok := c.categories[cat]; ok {
		return h, nil
	}
	name, ok := c.containerNames[cat]
	if !ok {
		return scene.NoHandle, fmt.Errorf("no container for %s roots", cat)
	}
	h, err := c.Host.CreateContainer(name, c.Root, entity.Identity())
	if err != nil {
		return scene.NoHandle, fmt.Errorf("create %s container: %w", name, err)
	}
	c.categories[cat] = h
	return h, nil
}
