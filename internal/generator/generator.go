package generator

import (
	"fmt"
	"log/slog"

	"github.com/roach88/simgraph/internal/entity"
	"github.com/roach88/simgraph/internal/scene"
	"github.com/roach88/simgraph/internal/tree"
)

// generationOrder lists root categories so that reference targets are
// materialized before the objects referring to them.
var generationOrder = []tree.RootCategory{
	tree.MaterialRoots,
	tree.ContactMaterialRoots,
	tree.GenericRoots,
	tree.ConstraintRoots,
}

// Result summarizes a generation pass. Pass is the identifier attached to the
// pass's log records. Diagnostics holds the tree's classification warnings
// followed by those raised while generating.
type Result struct {
	Pass        entity.ID
	Root        scene.Handle
	Created     int
	Diagnostics []tree.Diagnostic
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithIDSource sets where the pass identifier comes from. Default:
// entity.TimeOrdered.
func WithIDSource(ids entity.IDSource) Option {
	return func(g *Generator) {
		g.ids = ids
	}
}

// Generator materializes one tree into one Context.
type Generator struct {
	tree   *tree.Tree
	src    entity.Source
	ctx    *Context
	logger *slog.Logger
	ids    entity.IDSource

	// pass tags every log record of this generator.
	pass entity.ID

	created     int
	diagnostics []tree.Diagnostic
}

// New creates a generator for t. src supplies world transforms and must be
// the source t was parsed from.
func New(t *tree.Tree, src entity.Source, ctx *Context, opts ...Option) *Generator {
	g := &Generator{
		tree:   t,
		src:    src,
		ctx:    ctx,
		logger: slog.Default(),
		ids:    entity.TimeOrdered{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.pass = g.ids.NewID()
	g.logger = g.logger.With("pass", g.pass)
	return g
}

// Generate creates a top-level container named rootName in host and
// materializes every node of t beneath it.
func Generate(t *tree.Tree, src entity.Source, host scene.Host, rootName string, opts ...Option) (*Result, error) {
	ctx, err := NewContext(host, rootName)
	if err != nil {
		return nil, err
	}
	return New(t, src, ctx, opts...).Run()
}

// Run visits every root category in dependency order.
func (g *Generator) Run() (*Result, error) {
	for _, cat := range generationOrder {
		roots := g.tree.Roots(cat)
		if len(roots) == 0 {
			continue
		}
		parent, err := g.ctx.Container(cat)
		if err != nil {
			return nil, err
		}
		for _, n := range roots {
			if err := g.Visit(n, parent); err != nil {
				return nil, err
			}
		}
	}

	diags := append(g.tree.Diagnostics(), g.diagnostics...)
	g.logger.Info("scene generated", "objects", g.created, "diagnostics", len(diags))
	return &Result{
		Pass:        g.pass,
		Root:        g.ctx.Root,
		Created:     g.created,
		Diagnostics: diags,
	}, nil
}

// Visit materializes n and, recursively, its children.
//
// A node that already has an output is skipped, so visiting twice creates
// one object. Roots are placed under container; other nodes under their
// parent's output. A node whose parent has no output yet is skipped with a
// diagnostic.
func (g *Generator) Visit(n *tree.Node, container scene.Handle) error {
	if n.HasOutput() {
		return nil
	}

	parent := container
	if p := g.tree.Parent(n); p != nil {
		if !p.HasOutput() {
			msg := fmt.Sprintf("%s parent %s has not been materialized", n.Kind(), p.ID())
			g.logger.Warn("skipping node", "uuid", n.ID(), "kind", n.Kind().String(), "reason", msg)
			g.diagnostics = append(g.diagnostics, tree.Diagnostic{
				Code:    tree.DiagUnmaterializedParent,
				ID:      n.ID(),
				Message: msg,
			})
			return nil
		}
		parent = p.Output()
	}

	build, ok := strategies[n.Kind()]
	if !ok {
		return fmt.Errorf("generate %s: no construction strategy for kind %s", n.ID(), n.Kind())
	}
	backing, _ := g.tree.Backing(n.ID())
	spec, err := build(g, n, backing)
	if err != nil {
		return fmt.Errorf("generate %s: %w", n.ID(), err)
	}

	declared := ""
	if backing != nil {
		declared = backing.EntityName()
	}
	spec.Name = g.ctx.Names.Claim(declared, n.Kind())

	h, err := g.ctx.Host.CreateObject(spec, parent)
	if err != nil {
		return fmt.Errorf("generate %s %q: %w", n.Kind(), spec.Name, err)
	}
	if err := n.SetOutput(h); err != nil {
		return err
	}
	g.created++
	g.logger.Debug("object created", "uuid", n.ID(), "kind", n.Kind().String(), "name", spec.Name, "handle", h)

	for _, c := range g.tree.Children(n) {
		if err := g.Visit(c, container); err != nil {
			return err
		}
	}
	return nil
}

// referencedOutputs returns the outputs of n's references of kind, in
// reference order. References not yet materialized are left out.
func (g *Generator) referencedOutputs(n *tree.Node, kind tree.Kind) []scene.Handle {
	var out []scene.Handle
	for _, r := range g.tree.References(n) {
		if r.Kind() == kind && r.HasOutput() {
			out = append(out, r.Output())
		}
	}
	return out
}
