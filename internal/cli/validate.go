package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/simgraph/internal/tree"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Nodes       map[string]int    `json:"nodes,omitempty"`
	Roots       map[string]int    `json:"roots,omitempty"`
	Diagnostics []tree.Diagnostic `json:"diagnostics,omitempty"`
	Error       string            `json:"error,omitempty"`
}

var (
	reportKinds = []tree.Kind{
		tree.KindAssembly,
		tree.KindRigidBody,
		tree.KindGeometry,
		tree.KindConstraint,
		tree.KindMaterial,
		tree.KindContactMaterial,
	}
	reportCategories = []tree.RootCategory{
		tree.GenericRoots,
		tree.ConstraintRoots,
		tree.MaterialRoots,
		tree.ContactMaterialRoots,
	}
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Check a document's tree without generating a scene",
		Long: `Build the tree for a simulation document and check its invariants.

Reports node counts per kind, root counts per category and any warnings
raised while classifying entities. No scene objects are created. Exits 1
when the tree cannot be built or violates an invariant.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := opts.logger().With("document", path)

	src, err := openSource(cmd.Context(), path)
	if err != nil {
		return sourceFailure(formatter, err)
	}
	defer closeSource(src, logger)

	t, err := tree.Parse(src, tree.WithLogger(logger))
	if err == nil {
		err = t.Validate()
	}
	if err != nil {
		return outputValidationFailure(formatter, err)
	}

	result := ValidationResult{
		Valid:       true,
		Nodes:       make(map[string]int),
		Roots:       make(map[string]int),
		Diagnostics: t.Diagnostics(),
	}
	for _, n := range t.Nodes() {
		result.Nodes[n.Kind().String()]++
	}
	for _, cat := range reportCategories {
		if roots := t.Roots(cat); len(roots) > 0 {
			result.Roots[cat.String()] = len(roots)
		}
	}

	if formatter.json() {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ Scene valid")
	for _, k := range reportKinds {
		if c := result.Nodes[k.String()]; c > 0 {
			fmt.Fprintf(formatter.Writer, "  %-16s %d\n", k, c)
		}
	}
	for _, cat := range reportCategories {
		if c := result.Roots[cat.String()]; c > 0 {
			fmt.Fprintf(formatter.Writer, "  %s roots: %d\n", cat, c)
		}
	}
	printDiagnostics(formatter.Writer, result.Diagnostics)
	return nil
}

// outputValidationFailure reports a structural error.
func outputValidationFailure(formatter *OutputFormatter, err error) error {
	exitErr := &ExitError{Status: ExitFailure, Code: ErrCodeStructural, Message: "validation failed", Err: err}

	if formatter.json() {
		if encErr := formatter.encode(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Error: err.Error()},
			Error:  &CLIError{Code: ErrCodeStructural, Message: err.Error()},
		}); encErr != nil {
			return encErr
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeStructural, err)
	return exitErr
}
