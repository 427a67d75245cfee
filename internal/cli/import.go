package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/simgraph/internal/entity"
	"github.com/roach88/simgraph/internal/generator"
	"github.com/roach88/simgraph/internal/scene"
	"github.com/roach88/simgraph/internal/snapshot"
	"github.com/roach88/simgraph/internal/tree"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	RootName     string
	SnapshotPath string
}

// ImportResult is the JSON payload of a successful import.
type ImportResult struct {
	Created     int               `json:"created"`
	Diagnostics []tree.Diagnostic `json:"diagnostics,omitempty"`
	Scene       json.RawMessage   `json:"scene"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import <document>",
		Short: "Reconstruct the scene graph of a simulation document",
		Long: `Reconstruct the scene graph of a simulation document.

Builds the parent/child/reference tree from the document's flat entity lists
and materializes it into an in-memory scene under a single top-level
container. Text output prints the scene outline; JSON output carries the
canonical scene snapshot.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RootName, "root-name", "", "name of the top-level container (overrides config)")
	cmd.Flags().StringVar(&opts.SnapshotPath, "snapshot", "", "also write the canonical scene snapshot to this file")

	return cmd
}

func runImport(rootOpts *RootOptions, opts *ImportOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}
	logger := rootOpts.logger().With("document", path)

	src, err := openSource(cmd.Context(), path)
	if err != nil {
		return sourceFailure(formatter, err)
	}
	defer closeSource(src, logger)

	t, err := tree.Parse(src, tree.WithLogger(logger))
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeStructural, err.Error())
	}
	formatter.VerboseLog("Built tree with %d node(s) from %s", t.Len(), path)

	rootName := opts.RootName
	if rootName == "" {
		rootName = rootOpts.rootName()
	}

	graph := scene.NewGraph()
	result, err := generator.Generate(t, src, graph, rootName, generator.WithLogger(logger))
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeGenerate, err.Error())
	}
	formatter.VerboseLog("Pass %s created %d object(s)", result.Pass, result.Created)

	data, err := snapshot.Marshal(graph)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeGenerate, fmt.Sprintf("snapshot: %v", err))
	}
	if opts.SnapshotPath != "" {
		if err := os.WriteFile(opts.SnapshotPath, data, 0o644); err != nil {
			return fail(formatter, ExitCommandError, ErrCodeWriteFailed, err.Error())
		}
		formatter.VerboseLog("Wrote snapshot to %s", opts.SnapshotPath)
	}

	if formatter.json() {
		return formatter.Success(ImportResult{
			Created:     result.Created,
			Diagnostics: result.Diagnostics,
			Scene:       data,
		})
	}

	if err := graph.Fprint(formatter.Writer); err != nil {
		return err
	}
	fmt.Fprintf(formatter.Writer, "\nCreated %d object(s)\n", result.Created)
	printDiagnostics(formatter.Writer, result.Diagnostics)
	return nil
}

// closeSource releases src, logging rather than failing on error: the
// command's result is already determined.
func closeSource(src entity.Source, logger *slog.Logger) {
	if err := src.Close(); err != nil {
		logger.Warn("close source failed", "error", err)
	}
}

func printDiagnostics(w io.Writer, diags []tree.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(w, "%d warning(s):\n", len(diags))
	for _, d := range diags {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
