package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/simgraph/internal/scenefile"
	"github.com/roach88/simgraph/internal/store"
)

// PackOptions holds flags for the pack command.
type PackOptions struct {
	DBPath string
}

// PackResult is the JSON payload of a successful pack.
type PackResult struct {
	Database    string `json:"database"`
	Frames      int    `json:"frames"`
	Bodies      int    `json:"bodies"`
	Geometries  int    `json:"geometries"`
	Constraints int    `json:"constraints"`
	Materials   int    `json:"materials"`
}

// NewPackCommand creates the pack command.
func NewPackCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PackOptions{}

	cmd := &cobra.Command{
		Use:   "pack <document>",
		Short: "Store a YAML or CUE document in a SQLite database",
		Long: `Decode a YAML or CUE simulation document and store its entities in a
SQLite database. The database can be passed to import and validate in
place of the document. An existing database is overwritten.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "output database (default: document name with .db)")

	return cmd
}

func runPack(rootOpts *RootOptions, opts *PackOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}
	logger := rootOpts.logger().With("document", path)

	if isDatabase(path) || !scenefile.Supported(path) {
		return fail(formatter, ExitCommandError, ErrCodeUnsupported,
			fmt.Sprintf("%s is not a YAML or CUE document", path))
	}
	doc, err := scenefile.Load(path)
	if err != nil {
		return sourceFailure(formatter, err)
	}
	defer closeSource(doc, logger)

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".db"
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeWriteFailed, err.Error())
	}
	defer st.Close()

	if err := st.Save(cmd.Context(), doc); err != nil {
		return fail(formatter, ExitCommandError, ErrCodeWriteFailed, err.Error())
	}
	logger.Info("document packed", "database", dbPath)

	result := PackResult{
		Database:    dbPath,
		Frames:      len(doc.Frames()),
		Bodies:      len(doc.Bodies()),
		Geometries:  len(doc.Geometries()),
		Constraints: len(doc.Constraints()),
		Materials:   len(doc.Materials()),
	}
	if formatter.json() {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "Packed %s into %s (%d bodies, %d geometries, %d constraints, %d materials)\n",
		path, dbPath, result.Bodies, result.Geometries, result.Constraints, result.Materials)
	return nil
}
