package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dylan-gluck/cognee-agent/internal/output"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog <file>",
	Short: "Show the stored catalog for a file",
	Long: `Catalog loads a previously saved catalog from .tscat/catalog.db and
prints it. Use 'tscat extract --save' to populate the database.

Examples:
  tscat catalog src/app.ts
  tscat catalog --format json src/app.ts`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	db, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	format, err := resolveFormat(cfg)
	if err != nil {
		return err
	}

	cat, err := db.GetCatalog(path)
	if err != nil {
		return fmt.Errorf("no catalog for %s: run 'tscat extract --save %s' first", args[0], args[0])
	}

	return output.RenderCatalog(os.Stdout, format, cat)
}
