package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dylan-gluck/cognee-agent/internal/config"
	"github.com/dylan-gluck/cognee-agent/internal/output"
	"github.com/dylan-gluck/cognee-agent/internal/store"
)

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List cataloged files",
	Long: `List every file in the catalog database with its language, mode, and
record count.

Examples:
  tscat files
  tscat files --format json`,
	RunE: runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	db, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	format, err := resolveFormat(cfg)
	if err != nil {
		return err
	}

	entries, err := db.ListFiles()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no cataloged files: run 'tscat extract --save' first")
		return nil
	}

	return output.RenderFileList(os.Stdout, format, entries)
}

// openStore locates the .tscat directory, loads config, and opens the
// catalog database. Shared by the read-only commands.
func openStore() (*store.Store, *config.Config, error) {
	tscatDir, err := config.FindConfigDir(".")
	if err != nil {
		return nil, nil, fmt.Errorf("tscat not initialized: run 'tscat init' first")
	}

	cfg, err := config.Load(".")
	if err != nil {
		return nil, nil, err
	}

	db, err := store.Open(tscatDir)
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}
