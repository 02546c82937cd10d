package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dylan-gluck/cognee-agent/internal/output"
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find [pattern]",
	Short: "Search declaration records across cataloged files",
	Long: `Find searches stored declaration records by name pattern and record
type. Patterns use SQL LIKE syntax; % matches any run of characters.

Examples:
  tscat find useState                 # Exact name
  tscat find 'use%'                   # Prefix match
  tscat find --type class             # All classes
  tscat find --type method 'render%'  # Method names by prefix`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFind,
}

var (
	findType  string
	findLimit int
)

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringVar(&findType, "type", "", "Record type (import|export|function|class|method|interface|type_alias|enum)")
	findCmd.Flags().IntVar(&findLimit, "limit", 50, "Maximum results")
}

func runFind(cmd *cobra.Command, args []string) error {
	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}
	if pattern == "" && findType == "" {
		return fmt.Errorf("give a name pattern, a --type filter, or both")
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

	entries, err := db.FindRecords(findType, pattern)
	if err != nil {
		return err
	}
	if findLimit > 0 && len(entries) > findLimit {
		entries = entries[:findLimit]
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no matching records")
		return nil
	}

	return output.Render(os.Stdout, format, entries)
}
