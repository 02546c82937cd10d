// Package cmd implements the extract command for the tscat CLI.
package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dylan-gluck/cognee-agent/internal/config"
	"github.com/dylan-gluck/cognee-agent/internal/extract"
	"github.com/dylan-gluck/cognee-agent/internal/output"
	"github.com/dylan-gluck/cognee-agent/internal/scan"
	"github.com/dylan-gluck/cognee-agent/internal/store"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [path]",
	Short: "Extract declaration catalogs from TypeScript files",
	Long: `Extract parses the given file or directory tree (current directory if
none given) and emits one catalog per file.

For directories the file set is filtered by the scan.exclude patterns of
.tscat/config.yaml, files are extracted on a bounded worker pool, and a
per-file failure never aborts the batch.

Examples:
  tscat extract                     # Extract everything under .
  tscat extract src/                # Extract a directory
  tscat extract src/app.ts          # Extract a single file
  tscat extract --mode raw src/     # Capture source text, no records
  tscat extract --save src/         # Persist catalogs to .tscat/catalog.db
  tscat extract --jobs 4 src/       # Bound extraction parallelism
  tscat extract --changed src/      # Skip files unchanged since last save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

var (
	extractMode    string
	extractSave    bool
	extractJobs    int
	extractChanged bool
	extractExclude []string
)

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractMode, "mode", "", "Extraction mode (raw|detailed)")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "Persist catalogs to .tscat/catalog.db")
	extractCmd.Flags().IntVar(&extractJobs, "jobs", 0, "Worker count (default: one per CPU)")
	extractCmd.Flags().BoolVar(&extractChanged, "changed", false, "Skip files whose content is unchanged since the last --save run")
	extractCmd.Flags().StringSliceVar(&extractExclude, "exclude", nil, "Extra exclude patterns (comma-separated globs)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	cfg, err := config.Load(absTarget)
	if err != nil {
		return err
	}

	opts, err := extractOptions(cfg)
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg)
	if err != nil {
		return err
	}

	root, files, err := discoverTargets(absTarget, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no extractable files under %s", target)
	}

	var db *store.Store
	if extractSave || extractChanged {
		tscatDir, err := config.EnsureConfigDir(root)
		if err != nil {
			return err
		}
		db, err = store.Open(tscatDir)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	if extractChanged {
		files, err = filterUnchanged(db, files)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "tscat extract: all files up to date")
			return nil
		}
	}

	jobs := extractJobs
	if jobs == 0 {
		jobs = cfg.Extract.Jobs
	}
	results := scan.ExtractAll(root, files, opts, jobs)

	var cats []*extract.Catalog
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "tscat extract: %s: %v\n", r.FilePath, r.Err)
			continue
		}
		cats = append(cats, r.Catalog)
	}

	if db != nil && extractSave {
		for _, cat := range cats {
			if err := db.SaveCatalog(cat); err != nil {
				return fmt.Errorf("save %s: %w", cat.FilePath, err)
			}
			if source, err := os.ReadFile(cat.FilePath); err == nil {
				if err := db.SetFileScanned(cat.FilePath, store.HashSource(source)); err != nil {
					return err
				}
			}
		}
		fmt.Fprintf(os.Stderr, "tscat extract: saved %d catalogs\n", len(cats))
	}

	if err := output.RenderCatalogs(os.Stdout, format, cats); err != nil {
		return err
	}

	if verbose {
		total := 0
		diags := 0
		for _, cat := range cats {
			total += cat.RecordCount()
			diags += len(cat.Diagnostics)
		}
		fmt.Fprintf(os.Stderr, "tscat extract: %d files, %d records, %d diagnostics, %d failures\n",
			len(cats), total, diags, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// discoverTargets resolves the extraction root and file list. A file target
// is extracted as-is; a directory target is scanned with the configured
// exclude patterns.
func discoverTargets(absTarget string, cfg *config.Config) (root string, files []string, err error) {
	info, err := os.Stat(absTarget)
	if err != nil {
		return "", nil, err
	}

	if !info.IsDir() {
		root = projectRootFor(filepath.Dir(absTarget))
		return root, []string{absTarget}, nil
	}

	patterns := append([]string{}, cfg.Scan.Exclude...)
	patterns = append(patterns, extractExclude...)
	scanner, err := scan.NewScanner(patterns, cfg.Scan.IncludeJS)
	if err != nil {
		return "", nil, err
	}
	files, err = scanner.Discover(absTarget)
	if err != nil {
		return "", nil, err
	}
	return projectRootFor(absTarget), files, nil
}

// projectRootFor picks the repo root for repo-relative catalog names: the
// directory holding .tscat when initialized, the target directory otherwise.
func projectRootFor(dir string) string {
	if tscatDir, err := config.FindConfigDir(dir); err == nil {
		return filepath.Dir(tscatDir)
	}
	return dir
}

func extractOptions(cfg *config.Config) (extract.Options, error) {
	opts := extract.DefaultOptions()
	opts.ReexportImports = cfg.ReexportImportsEnabled()

	modeStr := extractMode
	if modeStr == "" {
		modeStr = cfg.Extract.Mode
	}
	mode, err := extract.ParseMode(modeStr)
	if err != nil {
		return opts, err
	}
	opts.Mode = mode
	return opts, nil
}

func resolveFormat(cfg *config.Config) (output.Format, error) {
	formatStr := outputFormat
	if formatStr == "" {
		formatStr = cfg.Output.Format
	}
	return output.ParseFormat(formatStr)
}

func filterUnchanged(db *store.Store, files []string) ([]string, error) {
	var out []string
	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			out = append(out, path)
			continue
		}
		prev, err := db.GetFileHash(path)
		if err == sql.ErrNoRows {
			out = append(out, path)
			continue
		}
		if err != nil {
			return nil, err
		}
		if prev != store.HashSource(source) {
			out = append(out, path)
		}
	}
	return out, nil
}
