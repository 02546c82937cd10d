// Package cmd implements the init command for the tscat CLI.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dylan-gluck/cognee-agent/internal/config"
	"github.com/dylan-gluck/cognee-agent/internal/store"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .tscat directory and database",
	Long: `Initialize the .tscat directory, catalog database, and default config
in the current directory.

Examples:
  tscat init          # Initialize in current directory
  tscat init --force  # Reinitialize (overwrites existing database)`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize even if .tscat already exists")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	tscatDir := filepath.Join(cwd, config.ConfigDirName)
	dbPath := filepath.Join(tscatDir, "catalog.db")

	_, err = os.Stat(dbPath)
	if err == nil {
		if !initForce {
			relPath, _ := filepath.Rel(cwd, tscatDir)
			fmt.Printf("Already initialized at %s\n", relPath)
			return nil
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("removing existing database: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking database: %w", err)
	}

	s, err := store.Open(tscatDir)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer s.Close()

	configPath := filepath.Join(tscatDir, config.ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if _, err := config.SaveDefault(cwd); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	fmt.Printf("Initialized .tscat at %s\n", tscatDir)
	return nil
}
