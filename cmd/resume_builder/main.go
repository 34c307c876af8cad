// Package main provides the resume_builder command line: a guided resume
// builder with a terminal wizard, document export and an HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
)

var (
	configPath string
	verbose    bool

	// cfg is loaded before every subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Guided resume builder",
	Long: "resume_builder walks through the steps of writing a resume, keeps progress between runs " +
		"and exports the result as PDF or DOCX using one of the built-in templates.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a resume_builder.yaml config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print the builder state after each change")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		loaded.Verbose = true
	}
	cfg = loaded
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
