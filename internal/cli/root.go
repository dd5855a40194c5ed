package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aryamansethi1503/summarizationWithAI/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "docquery",
	Short: "DocQuery - chat with, summarize, and challenge your documents",
	Long: `DocQuery indexes document text into a session-scoped vector store and
answers questions, summaries, translations, and argument analyses grounded
only in that index.

Example usage:
  docquery serve                          # Run the HTTP API
  docquery ingest ./docs                  # Index local text files
  docquery ask -q "What is the deadline?" # One-shot grounded answer
  docquery summarize report.txt           # Summarize one document`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docquery.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}
