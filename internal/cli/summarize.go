package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryamansethi1503/summarizationWithAI/internal/usecase"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [filename]",
	Short: "Summarize one document or synthesize all of them",
	Long: `Summarize a single indexed document by filename, or, with no argument,
summarize every indexed document and merge the results into one synthesis.

Examples:
  docquery summarize report.txt
  docquery summarize`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open chunk store: %w", err)
	}
	defer st.Close()

	generator, err := newGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	summarizer := usecase.NewSummarizer(st, generator)

	if len(args) == 1 {
		summary, err := summarizer.SummarizeFile(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to summarize %s: %w", args[0], err)
		}
		fmt.Println(summary.Text)
		return nil
	}

	summary, err := summarizer.SynthesizeAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to summarize documents: %w", err)
	}
	fmt.Println(summary.Text)
	fmt.Printf("\nDocuments: %s\n", strings.Join(summary.Sources, ", "))
	return nil
}
