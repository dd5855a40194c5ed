package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/aryamansethi1503/summarizationWithAI/internal/adapter/chunker"
	"github.com/aryamansethi1503/summarizationWithAI/internal/adapter/fs"
	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
	"github.com/aryamansethi1503/summarizationWithAI/internal/usecase"
)

var (
	ingestIncludes []string
	ingestExcludes []string
	ingestReset    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Index local text documents",
	Long: `Index plain-text documents under the given path into the chunk store.

Only pre-extracted text formats are read; PDF, DOCX, and image extraction
happen upstream of this tool.

Examples:
  docquery ingest ./docs
  docquery ingest ./docs --include '**/*.txt' --exclude '**/drafts/**'
  docquery ingest ./docs --reset    # Wipe the session first`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringSliceVar(&ingestIncludes, "include", nil, "glob patterns to include (default **/*.txt, **/*.md)")
	ingestCmd.Flags().StringSliceVar(&ingestExcludes, "exclude", nil, "glob patterns to exclude")
	ingestCmd.Flags().BoolVar(&ingestReset, "reset", false, "start a new session before ingesting")
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := rootDir
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	ctx := cmd.Context()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open chunk store: %w", err)
	}
	defer st.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	session := usecase.NewSession(st)
	if ingestReset {
		if err := session.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	} else if err := session.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	ingestor := usecase.NewIngestor(chunker.NewSizeChunker(cfg.Session.ChunkSize), embedder, st, session)

	walker := fs.NewWalker(ingestIncludes, ingestExcludes)
	files, err := walker.Walk(path)
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", path, err)
	}
	if len(files) == 0 {
		fmt.Println("No documents found.")
		return nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	ingested, chunks := 0, 0
	var skipped []string
	for _, file := range files {
		content, err := fs.ReadFile(file.Path)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: %v", file.Name, err))
			bar.Add(1)
			continue
		}

		n, err := ingestor.Ingest(ctx, content, file.Name)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyContent) {
				skipped = append(skipped, fmt.Sprintf("%s: no extractable content", file.Name))
				bar.Add(1)
				continue
			}
			return fmt.Errorf("failed to ingest %s: %w", file.Name, err)
		}
		ingested++
		chunks += n
		bar.Add(1)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Documents indexed: %d\n", ingested)
	fmt.Printf("  Chunks created:    %d\n", chunks)
	if len(skipped) > 0 {
		fmt.Printf("\nSkipped:\n")
		for _, s := range skipped {
			fmt.Printf("  - %s\n", s)
		}
	}

	return nil
}
