package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aryamansethi1503/summarizationWithAI/internal/adapter/chunker"
	"github.com/aryamansethi1503/summarizationWithAI/internal/server"
	"github.com/aryamansethi1503/summarizationWithAI/internal/usecase"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the session pipeline as an HTTP JSON API.

Examples:
  docquery serve
  docquery serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open chunk store: %w", err)
	}
	defer st.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	generator, err := newGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	session := usecase.NewSession(st)
	if err := session.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	ingestor := usecase.NewIngestor(chunker.NewSizeChunker(cfg.Session.ChunkSize), embedder, st, session)
	retriever := usecase.NewRetriever(embedder, st)
	answerer := usecase.NewAnswerer(retriever, generator, cfg.Session.ChatTopK)
	summarizer := usecase.NewSummarizer(st, generator)
	challenger := usecase.NewChallenger(retriever, generator, cfg.Session.ChallengeTopK)

	logger := newLogger(cfg)
	srv := server.New(session, ingestor, answerer, summarizer, challenger, logger)

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "store", cfg.Store.Backend,
			"embedding", embedder.ModelName(), "llm", generator.ModelName())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
