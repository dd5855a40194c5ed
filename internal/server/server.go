package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
	"github.com/aryamansethi1503/summarizationWithAI/internal/usecase"
)

// Server exposes the session pipeline over a JSON HTTP API.
type Server struct {
	session    *usecase.Session
	ingestor   *usecase.Ingestor
	answerer   *usecase.Answerer
	summarizer *usecase.Summarizer
	challenger *usecase.Challenger
	logger     *slog.Logger
}

func New(
	session *usecase.Session,
	ingestor *usecase.Ingestor,
	answerer *usecase.Answerer,
	summarizer *usecase.Summarizer,
	challenger *usecase.Challenger,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		session:    session,
		ingestor:   ingestor,
		answerer:   answerer,
		summarizer: summarizer,
		challenger: challenger,
		logger:     logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /new-session/", s.handleNewSession)
	mux.HandleFunc("POST /upload-chunk/", s.handleUploadChunk)
	mux.HandleFunc("POST /upload-document/", s.handleUploadDocument)
	mux.HandleFunc("POST /delete-document/", s.handleDeleteDocument)
	mux.HandleFunc("POST /chat/", s.handleChat)
	mux.HandleFunc("POST /summarize/", s.handleSummarize)
	mux.HandleFunc("POST /summarize-all/", s.handleSummarizeAll)
	mux.HandleFunc("POST /translate/", s.handleTranslate)
	mux.HandleFunc("POST /challenge/", s.handleChallenge)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// decode parses the request body into v, rejecting unknown or malformed
// payloads before any store or generator work happens.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", domain.ErrInvalidArgument, err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyContent):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStaleEpoch):
		status = http.StatusConflict
	default:
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			status = http.StatusBadGateway
		} else {
			status = http.StatusInternalServerError
		}
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
