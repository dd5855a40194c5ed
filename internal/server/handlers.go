package server

import (
	"net/http"
)

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Reset(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "New session started. Database is clear.",
	})
}

type uploadChunkRequest struct {
	Chunk      string `json:"chunk"`
	Filename   string `json:"filename"`
	ChunkIndex int    `json:"chunk_index"`
}

func (s *Server) handleUploadChunk(w http.ResponseWriter, r *http.Request) {
	var req uploadChunkRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.ingestor.IngestChunk(r.Context(), req.Chunk, req.Filename, req.ChunkIndex); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

type uploadDocumentRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

type uploadDocumentResponse struct {
	Status string `json:"status"`
	Chunks int    `json:"chunks"`
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	var req uploadDocumentRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	count, err := s.ingestor.Ingest(r.Context(), req.Text, req.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, uploadDocumentResponse{Status: "success", Chunks: count})
}

type deleteDocumentRequest struct {
	Filename string `json:"filename"`
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	var req deleteDocumentRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.session.Unregister(r.Context(), req.Filename); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

type chatRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	answer, err := s.answerer.Answer(r.Context(), req.Query)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, answer)
}

type summarizeRequest struct {
	Filename string `json:"filename"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	summary, err := s.summarizer.SummarizeFile(r.Context(), req.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSummarizeAll(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summarizer.SynthesizeAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	translated, err := s.answerer.Translate(r.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, translateResponse{TranslatedText: translated})
}

type challengeRequest struct {
	Statement string `json:"statement"`
}

type challengeResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	analysis, err := s.challenger.Challenge(r.Context(), req.Statement)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, challengeResponse{Answer: analysis})
}
