package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	maxUploadSize = 200 << 20
	maxTextSize   = 1 << 20
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "file is required")
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".m4a"
	}

	if err := os.MkdirAll(s.tempDir, 0755); err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	tmp, err := os.CreateTemp(s.tempDir, "upload-*"+ext)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, err = io.Copy(tmp, file)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("store upload: %v", err))
		return
	}

	s.logger.Info(ctx, "Transcribing upload %s", header.Filename)
	text, err := s.transcriber.Transcribe(ctx, tmpPath)
	if err != nil {
		s.logger.Error(ctx, "Transcription of %s failed: %v", header.Filename, err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"transcription": text})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	text, ok := readText(w, r)
	if !ok {
		return
	}

	summary, err := s.generator.Summarize(r.Context(), text)
	if err != nil {
		s.logger.Error(r.Context(), "Summarize failed: %v", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	text, ok := readText(w, r)
	if !ok {
		return
	}

	cards, err := s.generator.Flashcards(r.Context(), text)
	if err != nil {
		s.logger.Error(r.Context(), "Flashcards failed: %v", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"flashcards": cards})
}

// readText reads a text/plain body. It writes the error response itself.
func readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxTextSize+1))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	if len(data) > maxTextSize {
		writeDetail(w, http.StatusRequestEntityTooLarge, "transcript is too large")
		return "", false
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "transcript text is required")
		return "", false
	}
	return text, true
}

type chatRequest struct {
	Paragraph string `json:"paragraph"`
	Question  string `json:"question"`
}

type chatResponse struct {
	Question    string `json:"question"`
	Context     string `json:"context"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxTextSize)).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "question is required")
		return
	}

	s.memory.Add(req.Paragraph)
	passage := s.memory.Best(req.Question)
	if passage == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "paragraph is required")
		return
	}

	answer, err := s.generator.Answer(r.Context(), req.Question, passage)
	if err != nil {
		s.logger.Error(r.Context(), "Chat failed: %v", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Question:    req.Question,
		Context:     passage,
		Answer:      answer,
		Explanation: fmt.Sprintf("The answer to your question '%s' is based on the context: '%s'.", req.Question, passage),
	})
}
