package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/summarizer"
	"github.com/BALASANKARP/Edurecap/internal/transcriber"
)

const shutdownTimeout = 10 * time.Second

// Server is the remote processing service the client pipeline talks to.
type Server struct {
	addr        string
	tempDir     string
	transcriber transcriber.Transcriber
	generator   summarizer.Generator
	logger      logger.Logger
	memory      *paragraphMemory
}

func New(addr, tempDir string, tr transcriber.Transcriber, gen summarizer.Generator, log logger.Logger) *Server {
	return &Server{
		addr:        addr,
		tempDir:     tempDir,
		transcriber: tr,
		generator:   gen,
		logger:      log,
		memory:      newParagraphMemory(maxParagraphs),
	}
}

// Handler returns the routed service with CORS and access logging.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(s.logMiddleware)

	router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/transcribe/", s.handleTranscribe).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/summarize/", s.handleSummarize).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/flashcards/", s.handleFlashcards).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost, http.MethodOptions)

	return router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Processing service listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "Shutting down processing service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
