package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/VisionOCR/internal/api/handlers"
	apimw "github.com/markdave123-py/VisionOCR/internal/api/middlewares"
	"github.com/markdave123-py/VisionOCR/internal/config"
	"github.com/markdave123-py/VisionOCR/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewRouter builds and wires all routes.
func NewRouter(cfg *config.Config, documents *services.DocumentService) http.Handler {
	docHandler := handlers.NewDocumentHandler(documents, cfg.MaxUploadMB)
	resultHandler := handlers.NewResultHandler(documents)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	r.Route("/api/documents", func(api chi.Router) {
		api.With(apimw.UploadLimit(cfg.MaxUploadMB)).Post("/", docHandler.UploadDocuments)
		api.Get("/", docHandler.GetDocuments)
		api.Delete("/", docHandler.ClearDocuments)

		api.Route("/{id}", func(doc chi.Router) {
			doc.Get("/", docHandler.GetDocument)
			doc.Delete("/", docHandler.RemoveDocument)
			doc.Get("/preview", docHandler.GetPreview)
			doc.Get("/view", resultHandler.ViewDocument)
			doc.Get("/text", resultHandler.CopyText)
			doc.Get("/export", resultHandler.ExportDocument)
		})
	})

	// Serve static files from the web directory
	r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))

	return r
}

func NewServer(cfg *config.Config, documents *services.DocumentService) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, documents),
		ReadHeaderTimeout: 10 * time.Second,
	}}
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
