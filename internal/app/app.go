// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/markdave123-py/VisionOCR/internal/config"
	"github.com/markdave123-py/VisionOCR/internal/core"
	"github.com/markdave123-py/VisionOCR/internal/core/llm"
	objectclient "github.com/markdave123-py/VisionOCR/internal/core/object-client"
	"github.com/markdave123-py/VisionOCR/internal/core/ocr_engine"
	"github.com/markdave123-py/VisionOCR/internal/core/preview"
	"github.com/markdave123-py/VisionOCR/internal/core/store"
	"github.com/markdave123-py/VisionOCR/internal/services"
)

type App struct {
	Store     *store.Store
	Engine    *ocr_engine.Engine
	Documents *services.DocumentService
	Server    *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	previews, err := newPreviewStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the preview store, %w", err)
	}

	recognizer := llm.NewGeminiOCR(cfg.AIAPIKey, cfg.GenModel, cfg.Temperature)
	return New(cfg, previews, recognizer), nil
}

// New wires the application around the given collaborators.
func New(cfg *config.Config, previews core.PreviewStore, recognizer core.Recognizer) *App {
	resultStore := store.New(previews)

	engine := ocr_engine.NewEngine(resultStore, recognizer, cfg.OCRTimeout)
	engine.Start()

	documents := services.NewDocumentService(resultStore, previews, engine)

	return &App{
		Store:     resultStore,
		Engine:    engine,
		Documents: documents,
		Server:    NewServer(cfg, documents),
	}
}

func newPreviewStore(ctx context.Context, cfg *config.Config) (core.PreviewStore, error) {
	if cfg.PreviewBackend != config.PreviewBackendS3 {
		log.Println("Previews are kept in memory.")
		return preview.NewMemoryStore(), nil
	}

	objClient, err := objectclient.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	return preview.NewObjectStore(objClient), nil
}

// Close drains in-flight OCR requests, then clears the store so every
// preview is released.
func (a *App) Close(ctx context.Context) error {
	err := a.Engine.Close(ctx)
	if n := a.Store.Clear(context.WithoutCancel(ctx)); n > 0 {
		log.Printf("Released %d previews on shutdown.", n)
	}
	return err
}
