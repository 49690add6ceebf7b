package core

import (
	"context"

	"github.com/markdave123-py/VisionOCR/internal/models"
)

// Recognizer sends one document image to an OCR-capable model and returns
// its structured reply.
type Recognizer interface {
	Recognize(ctx context.Context, data []byte, mimeType string) (*models.Payload, error)
}
