package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/markdave123-py/VisionOCR/internal/core"
	"github.com/markdave123-py/VisionOCR/internal/core/store"
	"github.com/markdave123-py/VisionOCR/internal/models"
)

var ErrNotFound = errors.New("document not found")

// Submitter starts OCR for an intaken record.
type Submitter interface {
	Submit(id string, file models.UploadFile) error
}

// DocumentService is the intake side of the application and the read/remove
// surface used by the HTTP handlers.
type DocumentService struct {
	store    *store.Store
	previews core.PreviewStore
	ocr      Submitter
	now      func() time.Time
}

func NewDocumentService(st *store.Store, previews core.PreviewStore, ocr Submitter) *DocumentService {
	return &DocumentService{store: st, previews: previews, ocr: ocr, now: time.Now}
}

// Ingest creates one pending record per file, in input order, puts the batch
// in front of the store and starts OCR for each file without waiting for it.
// Files are not validated. The returned records are the pending snapshots.
func (s *DocumentService) Ingest(ctx context.Context, files []models.UploadFile) ([]models.Record, error) {
	now := s.now()
	records := make([]models.Record, 0, len(files))

	for i := range files {
		f := &files[i]
		f.Name = displayName(f.Name)
		if f.ContentType == "" {
			f.ContentType = http.DetectContentType(f.Data)
		}

		id := uuid.NewString()
		ref, err := s.previews.Put(ctx, id, f.Name, f.ContentType, f.Data)
		if err != nil {
			s.releaseAll(ctx, records)
			return nil, fmt.Errorf("allocate preview for %q: %w", f.Name, err)
		}

		records = append(records, models.Record{
			ID:          id,
			FileName:    f.Name,
			ContentType: f.ContentType,
			PreviewRef:  ref,
			Status:      models.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.store.InsertPrepend(records...); err != nil {
		s.releaseAll(ctx, records)
		return nil, err
	}

	for i, rec := range records {
		if err := s.ocr.Submit(rec.ID, files[i]); err != nil {
			log.Printf("DocumentService: could not start OCR for %s: %v", rec.ID, err)
			s.store.ApplyUpdate(models.ProcessingUpdate(rec.ID))
			s.store.ApplyUpdate(models.ErrorUpdate(rec.ID, err.Error()))
		}
	}

	return records, nil
}

// releaseAll frees previews of records that never reached the store.
func (s *DocumentService) releaseAll(ctx context.Context, records []models.Record) {
	for _, rec := range records {
		if err := s.previews.Release(ctx, rec.PreviewRef); err != nil {
			log.Printf("DocumentService: releasing preview of %s failed: %v", rec.ID, err)
		}
	}
}

func (s *DocumentService) Get(id string) (models.Record, error) {
	rec, ok := s.store.Get(id)
	if !ok {
		return models.Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *DocumentService) List() []models.Record {
	return s.store.List()
}

// Processing reports whether any record is still being processed.
func (s *DocumentService) Processing() bool {
	return s.store.AnyProcessing()
}

func (s *DocumentService) Remove(ctx context.Context, id string) bool {
	return s.store.Remove(ctx, id)
}

func (s *DocumentService) Clear(ctx context.Context) int {
	return s.store.Clear(ctx)
}

// Preview returns the original bytes of a live record.
func (s *DocumentService) Preview(ctx context.Context, id string) ([]byte, string, error) {
	rec, ok := s.store.Get(id)
	if !ok {
		return nil, "", ErrNotFound
	}
	data, err := s.previews.Open(ctx, rec.PreviewRef)
	if err != nil {
		return nil, "", fmt.Errorf("open preview: %w", err)
	}
	return data, rec.ContentType, nil
}

// displayName strips any client-side path from an uploaded file name.
func displayName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "untitled"
	}
	return name
}
