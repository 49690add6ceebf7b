package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markdave123-py/VisionOCR/internal/models"
	"github.com/markdave123-py/VisionOCR/internal/services"
)

type DocumentHandler struct {
	documents   *services.DocumentService
	maxUploadMB int
}

func NewDocumentHandler(documents *services.DocumentService, maxUploadMB int) *DocumentHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 32
	}
	return &DocumentHandler{documents: documents, maxUploadMB: maxUploadMB}
}

// UploadDocuments accepts the multipart "files" field (or "file") and
// starts OCR for every file in it.
func (h *DocumentHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(int64(h.maxUploadMB) << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, errors.New("upload too large"))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	headers = append(headers, r.MultipartForm.File["file"]...)
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no files uploaded"))
		return
	}

	files := make([]models.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readUpload(fh)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		files = append(files, f)
	}

	records, err := h.documents.Ingest(r.Context(), files)
	if err != nil {
		log.Printf("DocumentHandler: intake failed: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponses(records))
}

func readUpload(fh *multipart.FileHeader) (models.UploadFile, error) {
	f, err := fh.Open()
	if err != nil {
		return models.UploadFile{}, fmt.Errorf("open %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.UploadFile{}, fmt.Errorf("read %q: %w", fh.Filename, err)
	}

	return models.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		Documents:  toResponses(h.documents.List()),
		Processing: h.documents.Processing(),
	})
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	rec, err := h.documents.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rec))
}

// RemoveDocument is idempotent: removing an unknown id also answers 204.
func (h *DocumentHandler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	h.documents.Remove(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandler) ClearDocuments(w http.ResponseWriter, r *http.Request) {
	h.documents.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.documents.Preview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}
