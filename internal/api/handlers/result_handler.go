package handlers

import (
	"bytes"
	"errors"
	"log"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markdave123-py/VisionOCR/internal/core/render"
	"github.com/markdave123-py/VisionOCR/internal/services"
)

// ResultHandler serves the rendered views of a record and the data behind the
// copy and export actions.
type ResultHandler struct {
	documents *services.DocumentService
}

func NewResultHandler(documents *services.DocumentService) *ResultHandler {
	return &ResultHandler{documents: documents}
}

// ViewDocument renders the record card; ?mode=raw switches a completed record
// to its raw text.
func (h *ResultHandler) ViewDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.documents.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Card(&buf, rec, render.ParseMode(r.URL.Query().Get("mode")), previewURL(id)); err != nil {
		log.Printf("ResultHandler: render %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// CopyText returns rawText for the clipboard; empty when there is no result.
func (h *ResultHandler) CopyText(w http.ResponseWriter, r *http.Request) {
	rec, err := h.documents.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(rec.RawText()))
}

// ExportDocument offers the formatted view as a standalone HTML download.
func (h *ResultHandler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	rec, err := h.documents.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Export(&buf, rec); err != nil {
		if errors.Is(err, render.ErrNoPayload) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": render.ExportFileName(rec.FileName),
	}))
	buf.WriteTo(w)
}
