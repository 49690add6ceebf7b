package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/markdave123-py/VisionOCR/internal/models"
)

type recordResponse struct {
	models.Record
	PreviewURL string `json:"previewUrl"`
}

type listResponse struct {
	Documents  []recordResponse `json:"documents"`
	Processing bool             `json:"processing"`
}

func previewURL(id string) string {
	return "/api/documents/" + id + "/preview"
}

func toResponse(rec models.Record) recordResponse {
	return recordResponse{Record: rec, PreviewURL: previewURL(rec.ID)}
}

func toResponses(records []models.Record) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toResponse(rec))
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	text := http.StatusText(code)
	if err != nil {
		text = err.Error()
	}
	writeJSON(w, code, map[string]string{"error": text})
}
