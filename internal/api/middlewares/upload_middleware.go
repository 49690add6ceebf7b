package middleware

import (
	"encoding/json"
	"mime"
	"net/http"
)

// UploadLimit rejects requests that are not multipart forms and caps the body
// at maxMB megabytes.
func UploadLimit(maxMB int) func(http.Handler) http.Handler {
	if maxMB <= 0 {
		maxMB = 32
	}
	limit := int64(maxMB) << 20
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || mediaType != "multipart/form-data" {
				reject(w, http.StatusUnsupportedMediaType, "expected multipart/form-data")
				return
			}
			if r.ContentLength > limit {
				reject(w, http.StatusRequestEntityTooLarge, "upload too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
