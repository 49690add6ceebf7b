package models

import (
	"time"
)

// Status is the lifecycle state of an uploaded document.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// CanTransition reports whether a record in state s may move to next.
// Only pending -> processing -> {completed, error} is allowed.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusError
	default:
		return false
	}
}

// Record represents one uploaded file and its OCR outcome.
type Record struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	PreviewRef  string    `json:"-"` // released by the store, never by callers
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"`
	Payload     *Payload  `json:"data,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Payload is the structured OCR result of a completed record.
type Payload struct {
	Blocks  []Block `json:"blocks"`
	RawText string  `json:"rawText"`
}

// Update carries the fields written to a record after creation.
// Error is only meaningful with StatusError, Payload only with StatusCompleted.
type Update struct {
	ID      string
	Status  Status
	Error   string
	Payload *Payload
}

func ProcessingUpdate(id string) Update {
	return Update{ID: id, Status: StatusProcessing}
}

func CompletedUpdate(id string, payload *Payload) Update {
	return Update{ID: id, Status: StatusCompleted, Payload: payload}
}

func ErrorUpdate(id, message string) Update {
	return Update{ID: id, Status: StatusError, Error: message}
}

// Apply merges u into r. Callers check Status.CanTransition first.
func (r *Record) Apply(u Update, now time.Time) {
	r.Status = u.Status
	r.Error = ""
	r.Payload = nil

	switch u.Status {
	case StatusError:
		r.Error = u.Error
	case StatusCompleted:
		r.Payload = u.Payload
	}
	r.UpdatedAt = now
}

// RawText returns the payload's raw text, or "" when there is no payload.
func (r *Record) RawText() string {
	if r == nil || r.Payload == nil {
		return ""
	}
	return r.Payload.RawText
}

// UploadFile is one file handed to intake.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}
