package ocr_engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/VisionOCR/internal/core"
	"github.com/markdave123-py/VisionOCR/internal/models"
)

var ErrClosed = errors.New("ocr engine is closed")

const defaultFailureMessage = "Failed to process image"

// Updater is the write side of the result store used by the engine.
type Updater interface {
	ApplyUpdate(u models.Update) (models.Record, bool)
}

// Engine runs one OCR task per submitted file.
//
// store:      receives every status change.
// recognizer: the external model binding.
// timeout:    deadline of a single model request.
// updates:    completion channel; a single applier goroutine drains it.
// tasks:      in-flight requests, waited on by Close.
type Engine struct {
	store      Updater
	recognizer core.Recognizer
	timeout    time.Duration
	updates    chan models.Update
	tasks      errgroup.Group

	mu     sync.Mutex
	closed bool
	once   sync.Once
	done   chan struct{}
}

func NewEngine(store Updater, recognizer core.Recognizer, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Engine{
		store:      store,
		recognizer: recognizer,
		timeout:    timeout,
		updates:    make(chan models.Update, 64),
		done:       make(chan struct{}),
	}
}

// Start launches the applier goroutine. Calling it more than once is harmless.
func (e *Engine) Start() {
	e.once.Do(func() {
		go e.apply()
	})
}

func (e *Engine) apply() {
	defer close(e.done)

	for u := range e.updates {
		if rec, ok := e.store.ApplyUpdate(u); ok {
			log.Printf("OCREngine: record %s is %s", rec.ID, rec.Status)
		} else {
			log.Printf("OCREngine: dropped %s result for record %s", u.Status, u.ID)
		}
	}
}

// Submit marks the record as processing and starts its OCR request without
// waiting for it. There is no concurrency limit and no way to cancel a
// submitted request; its result is simply dropped if the record is gone.
func (e *Engine) Submit(id string, file models.UploadFile) error {
	e.Start()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	// Applied synchronously so it always precedes the terminal update.
	if _, ok := e.store.ApplyUpdate(models.ProcessingUpdate(id)); !ok {
		return fmt.Errorf("record %s is not pending", id)
	}

	e.tasks.Go(func() error {
		e.updates <- e.Process(context.Background(), id, file)
		return nil
	})
	return nil
}

// Process performs exactly one recognition attempt and maps the outcome to
// a terminal update. It never returns an error or panics: every failure
// becomes an error update for id.
func (e *Engine) Process(ctx context.Context, id string, file models.UploadFile) (u models.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("OCREngine: OCR panic for record %s: %v", id, r)
			u = models.ErrorUpdate(id, fmt.Sprintf("ocr panic: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	payload, err := e.recognizer.Recognize(ctx, file.Data, file.ContentType)
	if err != nil {
		log.Printf("OCREngine: OCR error for record %s (%s): %v", id, file.Name, err)
		return models.ErrorUpdate(id, failureMessage(err))
	}
	if payload == nil {
		return models.ErrorUpdate(id, defaultFailureMessage)
	}
	return models.CompletedUpdate(id, payload)
}

// Close stops accepting files, waits for in-flight requests and for their
// updates to be applied. It returns early with ctx's error if ctx ends first.
func (e *Engine) Close(ctx context.Context) error {
	e.Start()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return e.wait(ctx)
	}
	e.closed = true
	e.mu.Unlock()

	go func() {
		_ = e.tasks.Wait()
		close(e.updates)
	}()

	return e.wait(ctx)
}

func (e *Engine) wait(ctx context.Context) error {
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func failureMessage(err error) string {
	if err == nil || err.Error() == "" {
		return defaultFailureMessage
	}
	return err.Error()
}
