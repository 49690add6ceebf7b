package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/markdave123-py/VisionOCR/internal/models"
)

var ErrDuplicateID = errors.New("record id already present")

// Releaser frees a preview reference.
type Releaser interface {
	Release(ctx context.Context, ref string) error
}

// Store is the ordered, in-memory collection of upload records.
//
// InsertPrepend, ApplyUpdate, Remove and Clear are its only mutations and each
// runs under the store lock. The store is the only place preview references
// are released: a record's reference is released by whichever of Remove or
// Clear takes the record out, so it is released exactly once.
type Store struct {
	mu       sync.RWMutex
	order    []string
	records  map[string]*models.Record
	releaser Releaser
	now      func() time.Time
}

func New(releaser Releaser) *Store {
	return &Store{
		records:  make(map[string]*models.Record),
		releaser: releaser,
		now:      time.Now,
	}
}

// InsertPrepend adds records in front of the existing ones, keeping their
// relative order. Nothing is inserted if any id is already present.
func (s *Store) InsertPrepend(records ...models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := s.records[r.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		if _, ok := seen[r.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	ids := make([]string, 0, len(records)+len(s.order))
	for i := range records {
		rec := records[i]
		s.records[rec.ID] = &rec
		ids = append(ids, rec.ID)
	}
	s.order = append(ids, s.order...)
	return nil
}

// ApplyUpdate merges u into the record with the same id. It is a no-op when
// the id is absent or when u would not move the record forward in its
// lifecycle. The bool reports whether the update was applied.
func (s *Store) ApplyUpdate(u models.Update) (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[u.ID]
	if !ok {
		return models.Record{}, false
	}
	if !rec.Status.CanTransition(u.Status) {
		log.Printf("Store: ignoring %s -> %s for record %s", rec.Status, u.Status, u.ID)
		return *rec, false
	}

	rec.Apply(u, s.now())
	return *rec, true
}

// Remove deletes the record and releases its preview. Removing an absent id
// is a no-op.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	rec, ok := s.records[id]
	if ok {
		delete(s.records, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	s.release(ctx, rec)
	return true
}

// Clear releases every preview and empties the store. It returns the number
// of records removed.
func (s *Store) Clear(ctx context.Context) int {
	s.mu.Lock()
	removed := make([]*models.Record, 0, len(s.order))
	for _, id := range s.order {
		removed = append(removed, s.records[id])
	}
	s.order = nil
	s.records = make(map[string]*models.Record)
	s.mu.Unlock()

	for _, rec := range removed {
		s.release(ctx, rec)
	}
	return len(removed)
}

func (s *Store) release(ctx context.Context, rec *models.Record) {
	if rec.PreviewRef == "" || s.releaser == nil {
		return
	}
	if err := s.releaser.Release(ctx, rec.PreviewRef); err != nil {
		log.Printf("Store: releasing preview of %s failed: %v", rec.ID, err)
	}
}

func (s *Store) Get(id string) (models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return models.Record{}, false
	}
	return *rec, true
}

// List returns a snapshot of all records, newest batch first.
func (s *Store) List() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.records[id])
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// AnyProcessing reports whether at least one record is being processed.
// It is advisory only: records complete independently.
func (s *Store) AnyProcessing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.Status == models.StatusProcessing {
			return true
		}
	}
	return false
}
