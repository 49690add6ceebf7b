package store

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/VisionOCR/internal/models"
)

type countingReleaser struct {
	mu    sync.Mutex
	calls map[string]int
}

func newCountingReleaser() *countingReleaser {
	return &countingReleaser{calls: map[string]int{}}
}

func (c *countingReleaser) Release(_ context.Context, ref string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[ref]++
	return nil
}

func (c *countingReleaser) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

func pending(id string) models.Record {
	return models.Record{ID: id, FileName: id + ".png", PreviewRef: "ref-" + id, Status: models.StatusPending}
}

func ids(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestInsertPrependKeepsBatchOrder(t *testing.T) {
	s := New(newCountingReleaser())

	require.NoError(t, s.InsertPrepend(pending("a"), pending("b")))
	require.NoError(t, s.InsertPrepend(pending("c"), pending("d")))

	require.Equal(t, []string{"c", "d", "a", "b"}, ids(s.List()))
}

func TestInsertPrependRejectsDuplicates(t *testing.T) {
	s := New(newCountingReleaser())
	require.NoError(t, s.InsertPrepend(pending("a")))

	require.ErrorIs(t, s.InsertPrepend(pending("b"), pending("a")), ErrDuplicateID)
	require.ErrorIs(t, s.InsertPrepend(pending("c"), pending("c")), ErrDuplicateID)
	require.Equal(t, []string{"a"}, ids(s.List()))
}

func TestApplyUpdateAbsentIsNoop(t *testing.T) {
	s := New(newCountingReleaser())
	require.NoError(t, s.InsertPrepend(pending("a")))
	before := s.List()

	_, ok := s.ApplyUpdate(models.ErrorUpdate("missing", "timeout"))

	require.False(t, ok)
	require.Equal(t, before, s.List())
}

func TestLifecycleTransitions(t *testing.T) {
	s := New(newCountingReleaser())
	require.NoError(t, s.InsertPrepend(pending("a")))

	_, ok := s.ApplyUpdate(models.CompletedUpdate("a", &models.Payload{}))
	require.False(t, ok, "pending cannot jump to completed")

	rec, ok := s.ApplyUpdate(models.ProcessingUpdate("a"))
	require.True(t, ok)
	require.Equal(t, models.StatusProcessing, rec.Status)
	require.True(t, s.AnyProcessing())

	payload := &models.Payload{RawText: "hello"}
	rec, ok = s.ApplyUpdate(models.CompletedUpdate("a", payload))
	require.True(t, ok)
	require.Equal(t, models.StatusCompleted, rec.Status)
	require.Equal(t, "hello", rec.RawText())
	require.False(t, s.AnyProcessing())

	for _, u := range []models.Update{
		models.ErrorUpdate("a", "late"),
		models.ProcessingUpdate("a"),
		models.CompletedUpdate("a", &models.Payload{RawText: "other"}),
	} {
		_, ok := s.ApplyUpdate(u)
		require.False(t, ok)
	}

	rec, _ = s.Get("a")
	require.Equal(t, models.StatusCompleted, rec.Status)
	require.Equal(t, "hello", rec.RawText())
	require.Empty(t, rec.Error)
}

func TestRemoveIsIdempotent(t *testing.T) {
	rel := newCountingReleaser()
	s := New(rel)
	require.NoError(t, s.InsertPrepend(pending("a"), pending("b")))

	require.True(t, s.Remove(context.Background(), "a"))
	after := s.List()
	require.False(t, s.Remove(context.Background(), "a"))

	require.Equal(t, after, s.List())
	require.Equal(t, []string{"b"}, ids(after))
	require.Equal(t, 1, rel.calls["ref-a"])
	require.Equal(t, 1, rel.total())
}

func TestApplyAfterRemoveDoesNotResurrect(t *testing.T) {
	s := New(newCountingReleaser())
	require.NoError(t, s.InsertPrepend(pending("a")))
	s.ApplyUpdate(models.ProcessingUpdate("a"))
	s.Remove(context.Background(), "a")

	_, ok := s.ApplyUpdate(models.CompletedUpdate("a", &models.Payload{}))

	require.False(t, ok)
	require.Zero(t, s.Len())
}

func TestClearReleasesEveryPreview(t *testing.T) {
	rel := newCountingReleaser()
	s := New(rel)
	require.NoError(t, s.InsertPrepend(pending("a"), pending("b"), pending("c")))
	s.Remove(context.Background(), "b")

	require.Equal(t, 2, s.Clear(context.Background()))
	require.Zero(t, s.Len())
	require.Zero(t, s.Clear(context.Background()))

	require.Equal(t, 3, rel.total())
	for _, ref := range []string{"ref-a", "ref-b", "ref-c"} {
		require.Equal(t, 1, rel.calls[ref], ref)
	}
}

func TestReleaseCountMatchesInsertedRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		rel := newCountingReleaser()
		s := New(rel)
		inserted := 0

		for step := 0; step < 50; step++ {
			switch rng.Intn(4) {
			case 0, 1:
				id := fmt.Sprintf("r%d-%d", round, inserted)
				require.NoError(t, s.InsertPrepend(pending(id)))
				inserted++
			case 2:
				if inserted > 0 {
					s.Remove(context.Background(), fmt.Sprintf("r%d-%d", round, rng.Intn(inserted)))
				}
			case 3:
				if rng.Intn(5) == 0 {
					s.Clear(context.Background())
				}
			}
		}
		s.Clear(context.Background())

		require.Equal(t, inserted, rel.total())
		for ref, n := range rel.calls {
			require.Equal(t, 1, n, ref)
		}
	}
}

func TestConcurrentRemovalReleasesOnce(t *testing.T) {
	rel := newCountingReleaser()
	s := New(rel)
	require.NoError(t, s.InsertPrepend(pending("a")))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Remove(context.Background(), "a")
			s.Clear(context.Background())
		}()
	}
	wg.Wait()

	require.Equal(t, 1, rel.total())
}
