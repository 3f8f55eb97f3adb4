package submission

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu        sync.Mutex
	inserted  []Record
	marked    []string
	insertErr error
	markErr   error
	block     chan struct{}
	calls     []string
}

func (f *fakeWriter) Insert(_ context.Context, rec Record) (Record, error) {
	if f.block != nil {
		<-f.block
	}
	if f.insertErr != nil {
		return Record{}, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "insert "+rec.Email)
	rec.ID = "sub-1"
	rec.CreatedAt = time.Unix(1700000000, 0).UTC()
	f.inserted = append(f.inserted, rec)
	return rec, nil
}

func (f *fakeWriter) MarkPDFDownloaded(_ context.Context, email string) (time.Time, error) {
	if f.markErr != nil {
		return time.Time{}, f.markErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "mark "+email)
	f.marked = append(f.marked, email)
	return time.Unix(1700000100, 0).UTC(), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherSubmitEmitsEvent(t *testing.T) {
	w := &fakeWriter{}
	d := NewDispatcher(w, discardLogger(), time.Second)

	var (
		mu     sync.Mutex
		events []Event
	)
	d.OnEvent(func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	d.Submit(Record{Email: "a@example.com", Name: "A", LostRevenueMonthly: 1200})
	d.MarkDownloaded("a@example.com")
	require.NoError(t, d.Wait(context.Background()))

	assert.Len(t, w.inserted, 1)
	assert.Equal(t, []string{"a@example.com"}, w.marked)

	require.Len(t, events, 2)
	types := map[string]Event{}
	for _, e := range events {
		types[e.Type] = e
	}
	assert.Equal(t, "sub-1", types[EventSubmissionCreated].SubmissionID)
	assert.Equal(t, 1200.0, types[EventSubmissionCreated].LostRevenueMonthly)
	assert.Equal(t, "a@example.com", types[EventPDFDownloaded].Email)
}

func TestDispatcherFailuresAreSwallowed(t *testing.T) {
	w := &fakeWriter{insertErr: errors.New("disk full"), markErr: ErrNotFound}
	d := NewDispatcher(w, discardLogger(), time.Second)

	called := false
	d.OnEvent(func(Event) { called = true })

	d.Submit(Record{Email: "a@example.com"})
	d.MarkDownloaded("a@example.com")
	require.NoError(t, d.Wait(context.Background()))

	assert.False(t, called)
}

func TestDispatcherSubmitDoesNotBlock(t *testing.T) {
	w := &fakeWriter{block: make(chan struct{})}
	d := NewDispatcher(w, discardLogger(), time.Second)

	start := time.Now()
	d.Submit(Record{Email: "a@example.com"})
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	close(w.block)
	require.NoError(t, d.Wait(context.Background()))
	assert.Len(t, w.inserted, 1)
}

func (f *fakeWriter) markedEmails() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.marked...)
}

func TestDispatcherOrdersJobsPerEmail(t *testing.T) {
	w := &fakeWriter{block: make(chan struct{})}
	d := NewDispatcher(w, discardLogger(), time.Second)

	d.Submit(Record{Email: "a@example.com"})
	d.MarkDownloaded("a@example.com")

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, w.markedEmails(), "download marked before its insert")

	close(w.block)
	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, []string{"insert a@example.com", "mark a@example.com"}, w.calls)
	assert.Empty(t, d.tails)
}

func TestDispatcherEmailsDoNotBlockEachOther(t *testing.T) {
	w := &fakeWriter{block: make(chan struct{})}
	d := NewDispatcher(w, discardLogger(), time.Second)

	d.Submit(Record{Email: "a@example.com"})
	d.MarkDownloaded("b@example.com")

	require.Eventually(t, func() bool {
		return len(w.markedEmails()) == 1
	}, time.Second, 5*time.Millisecond)

	close(w.block)
	require.NoError(t, d.Wait(context.Background()))
}
