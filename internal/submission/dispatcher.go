package submission

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Event types reported to the listener.
const (
	EventSubmissionCreated = "submission_created"
	EventPDFDownloaded     = "pdf_downloaded"
)

// Event describes a persisted lead change.
type Event struct {
	Type               string    `json:"type"`
	SubmissionID       string    `json:"submissionId,omitempty"`
	Email              string    `json:"email"`
	Name               string    `json:"name,omitempty"`
	BusinessName       string    `json:"businessName,omitempty"`
	LostRevenueMonthly float64   `json:"lostRevenueMonthly,omitempty"`
	At                 time.Time `json:"at"`
}

// Writer is the part of Store the dispatcher needs.
type Writer interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	MarkPDFDownloaded(ctx context.Context, email string) (time.Time, error)
}

// Dispatcher persists submissions in the background so a slow or failing
// database never delays or changes an HTTP response. Jobs for the same
// email run in the order they were queued.
type Dispatcher struct {
	store    Writer
	logger   *slog.Logger
	timeout  time.Duration
	listener func(Event)
	wg       sync.WaitGroup

	mu    sync.Mutex
	tails map[string]chan struct{}
}

func NewDispatcher(store Writer, logger *slog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		store:   store,
		logger:  logger,
		timeout: timeout,
		tails:   make(map[string]chan struct{}),
	}
}

// enqueue runs job after every earlier job for email has finished.
func (d *Dispatcher) enqueue(email string, job func(ctx context.Context)) {
	done := make(chan struct{})

	d.mu.Lock()
	prev := d.tails[email]
	d.tails[email] = done
	d.mu.Unlock()

	d.wg.Go(func() {
		defer func() {
			d.mu.Lock()
			if d.tails[email] == done {
				delete(d.tails, email)
			}
			d.mu.Unlock()
			close(done)
		}()

		if prev != nil {
			<-prev
		}
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		job(ctx)
	})
}

// OnEvent registers fn to be called after each successful write. It must
// be set before the first Submit.
func (d *Dispatcher) OnEvent(fn func(Event)) {
	d.listener = fn
}

// Submit stores rec asynchronously.
func (d *Dispatcher) Submit(rec Record) {
	d.enqueue(rec.Email, func(ctx context.Context) {
		stored, err := d.store.Insert(ctx, rec)
		if err != nil {
			d.logger.Error("storing submission failed", "email", rec.Email, "error", err)
			return
		}
		d.logger.Info("submission stored", "id", stored.ID, "industry", stored.Industry)
		d.emit(Event{
			Type:               EventSubmissionCreated,
			SubmissionID:       stored.ID,
			Email:              stored.Email,
			Name:               stored.Name,
			BusinessName:       stored.BusinessName,
			LostRevenueMonthly: stored.LostRevenueMonthly,
			At:                 stored.CreatedAt,
		})
	})
}

// MarkDownloaded flags the latest submission for email asynchronously.
func (d *Dispatcher) MarkDownloaded(email string) {
	d.enqueue(email, func(ctx context.Context) {
		at, err := d.store.MarkPDFDownloaded(ctx, email)
		if errors.Is(err, ErrNotFound) {
			d.logger.Warn("pdf download for unknown submission", "email", email)
			return
		}
		if err != nil {
			d.logger.Error("marking pdf download failed", "email", email, "error", err)
			return
		}
		d.emit(Event{Type: EventPDFDownloaded, Email: email, At: at})
	})
}

func (d *Dispatcher) emit(e Event) {
	if d.listener != nil {
		d.listener(e)
	}
}

// Wait blocks until in-flight work finishes or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
