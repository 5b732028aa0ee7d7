// Package journal records the outcome of every gateway call for
// operator diagnostics. Entries are operational telemetry only; no
// workflow state is reconstructed from them.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Outcome describes how a gateway call completion was handled.
type Outcome string

const (
	// OutcomeApplied means the completion updated workflow state.
	OutcomeApplied Outcome = "applied"
	// OutcomeStale means a newer completion had already been applied and
	// this one was discarded.
	OutcomeStale Outcome = "stale"
	// OutcomeFailed means the call returned an error.
	OutcomeFailed Outcome = "failed"
)

// Entry is one recorded gateway call completion.
type Entry struct {
	ID         string        `json:"id"`
	Capability string        `json:"capability"`
	Sequence   uint64        `json:"sequence"`
	Outcome    Outcome       `json:"outcome"`
	Error      string        `json:"error,omitempty"`
	Latency    time.Duration `json:"latency_ms"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Store persists journal entries.
type Store interface {
	AppendEntry(ctx context.Context, entry Entry) error
	RecentEntries(ctx context.Context, limit int) ([]Entry, error)
}

// Emitter records journal entries. A nil emitter or nil store is a no-op.
type Emitter struct {
	store Store
	clock func() time.Time
	newID func() string
}

// NewEmitter creates a journal emitter backed by store.
func NewEmitter(store Store) *Emitter {
	return &Emitter{store: store, clock: time.Now, newID: uuid.NewString}
}

// Emit records one entry, filling in the ID and timestamp when absent.
func (e *Emitter) Emit(ctx context.Context, entry Entry) error {
	if e == nil || e.store == nil {
		return nil
	}
	if entry.ID == "" {
		if e.newID == nil {
			entry.ID = uuid.NewString()
		} else {
			entry.ID = e.newID()
		}
	}
	if entry.RecordedAt.IsZero() {
		if e.clock == nil {
			entry.RecordedAt = time.Now().UTC()
		} else {
			entry.RecordedAt = e.clock().UTC()
		}
	}
	return e.store.AppendEntry(ctx, entry)
}
