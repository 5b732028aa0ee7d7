package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/harriothq/experience-console/internal/journal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error")
	}
}

func TestAppendAndRecentRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	entries := []journal.Entry{
		{ID: "e1", Capability: "predict", Sequence: 1, Outcome: journal.OutcomeApplied, Latency: 80 * time.Millisecond, RecordedAt: base},
		{ID: "e2", Capability: "predict", Sequence: 2, Outcome: journal.OutcomeFailed, Error: "gateway returned 500", Latency: 40 * time.Millisecond, RecordedAt: base.Add(time.Second)},
		{ID: "e3", Capability: "list-events", Sequence: 1, Outcome: journal.OutcomeStale, Latency: 200 * time.Millisecond, RecordedAt: base.Add(2 * time.Second)},
	}
	for _, entry := range entries {
		if err := store.AppendEntry(ctx, entry); err != nil {
			t.Fatalf("append %s: %v", entry.ID, err)
		}
	}

	got, err := store.RecentEntries(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "e3" || got[1].ID != "e2" {
		t.Fatalf("order = [%s, %s], want [e3, e2]", got[0].ID, got[1].ID)
	}
	if got[1].Outcome != journal.OutcomeFailed {
		t.Fatalf("Outcome = %q, want %q", got[1].Outcome, journal.OutcomeFailed)
	}
	if got[1].Error != "gateway returned 500" {
		t.Fatalf("Error = %q", got[1].Error)
	}
	if got[1].Latency != 40*time.Millisecond {
		t.Fatalf("Latency = %v, want 40ms", got[1].Latency)
	}
	if !got[0].RecordedAt.Equal(base.Add(2 * time.Second)) {
		t.Fatalf("RecordedAt = %v", got[0].RecordedAt)
	}
}

func TestAppendRequiresID(t *testing.T) {
	store := openTestStore(t)
	if err := store.AppendEntry(context.Background(), journal.Entry{Capability: "predict"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecentDefaultLimit(t *testing.T) {
	store := openTestStore(t)
	got, err := store.RecentEntries(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
