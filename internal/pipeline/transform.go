package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/quake-views/internal/domain"
	"github.com/couchcryptid/quake-views/internal/linked"
	"github.com/couchcryptid/quake-views/internal/views"
)

// SnapshotBuilder implements Transformer. It owns the recomputation session
// and turns selection events into serialized view snapshots. The mutex
// serializes access between the pipeline goroutine and the HTTP surface,
// preserving the session's one-selection-at-a-time model.
type SnapshotBuilder struct {
	mu      sync.Mutex
	session *linked.Session
	logger  *slog.Logger
}

// NewSnapshotBuilder creates a SnapshotBuilder around a session.
func NewSnapshotBuilder(session *linked.Session, logger *slog.Logger) *SnapshotBuilder {
	return &SnapshotBuilder{
		session: session,
		logger:  logger,
	}
}

// Build resolves a selection and derives the three linked views.
func (b *SnapshotBuilder) Build(sel domain.Selection) (views.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	res, err := b.session.OnSelection(sel)
	if err != nil {
		return views.Snapshot{}, err
	}
	return views.BuildSnapshot(b.session.ID(), res.Region, res.Reference), nil
}

// Transform parses a raw selection event and builds its snapshot event.
func (b *SnapshotBuilder) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	var sel domain.Selection
	if err := json.Unmarshal(raw.Value, &sel); err != nil {
		return domain.OutputEvent{}, fmt.Errorf("parse selection event: %w", err)
	}

	snap, err := b.Build(sel)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	value, err := json.Marshal(snap)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("serialize snapshot: %w", err)
	}

	return domain.OutputEvent{
		Key:   snapshotKey(snap),
		Value: value,
		Headers: map[string]string{
			"selection_empty": fmt.Sprintf("%t", snap.SelectedID == nil),
			"processed_at":    snap.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// snapshotKey keys populated snapshots by selected record so consumers can
// compact per selection; empty-selection snapshots share a fixed key.
func snapshotKey(snap views.Snapshot) []byte {
	if snap.SelectedID == nil {
		return []byte("empty")
	}
	return []byte(fmt.Sprintf("sel-%d", *snap.SelectedID))
}
