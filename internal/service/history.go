package service

import (
	"context"
	"sync"

	"thermostat_controller/internal/control"
	"thermostat_controller/internal/repository"
)

// Settings keys for the persisted ring buffer.
const (
	keyHistorySamples = "history.samples"
	keyHistoryIndex   = "history.index"
	keyHistoryFilled  = "history.filled"
)

// HistoryService wraps the in-memory ring with durable persistence: the
// whole buffer plus cursor and filled flag are written after every single
// append. That is a deliberate trade of write volume for zero data loss on
// power cut.
type HistoryService struct {
	settings repository.Settings

	mu   sync.Mutex
	ring *control.History
}

func NewHistoryService(settings repository.Settings) *HistoryService {
	return &HistoryService{settings: settings, ring: control.NewHistory()}
}

// LoadOrInit restores the ring from the store. Absent or corrupted state
// (wrong blob length, cursor out of range) resets to the empty all-missing
// buffer rather than failing.
func (s *HistoryService) LoadOrInit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.settings.GetBytes(ctx, keyHistorySamples)
	if err != nil {
		return err
	}
	if blob == nil {
		s.ring.Reset()
		return nil
	}
	index, err := s.settings.GetInt(ctx, keyHistoryIndex, 0)
	if err != nil {
		return err
	}
	filled, err := s.settings.GetBool(ctx, keyHistoryFilled, false)
	if err != nil {
		return err
	}
	if err := s.ring.Restore(blob, index, filled); err != nil {
		s.ring.Reset()
	}
	return nil
}

// Append records a sample and persists the full buffer state before
// returning.
func (s *HistoryService) Append(ctx context.Context, sample float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ring.Append(sample)

	blob, err := s.ring.MarshalBinary()
	if err != nil {
		return err
	}
	if err := s.settings.PutBytes(ctx, keyHistorySamples, blob); err != nil {
		return err
	}
	if err := s.settings.PutInt(ctx, keyHistoryIndex, s.ring.Index()); err != nil {
		return err
	}
	return s.settings.PutBool(ctx, keyHistoryFilled, s.ring.Filled())
}

// ReadOrdered returns the stored samples oldest first.
func (s *HistoryService) ReadOrdered() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.ReadOrdered()
}
