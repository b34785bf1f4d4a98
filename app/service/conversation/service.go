package conversation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/do"
)

const (
	contextTTL    = 30 * time.Minute
	sweepInterval = 10 * time.Minute

	// Expired keys are deleted in short write-locked batches so a large map
	// never stays locked for a full sweep.
	sweepBatchSize = 256
)

// Service owns the per-user conversation contexts. Concurrent turns for the
// same user are expected to be serialized by the caller; the mutex only
// protects the shared map across different users.
type Service struct {
	mu       sync.RWMutex
	contexts map[string]Context

	now func() time.Time
}

func New(_ *do.Injector) (*Service, error) {
	return NewService(), nil
}

func NewService() *Service {
	return &Service{
		contexts: make(map[string]Context),
		now:      time.Now,
	}
}

// Get returns the user's context, or a fresh IsNew marker when none exists.
// Reading an expired record deletes it as a side effect.
func (s *Service) Get(userID string) Context {
	s.mu.RLock()
	record, ok := s.contexts[userID]
	s.mu.RUnlock()

	if !ok {
		return Context{IsNew: true}
	}

	if s.now().Sub(record.Timestamp) > contextTTL {
		s.mu.Lock()
		delete(s.contexts, userID)
		s.mu.Unlock()

		return Context{IsNew: true}
	}

	return record
}

// Update overwrites the turn fields of the user's context and restamps it.
func (s *Service) Update(userID string, update Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.contexts[userID]
	record.IsNew = false
	record.LastIntent = update.LastIntent
	record.LastEntities = update.LastEntities
	record.LastQuery = update.LastQuery
	record.Timestamp = s.now()

	s.contexts[userID] = record
}

func (s *Service) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.contexts, userID)
}

// Cleanup removes every record older than the TTL. Candidates are collected
// under a read lock first, then re-checked and deleted in batches.
func (s *Service) Cleanup() {
	now := s.now()

	s.mu.RLock()
	var expired []string
	for userID, record := range s.contexts {
		if now.Sub(record.Timestamp) > contextTTL {
			expired = append(expired, userID)
		}
	}
	s.mu.RUnlock()

	if len(expired) == 0 {
		return
	}

	for start := 0; start < len(expired); start += sweepBatchSize {
		end := min(start+sweepBatchSize, len(expired))

		s.mu.Lock()
		for _, userID := range expired[start:end] {
			record, ok := s.contexts[userID]
			if ok && now.Sub(record.Timestamp) > contextTTL {
				delete(s.contexts, userID)
			}
		}
		s.mu.Unlock()
	}

	slog.Debug("Swept expired conversation contexts", "count", len(expired))
}

// Run sweeps expired contexts on a fixed interval until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

// Size reports the number of live records.
func (s *Service) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.contexts)
}
