package analytics

import (
	"math"
	"sync"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
	"github.com/samber/do"
)

const (
	defaultCapacity = 1000
	topIntentsLimit = 5
)

// Service keeps the last N interactions in a fixed-size ring buffer and
// computes aggregates over it on demand.
type Service struct {
	mu       sync.Mutex
	entries  []Entry
	next     int
	capacity int
}

func New(_ *do.Injector) (*Service, error) {
	return NewService(defaultCapacity), nil
}

func NewService(capacity int) *Service {
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	return &Service{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

// Record appends an interaction, evicting the oldest once full. ID and
// timestamp are stamped here.
func (s *Service) Record(entry Entry) {
	entry.ID = uuid.NewString()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) < s.capacity {
		s.entries = append(s.entries, entry)
		return
	}

	s.entries[s.next] = entry
	s.next = (s.next + 1) % s.capacity
}

// Size reports the current number of buffered entries.
func (s *Service) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Summarize computes the aggregate view served by the analytics endpoint.
func (s *Service) Summarize() Summary {
	s.mu.Lock()
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	s.mu.Unlock()

	summary := Summary{
		TotalInteractions:  len(entries),
		IntentDistribution: make(map[string]int),
		TopIntents:         []IntentCount{},
	}

	if len(entries) == 0 {
		return summary
	}

	var totalMs int64
	for _, entry := range entries {
		totalMs += entry.ProcessingTimeMs
		summary.IntentDistribution[entry.Intent]++
	}

	summary.AvgProcessingTime = int64(math.Round(float64(totalMs) / float64(len(entries))))

	counts := pie.Map(pie.Keys(summary.IntentDistribution), func(name string) IntentCount {
		return IntentCount{Intent: name, Count: summary.IntentDistribution[name]}
	})

	counts = pie.SortUsing(counts, func(a, b IntentCount) bool {
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Intent < b.Intent
	})

	if len(counts) > topIntentsLimit {
		counts = counts[:topIntentsLimit]
	}
	summary.TopIntents = counts

	return summary
}
