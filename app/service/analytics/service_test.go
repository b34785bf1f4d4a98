package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStaysWithinCapacity(t *testing.T) {
	svc := NewService(5)

	for i := range 12 {
		svc.Record(Entry{
			UserID:  fmt.Sprintf("user-%d", i),
			Message: "hello",
			Intent:  "greeting",
		})
	}

	assert.Equal(t, 5, svc.Size())
}

func TestRecordEvictsOldestFirst(t *testing.T) {
	svc := NewService(3)

	for i := range 4 {
		svc.Record(Entry{Intent: fmt.Sprintf("intent-%d", i)})
	}

	summary := svc.Summarize()

	// intent-0 was evicted by intent-3.
	assert.Equal(t, 3, summary.TotalInteractions)
	assert.NotContains(t, summary.IntentDistribution, "intent-0")
	assert.Contains(t, summary.IntentDistribution, "intent-3")
}

func TestSummarizeEmpty(t *testing.T) {
	svc := NewService(10)

	summary := svc.Summarize()

	assert.Equal(t, 0, summary.TotalInteractions)
	assert.Empty(t, summary.IntentDistribution)
	assert.Empty(t, summary.TopIntents)
	assert.Zero(t, summary.AvgProcessingTime)
}

func TestSummarizeAggregates(t *testing.T) {
	svc := NewService(100)

	svc.Record(Entry{Intent: "greeting", ProcessingTimeMs: 10})
	svc.Record(Entry{Intent: "greeting", ProcessingTimeMs: 20})
	svc.Record(Entry{Intent: "book_search", ProcessingTimeMs: 30})

	summary := svc.Summarize()

	assert.Equal(t, 3, summary.TotalInteractions)
	assert.Equal(t, int64(20), summary.AvgProcessingTime)
	assert.Equal(t, 2, summary.IntentDistribution["greeting"])
	assert.Equal(t, 1, summary.IntentDistribution["book_search"])

	require.Len(t, summary.TopIntents, 2)
	assert.Equal(t, IntentCount{Intent: "greeting", Count: 2}, summary.TopIntents[0])
	assert.Equal(t, IntentCount{Intent: "book_search", Count: 1}, summary.TopIntents[1])
}

func TestTopIntentsLimitedToFive(t *testing.T) {
	svc := NewService(100)

	for i := range 8 {
		svc.Record(Entry{Intent: fmt.Sprintf("intent-%d", i)})
	}

	summary := svc.Summarize()

	assert.Len(t, summary.TopIntents, 5)
}

func TestTopIntentsTieBreaksAlphabetically(t *testing.T) {
	svc := NewService(100)

	svc.Record(Entry{Intent: "zeta"})
	svc.Record(Entry{Intent: "alpha"})

	summary := svc.Summarize()

	require.Len(t, summary.TopIntents, 2)
	assert.Equal(t, "alpha", summary.TopIntents[0].Intent)
	assert.Equal(t, "zeta", summary.TopIntents[1].Intent)
}
