package analytics

import "time"

// Entry is one interaction record. Entries live only in the in-process ring
// buffer, this is not durable metrics storage.
type Entry struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Message          string    `json:"message"`
	Intent           string    `json:"intent"`
	Confidence       float64   `json:"confidence"`
	ResponseLength   int       `json:"responseLength"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
	Timestamp        time.Time `json:"timestamp"`
}

type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

type Summary struct {
	TotalInteractions  int            `json:"totalInteractions"`
	AvgProcessingTime  int64          `json:"avgProcessingTime"`
	IntentDistribution map[string]int `json:"intentDistribution"`
	TopIntents         []IntentCount  `json:"topIntents"`
}
