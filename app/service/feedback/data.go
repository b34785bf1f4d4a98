package feedback

import "time"

// Record is one piece of training feedback submitted through the train
// endpoint, kept for a future retraining pipeline.
type Record struct {
	ID              string    `json:"id"`
	Query           string    `json:"query"`
	Intent          string    `json:"intent"`
	CorrectResponse string    `json:"correctResponse,omitempty"`
	Feedback        string    `json:"feedback,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type SubmitRequest struct {
	Query           string `json:"query"`
	Intent          string `json:"intent"`
	CorrectResponse string `json:"correct_response"`
	Feedback        string `json:"feedback"`
}
