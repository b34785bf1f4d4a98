package conversation

import "time"

// Context is the single short-lived conversation record kept per user.
// It is overwritten on every turn, never grown into a history log.
type Context struct {
	IsNew        bool              `json:"isNew,omitempty"`
	LastIntent   string            `json:"lastIntent,omitempty"`
	LastEntities map[string]string `json:"lastEntities,omitempty"`
	LastQuery    string            `json:"lastQuery,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Update carries the fields restamped onto a user's context after a turn.
type Update struct {
	LastIntent   string
	LastEntities map[string]string
	LastQuery    string
}
