package responder

import "context"

// Kind discriminates the reply variants so callers can switch exhaustively
// instead of probing ad hoc fields.
type Kind string

const (
	KindInformational  Kind = "informational"
	KindTransactional  Kind = "transactional"
	KindConversational Kind = "conversational"
	KindSupport        Kind = "support"
	KindError          Kind = "error"
)

// Reply categories within a kind.
const (
	CategoryBookRecommendation  = "book_recommendation"
	CategoryPlatformInfo        = "platform_info"
	CategoryDonationGuide       = "donation_guide"
	CategoryDonationAuth        = "donation_auth_required"
	CategoryPickupNew           = "pickup_new"
	CategoryPickupAuth          = "pickup_auth_required"
	CategorySearchResults       = "search_results"
	CategorySearchNoResults     = "search_no_results"
	CategorySearchClarification = "search_clarification"
	CategorySearchUnavailable   = "search_unavailable"
	CategoryGreeting            = "greeting"
	CategoryThanks              = "thanks"
	CategoryGoodbye             = "goodbye"
	CategoryTroubleshooting     = "troubleshooting"
	CategoryGeneral             = "general"
)

type Reply struct {
	Kind         Kind     `json:"kind"`
	Category     string   `json:"category"`
	Text         string   `json:"text"`
	Suggestions  []string `json:"suggestions"`
	RequiresAuth bool     `json:"requiresAuth,omitempty"`
	ActionURL    string   `json:"actionUrl,omitempty"`
}

type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	Condition string `json:"condition"`
}

type UserProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	New  bool   `json:"new"`
}

// BookSearch is the read-only book store collaborator. Each call returns a
// bounded list, case-insensitive partial match, newest first.
type BookSearch interface {
	ByTitle(ctx context.Context, text string) ([]Book, error)
	ByAuthor(ctx context.Context, text string) ([]Book, error)
	ByGenre(ctx context.Context, text string) ([]Book, error)
}

// UserDirectory resolves the current user; nil profile means anonymous.
type UserDirectory interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
}
