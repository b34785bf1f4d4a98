// Package entity pulls coarse domain slots out of a normalized utterance via
// ordered substring matching. First candidate wins per category, which is a
// known fragility ("fiction" matches inside "science fiction") kept for
// compatibility; swap the matcher here if token boundaries ever matter.
package entity

import (
	"strings"

	"github.com/samber/do"
)

const (
	SlotGenre           = "genre"
	SlotBookCondition   = "book_condition"
	SlotDateTime        = "date_time"
	SlotPlatformFeature = "platform_feature"
	SlotAuthorName      = "author_name"
	SlotBookTitle       = "book_title"
	SlotIssue           = "issue"
)

type slotCategory struct {
	slot       string
	candidates []string
}

// Candidate order is significant: the first substring hit is assigned.
var categories = []slotCategory{
	{SlotGenre, []string{
		"fiction", "romance", "mystery", "fantasy", "science",
		"business", "self-help", "biography",
	}},
	{SlotBookCondition, []string{"new", "good", "fair", "damaged", "excellent"}},
	{SlotDateTime, []string{"today", "tomorrow", "next week", "asap", "urgent"}},
	{SlotPlatformFeature, []string{"pickup", "swap", "donate", "gallery", "profile", "search"}},
	{SlotAuthorName, []string{
		"j k rowling", "stephen king", "agatha christie", "jane austen", "paulo coelho",
	}},
	{SlotBookTitle, []string{
		"harry potter", "pride and prejudice", "the alchemist", "gone girl",
		"atomic habits", "sapiens", "great gatsby", "lord of the rings",
	}},
	{SlotIssue, []string{"login", "upload", "slow"}},
}

type Service struct{}

func New(_ *do.Injector) (*Service, error) {
	return &Service{}, nil
}

// Extract scans the normalized message once per category. Categories are
// independent, so a message may fill zero or several slots; a miss simply
// leaves the slot absent.
func (s *Service) Extract(message, _ string) map[string]string {
	entities := make(map[string]string)

	for _, category := range categories {
		for _, candidate := range category.candidates {
			if strings.Contains(message, candidate) {
				entities[category.slot] = candidate
				break
			}
		}
	}

	return entities
}
