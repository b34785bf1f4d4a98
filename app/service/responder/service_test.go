package responder

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"bookswap/app/service/conversation"
	"bookswap/app/service/entity"
	"bookswap/app/service/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearch struct {
	books      []Book
	err        error
	lastMethod string
	lastQuery  string
}

func (f *fakeSearch) ByTitle(_ context.Context, text string) ([]Book, error) {
	f.lastMethod, f.lastQuery = "title", text
	return f.books, f.err
}

func (f *fakeSearch) ByAuthor(_ context.Context, text string) ([]Book, error) {
	f.lastMethod, f.lastQuery = "author", text
	return f.books, f.err
}

func (f *fakeSearch) ByGenre(_ context.Context, text string) ([]Book, error) {
	f.lastMethod, f.lastQuery = "genre", text
	return f.books, f.err
}

type fakeUsers struct {
	profiles map[string]*UserProfile
	err      error
}

func (f *fakeUsers) Get(_ context.Context, userID string) (*UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[userID], nil
}

func newTestService(search *fakeSearch, users *fakeUsers) *Service {
	svc := NewService("Elina", search, users)
	svc.pick = func(int) int { return 0 }
	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	}

	return svc
}

func authedCtx() context.Context {
	return WithUserID(context.Background(), "user-1")
}

func knownUsers() *fakeUsers {
	return &fakeUsers{profiles: map[string]*UserProfile{
		"user-1": {ID: "user-1", Name: "Priya", New: false},
	}}
}

var placeholderPattern = regexp.MustCompile(`\{[a-z_]+\}`)

func TestNoUnresolvedPlaceholders(t *testing.T) {
	intents := []string{
		intent.Greeting, intent.Thanks, intent.Goodbye,
		intent.BookRecommendation, intent.HowToDonate, intent.HowToSwap,
		intent.PickupRequest, intent.BookSearch, intent.PlatformInfo,
		intent.TechnicalSupport, intent.GeneralInquiry, "something_unknown",
	}

	entitySets := []map[string]string{
		{},
		{
			entity.SlotGenre:           "fiction",
			entity.SlotBookCondition:   "damaged",
			entity.SlotDateTime:        "urgent",
			entity.SlotPlatformFeature: "pickup",
			entity.SlotAuthorName:      "stephen king",
			entity.SlotBookTitle:       "harry potter",
			entity.SlotIssue:           "login",
		},
	}

	for _, ctx := range []context.Context{context.Background(), authedCtx()} {
		for _, name := range intents {
			for _, entities := range entitySets {
				svc := newTestService(&fakeSearch{}, knownUsers())

				reply := svc.Generate(ctx, name, entities, conversation.Context{IsNew: true}, "message")

				require.NotEmpty(t, reply.Text, "intent %s", name)
				assert.NotRegexp(t, placeholderPattern, reply.Text, "intent %s leaked a placeholder", name)
			}
		}
	}
}

func TestGreetingVariesByTimeOfDay(t *testing.T) {
	cases := []struct {
		hour     int
		expected string
	}{
		{9, "morning"},
		{13, "afternoon"},
		{20, "evening"},
	}

	for _, tc := range cases {
		svc := newTestService(&fakeSearch{}, &fakeUsers{})
		svc.now = func() time.Time {
			return time.Date(2025, 3, 10, tc.hour, 0, 0, 0, time.UTC)
		}

		reply := svc.Generate(context.Background(), intent.Greeting, nil, conversation.Context{}, "hello")

		assert.Equal(t, KindConversational, reply.Kind)
		assert.Contains(t, reply.Text, tc.expected, "hour %d", tc.hour)
		assert.NotEmpty(t, reply.Suggestions)
	}
}

func TestGreetingWelcomesNewcomers(t *testing.T) {
	svc := newTestService(&fakeSearch{}, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.Greeting, nil, conversation.Context{IsNew: true}, "hello")

	assert.Contains(t, reply.Text, "Welcome")
}

func TestDonationRequiresAuth(t *testing.T) {
	svc := newTestService(&fakeSearch{}, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.HowToDonate, nil, conversation.Context{}, "donate")

	assert.Equal(t, CategoryDonationAuth, reply.Category)
	assert.True(t, reply.RequiresAuth)
	assert.Contains(t, reply.Suggestions, "Login")
}

func TestDonationGuideForAuthenticatedUser(t *testing.T) {
	svc := newTestService(&fakeSearch{}, knownUsers())

	reply := svc.Generate(authedCtx(), intent.HowToDonate,
		map[string]string{entity.SlotBookCondition: "damaged"}, conversation.Context{}, "donate")

	assert.Equal(t, CategoryDonationGuide, reply.Category)
	assert.Contains(t, reply.Text, "Add Book")
	assert.Contains(t, reply.Text, "damaged")
	assert.Contains(t, reply.Text, "honestly")
	assert.Equal(t, "/add-book", reply.ActionURL)
}

func TestUserLookupFailureTreatedAsAnonymous(t *testing.T) {
	svc := newTestService(&fakeSearch{}, &fakeUsers{err: errors.New("directory down")})

	reply := svc.Generate(authedCtx(), intent.HowToDonate, nil, conversation.Context{}, "donate")

	assert.True(t, reply.RequiresAuth)
}

func TestPickupUrgencyAdvice(t *testing.T) {
	svc := newTestService(&fakeSearch{}, knownUsers())

	reply := svc.Generate(authedCtx(), intent.PickupRequest,
		map[string]string{entity.SlotDateTime: "urgent"}, conversation.Context{}, "pickup")

	assert.Equal(t, CategoryPickupNew, reply.Category)
	assert.Contains(t, reply.Text, "hotline")
}

func TestSearchPriorityTitleFirst(t *testing.T) {
	search := &fakeSearch{books: []Book{{Title: "Gone Girl", Author: "Gillian Flynn", Genre: "mystery", Condition: "good"}}}
	svc := newTestService(search, &fakeUsers{})

	entities := map[string]string{
		entity.SlotBookTitle:  "gone girl",
		entity.SlotAuthorName: "stephen king",
		entity.SlotGenre:      "mystery",
	}

	reply := svc.Generate(context.Background(), intent.BookSearch, entities, conversation.Context{}, "find gone girl")

	assert.Equal(t, "title", search.lastMethod)
	assert.Equal(t, "gone girl", search.lastQuery)
	assert.Equal(t, CategorySearchResults, reply.Category)
	assert.Contains(t, reply.Text, "Gone Girl")
}

func TestSearchNoResults(t *testing.T) {
	svc := newTestService(&fakeSearch{}, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.BookSearch,
		map[string]string{entity.SlotBookTitle: "harry potter"}, conversation.Context{}, "find harry potter")

	assert.Equal(t, CategorySearchNoResults, reply.Category)
	assert.Contains(t, reply.Text, "Try")
	assert.NotEmpty(t, reply.Suggestions)
}

func TestSearchCollaboratorErrorDegrades(t *testing.T) {
	svc := newTestService(&fakeSearch{err: errors.New("store down")}, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.BookSearch,
		map[string]string{entity.SlotGenre: "mystery"}, conversation.Context{}, "find mystery")

	assert.Equal(t, CategorySearchUnavailable, reply.Category)
	assert.Contains(t, reply.Text, "temporarily unavailable")
}

func TestSearchWithoutEntitiesAsksForClarification(t *testing.T) {
	svc := newTestService(&fakeSearch{}, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.BookSearch, nil, conversation.Context{}, "find")

	assert.Equal(t, CategorySearchClarification, reply.Category)
}

func TestRecommendationListsGenreTitles(t *testing.T) {
	svc := newTestService(&fakeSearch{}, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.BookRecommendation,
		map[string]string{entity.SlotGenre: "fiction"}, conversation.Context{}, "recommend fiction")

	assert.Equal(t, KindInformational, reply.Kind)
	assert.Contains(t, reply.Text, "fiction")
	assert.Contains(t, reply.Text, "The Alchemist")
}

func TestRecommendationMergesStoreResults(t *testing.T) {
	search := &fakeSearch{books: []Book{{Title: "Dune", Author: "Frank Herbert", Genre: "fiction", Condition: "good"}}}
	svc := newTestService(search, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.BookRecommendation,
		map[string]string{entity.SlotGenre: "fiction"}, conversation.Context{}, "recommend fiction")

	assert.Equal(t, "genre", search.lastMethod)
	// Static titles keep priority, the live match fills the last slot.
	assert.Contains(t, reply.Text, "Dune by Frank Herbert")
}

func TestRecommendationStoreErrorFallsBackToStaticList(t *testing.T) {
	svc := newTestService(&fakeSearch{err: errors.New("store down")}, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.BookRecommendation,
		map[string]string{entity.SlotGenre: "romance"}, conversation.Context{}, "recommend romance")

	assert.Equal(t, CategoryBookRecommendation, reply.Category)
	assert.Contains(t, reply.Text, "Pride and Prejudice")
}

func TestSupportScripts(t *testing.T) {
	svc := newTestService(&fakeSearch{}, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.TechnicalSupport,
		map[string]string{entity.SlotIssue: "upload"}, conversation.Context{}, "upload broken")

	assert.Equal(t, KindSupport, reply.Kind)
	assert.Contains(t, reply.Text, "upload")
	assert.Contains(t, reply.Text, "5MB")
}

func TestSupportUnknownIssueFallsBackToSlowScript(t *testing.T) {
	svc := newTestService(&fakeSearch{}, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.TechnicalSupport, nil, conversation.Context{}, "something broken")

	assert.Contains(t, reply.Text, "slow")
	assert.Contains(t, reply.Text, "Clear browser cache")
}

func TestPlatformInfoSections(t *testing.T) {
	svc := newTestService(&fakeSearch{}, &fakeUsers{})

	general := svc.Generate(context.Background(), intent.PlatformInfo, nil, conversation.Context{}, "what is bookswap")
	assert.Contains(t, general.Text, "About BookSwap")

	pickup := svc.Generate(context.Background(), intent.PlatformInfo,
		map[string]string{entity.SlotPlatformFeature: "pickup"}, conversation.Context{}, "pickup")
	assert.Contains(t, pickup.Text, "Pickup Service")
	assert.Len(t, pickup.Suggestions, 3)
}

func TestGoodbyeHasNoSuggestions(t *testing.T) {
	svc := newTestService(&fakeSearch{}, &fakeUsers{})

	reply := svc.Generate(context.Background(), intent.Goodbye, nil, conversation.Context{}, "bye")

	assert.Equal(t, CategoryGoodbye, reply.Category)
	assert.Empty(t, reply.Suggestions)
}

func TestSuggestionCountsWithinRange(t *testing.T) {
	svc := newTestService(&fakeSearch{}, knownUsers())

	intents := []string{
		intent.Greeting, intent.Thanks, intent.BookRecommendation,
		intent.HowToDonate, intent.HowToSwap, intent.PickupRequest,
		intent.BookSearch, intent.PlatformInfo, intent.TechnicalSupport,
		intent.GeneralInquiry,
	}

	for _, name := range intents {
		reply := svc.Generate(authedCtx(), name, nil, conversation.Context{}, "message")

		assert.GreaterOrEqual(t, len(reply.Suggestions), 2, "intent %s", name)
		assert.LessOrEqual(t, len(reply.Suggestions), 4, "intent %s", name)
	}
}
