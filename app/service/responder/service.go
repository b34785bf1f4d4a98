package responder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"bookswap/app/config"
	"bookswap/app/service/conversation"
	"bookswap/app/service/entity"
	"bookswap/app/service/intent"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

const (
	maxRecommendations = 4
	maxSearchResults   = 5
)

// Service maps a classified turn to a reply. It only reads: the book store
// and user directory are consulted, never written.
type Service struct {
	botName string
	books   BookSearch
	users   UserDirectory

	// Injected so tests can pin template choice and time-of-day.
	pick func(n int) int
	now  func() time.Time
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewService(
		cfg.Chatbot.BotName,
		do.MustInvoke[BookSearch](di),
		do.MustInvoke[UserDirectory](di),
	), nil
}

func NewService(botName string, books BookSearch, users UserDirectory) *Service {
	return &Service{
		botName: botName,
		books:   books,
		users:   users,
		pick:    rand.IntN,
		now:     time.Now,
	}
}

// Generate builds the reply for one turn. It never returns an error: every
// collaborator failure degrades to a graceful fallback reply.
func (s *Service) Generate(
	ctx context.Context,
	intentName string,
	entities map[string]string,
	convCtx conversation.Context,
	message string,
) Reply {
	switch intentName {
	case intent.BookRecommendation:
		return s.handleRecommendation(ctx, entities)
	case intent.PlatformInfo:
		return s.handlePlatformInfo(entities)
	case intent.HowToDonate:
		return s.handleDonation(ctx, entities)
	case intent.HowToSwap:
		return s.handleSwap()
	case intent.PickupRequest:
		return s.handlePickup(ctx, entities)
	case intent.BookSearch:
		return s.handleSearch(ctx, entities)
	case intent.Greeting:
		return s.handleGreeting(ctx, convCtx)
	case intent.Thanks:
		return s.handleThanks()
	case intent.Goodbye:
		return s.handleGoodbye()
	case intent.TechnicalSupport:
		return s.handleSupport(entities)
	default:
		return s.handleGeneral()
	}
}

func (s *Service) handleRecommendation(ctx context.Context, entities map[string]string) Reply {
	if author, ok := entities[entity.SlotAuthorName]; ok {
		return s.recommendByAuthor(ctx, author)
	}

	genre, ok := entities[entity.SlotGenre]
	if !ok {
		return Reply{
			Kind:     KindInformational,
			Category: CategoryBookRecommendation,
			Text:     "I'd love to recommend books! What genre interests you most? Fiction, non-fiction, or something specific?",
			Suggestions: []string{
				"Recommend fiction books", "Recommend business books", "Surprise me",
			},
		}
	}

	titles, ok := sampleTitles[genre]
	if !ok {
		titles = fallbackTitles
	}

	if available, err := s.books.ByGenre(ctx, genre); err != nil {
		slog.Warn("Book store lookup failed, using static recommendations",
			"genre", genre,
			"error", err)
	} else {
		titles = append(titles, pie.Map(available, func(b Book) string {
			return fmt.Sprintf("%s by %s", b.Title, b.Author)
		})...)
	}

	titles = pie.Unique(titles)
	// Personalization hook: reorder by the user's reading history. Currently
	// a pass-through extension point, not a ranking algorithm.
	titles = personalize(titles)

	if len(titles) > maxRecommendations {
		titles = titles[:maxRecommendations]
	}

	return Reply{
		Kind:     KindInformational,
		Category: CategoryBookRecommendation,
		Text: fillTemplate(recommendationTemplate, map[string]string{
			"genre":     genre,
			"book_list": numberedList(titles),
		}),
		Suggestions: []string{"Tell me more about these books", "Show me a different genre", "Check availability"},
	}
}

func (s *Service) recommendByAuthor(ctx context.Context, author string) Reply {
	titles := authorWorks[author]

	if available, err := s.books.ByAuthor(ctx, author); err != nil {
		slog.Warn("Book store lookup failed, using static author works",
			"author", author,
			"error", err)
	} else {
		titles = append(titles, pie.Map(available, func(b Book) string { return b.Title })...)
	}

	titles = pie.Unique(titles)
	if len(titles) == 0 {
		titles = fallbackTitles
	}
	if len(titles) > maxRecommendations {
		titles = titles[:maxRecommendations]
	}

	return Reply{
		Kind:     KindInformational,
		Category: CategoryBookRecommendation,
		Text: fmt.Sprintf("Books by %s you might enjoy:\n%s\nCheck our Gallery to see what's available! 🌟",
			author, numberedList(titles)),
		Suggestions: []string{"Check availability", "Show me a different author", "Browse Gallery"},
	}
}

func (s *Service) handlePlatformInfo(entities map[string]string) Reply {
	feature := entities[entity.SlotPlatformFeature]

	section, ok := platformInfo[feature]
	if !ok {
		section = platformInfo["general"]
	}

	return Reply{
		Kind:        KindInformational,
		Category:    CategoryPlatformInfo,
		Text:        fmt.Sprintf("## %s\n\n%s", section.title, section.content),
		Suggestions: section.actions,
	}
}

func (s *Service) handleDonation(ctx context.Context, entities map[string]string) Reply {
	user := s.currentUser(ctx, entities)
	if user == nil {
		return Reply{
			Kind:         KindTransactional,
			Category:     CategoryDonationAuth,
			Text:         "To donate books, you'll need to log in first. Would you like me to guide you to the login page?",
			Suggestions:  []string{"Login", "Register", "Learn More"},
			RequiresAuth: true,
		}
	}

	condition := entities[entity.SlotBookCondition]
	if condition == "" {
		condition = "good"
	}

	tip := "Your donation makes a real difference in our reading community! 🌟"
	if condition == "damaged" {
		tip = "Please describe the condition honestly - some readers don't mind wear!"
	}

	return Reply{
		Kind:     KindTransactional,
		Category: CategoryDonationGuide,
		Text: fillTemplate(donationTemplate, map[string]string{
			"condition":        condition,
			"personalized_tip": tip,
		}),
		Suggestions: []string{"Start Donating", "Upload Photos", "Need Help"},
		ActionURL:   "/add-book",
	}
}

func (s *Service) handleSwap() Reply {
	return Reply{
		Kind:        KindTransactional,
		Category:    CategoryDonationGuide,
		Text:        swapTemplate,
		Suggestions: []string{"Browse Swaps", "Add Swap Book", "My Swaps"},
	}
}

func (s *Service) handlePickup(ctx context.Context, entities map[string]string) Reply {
	user := s.currentUser(ctx, entities)
	if user == nil {
		return Reply{
			Kind:         KindTransactional,
			Category:     CategoryPickupAuth,
			Text:         "Pickup requests need an account so we can send you tracking updates. Would you like to log in or register first?",
			Suggestions:  []string{"Login", "Register", "Pickup FAQs"},
			RequiresAuth: true,
		}
	}

	urgency := entities[entity.SlotDateTime]

	timeAdvice := "Standard pickups are scheduled 2-5 days in advance."
	if urgency == "tomorrow" || urgency == "urgent" || urgency == "asap" {
		timeAdvice = "For urgent requests, please call our pickup hotline after submitting."
	}

	return Reply{
		Kind:     KindTransactional,
		Category: CategoryPickupNew,
		Text: fillTemplate(pickupTemplate, map[string]string{
			"time_advice": timeAdvice,
		}),
		Suggestions: []string{"Start Request", "Check Availability", "Pickup FAQs"},
		ActionURL:   "/pickup-request",
	}
}

func (s *Service) handleSearch(ctx context.Context, entities map[string]string) Reply {
	var results []Book
	var err error

	// Priority when several entities are present: title, then author, then genre.
	switch {
	case entities[entity.SlotBookTitle] != "":
		results, err = s.books.ByTitle(ctx, entities[entity.SlotBookTitle])
	case entities[entity.SlotAuthorName] != "":
		results, err = s.books.ByAuthor(ctx, entities[entity.SlotAuthorName])
	case entities[entity.SlotGenre] != "":
		results, err = s.books.ByGenre(ctx, entities[entity.SlotGenre])
	default:
		return Reply{
			Kind:        KindTransactional,
			Category:    CategorySearchClarification,
			Text:        "I'd be happy to help you search for books! What are you looking for?",
			Suggestions: []string{"Search by Title", "Search by Author", "Browse Genres"},
		}
	}

	if err != nil {
		slog.Warn("Book search failed", "error", err)

		return Reply{
			Kind:        KindTransactional,
			Category:    CategorySearchUnavailable,
			Text:        "Search is temporarily unavailable. Please try browsing the Gallery instead!",
			Suggestions: []string{"Browse Gallery", "Try Again", "Ask Different Question"},
		}
	}

	if len(results) == 0 {
		return Reply{
			Kind:     KindTransactional,
			Category: CategorySearchNoResults,
			Text: "No books found matching your search. Try:\n" +
				"• Different spelling or keywords\n" +
				"• Browse similar genres\n" +
				"• Post a \"Looking for\" request",
			Suggestions: []string{"Browse Similar", "Post Request", "Try Different Search"},
		}
	}

	return Reply{
		Kind:        KindTransactional,
		Category:    CategorySearchResults,
		Text:        formatSearchResults(results),
		Suggestions: []string{"Contact Owner", "Save Search", "Refine Search"},
	}
}

func (s *Service) handleGreeting(ctx context.Context, convCtx conversation.Context) Reply {
	user := s.currentUser(ctx, nil)

	newcomer := convCtx.IsNew
	if user != nil {
		newcomer = user.New
	}

	family := greetingsReturning
	if newcomer {
		family = greetingsNew
	}

	text := fillTemplate(family[s.pick(len(family))], map[string]string{
		"time_of_day": timeOfDay(s.now()),
		"bot_name":    s.botName,
	})

	return Reply{
		Kind:        KindConversational,
		Category:    CategoryGreeting,
		Text:        text,
		Suggestions: []string{"Find Books", "Donate Books", "How It Works"},
	}
}

func (s *Service) handleThanks() Reply {
	return Reply{
		Kind:        KindConversational,
		Category:    CategoryThanks,
		Text:        thanksReplies[s.pick(len(thanksReplies))],
		Suggestions: []string{"Browse Books", "Share Feedback", "Ask Another Question"},
	}
}

func (s *Service) handleGoodbye() Reply {
	return Reply{
		Kind:        KindConversational,
		Category:    CategoryGoodbye,
		Text:        goodbyeReplies[s.pick(len(goodbyeReplies))],
		Suggestions: []string{},
	}
}

func (s *Service) handleSupport(entities map[string]string) Reply {
	issue := entities[entity.SlotIssue]

	script, ok := troubleshooting[issue]
	if !ok {
		// Unknown issues get the generic slowness script.
		issue = "slow"
		script = troubleshooting[issue]
	}

	return Reply{
		Kind:     KindSupport,
		Category: CategoryTroubleshooting,
		Text: fillTemplate(supportTemplate, map[string]string{
			"issue":                 issue,
			"troubleshooting_steps": numberedList(script.steps),
			"additional_help":       script.additionalHelp,
		}),
		Suggestions: []string{"Try Solutions", "Contact Support", "Different Issue"},
	}
}

func (s *Service) handleGeneral() Reply {
	return Reply{
		Kind:        KindConversational,
		Category:    CategoryGeneral,
		Text:        genericReplies[s.pick(len(genericReplies))],
		Suggestions: []string{"Find Books", "Donate Books", "How It Works"},
	}
}

// currentUser resolves the caller, treating lookup failures as anonymous.
func (s *Service) currentUser(ctx context.Context, _ map[string]string) *UserProfile {
	userID, _ := ctx.Value(userIDKey{}).(string)
	if userID == "" || userID == "anonymous" {
		return nil
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		slog.Warn("User lookup failed, treating turn as anonymous",
			"userId", userID,
			"error", err)
		return nil
	}

	return user
}

type userIDKey struct{}

// WithUserID attaches the turn's user identity for transactional handlers.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func personalize(titles []string) []string {
	return titles
}

func timeOfDay(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

func numberedList(items []string) string {
	var builder strings.Builder

	for i, item := range items {
		builder.WriteString(fmt.Sprintf("%d. %s", i+1, item))
		if i < len(items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

func formatSearchResults(results []Book) string {
	shown := results
	if len(shown) > maxSearchResults {
		shown = shown[:maxSearchResults]
	}

	formatted := pie.Map(shown, func(b Book) string {
		return fmt.Sprintf("**%s** by %s\n   Genre: %s | Condition: %s", b.Title, b.Author, b.Genre, b.Condition)
	})

	text := fmt.Sprintf("Found %d book(s):\n\n%s", len(results), strings.Join(formatted, "\n\n"))
	if len(results) > maxSearchResults {
		text += "\n\n...and more! Visit the Gallery to see all results."
	}

	return text
}

// fillTemplate substitutes {placeholder} tokens from values, then from the
// safe defaults, so no literal token survives.
func fillTemplate(template string, values map[string]string) string {
	for key, value := range values {
		template = strings.ReplaceAll(template, "{"+key+"}", value)
	}

	for key, value := range placeholderDefaults {
		template = strings.ReplaceAll(template, "{"+key+"}", value)
	}

	return template
}
