package intent

// Intents known to the shipped training corpus. The classifier itself is
// corpus-driven, these constants just keep callers honest.
const (
	Greeting           = "greeting"
	Thanks             = "thanks"
	Goodbye            = "goodbye"
	BookRecommendation = "book_recommendation"
	HowToDonate        = "how_to_donate"
	HowToSwap          = "how_to_swap"
	PickupRequest      = "pickup_request"
	BookSearch         = "book_search"
	PlatformInfo       = "platform_info"
	TechnicalSupport   = "technical_support"
	GeneralInquiry     = "general_inquiry"
)

type TrainingExample struct {
	Query  string `json:"query"`
	Intent string `json:"intent"`
}

type Result struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Likely follow-up intents per previous intent, used for the contextual
// confidence boost on weak classifications.
var followUps = map[string][]string{
	Greeting:           {BookRecommendation, HowToDonate, GeneralInquiry},
	BookRecommendation: {BookSearch, HowToSwap, PickupRequest},
	HowToDonate:        {PickupRequest, TechnicalSupport},
	PickupRequest:      {Thanks, TechnicalSupport},
}
