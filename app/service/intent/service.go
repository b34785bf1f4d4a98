package intent

import (
	"bookswap/app/config"
	"bookswap/app/util/textnorm"
	"log/slog"
	"math"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

const (
	// Tokens shorter than this never enter the keyword index.
	minKeywordLength = 3

	boostThreshold     = 0.7
	boostAmount        = 0.2
	boostCap           = 0.9
	fallbackConfidence = 0.1
)

// Service scores utterances against a keyword index built once from the
// training corpus. Scores are normalized by the intent's keyword-set size,
// not by input length; this intentionally penalizes intents with broad
// vocabularies and is kept for compatibility with the shipped corpus.
type Service struct {
	keywords map[string]map[string]struct{}
	intents  []string
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewService(loadCorpus(cfg.Chatbot.TrainingData)), nil
}

func NewService(examples []TrainingExample) *Service {
	keywords := make(map[string]map[string]struct{})

	for _, example := range examples {
		set := keywords[example.Intent]
		if set == nil {
			set = make(map[string]struct{})
			keywords[example.Intent] = set
		}

		for _, word := range textnorm.Tokenize(textnorm.Normalize(example.Query)) {
			if len(word) >= minKeywordLength {
				set[word] = struct{}{}
			}
		}
	}

	// Sorted iteration makes exact score ties resolve deterministically to
	// the lexicographically smallest intent.
	intents := pie.Sort(pie.Keys(keywords))

	slog.Info("Intent keyword index built",
		"intents", len(intents),
		"examples", len(examples))

	return &Service{
		keywords: keywords,
		intents:  intents,
	}
}

// Classify scores a normalized message against every known intent.
// lastIntent is the previous turn's intent ("" when the conversation is new)
// and only matters for the contextual boost on weak classifications.
func (s *Service) Classify(message, lastIntent string) Result {
	words := textnorm.Tokenize(message)

	var bestIntent string
	var bestScore float64

	for _, name := range s.intents {
		set := s.keywords[name]

		var matches float64
		for _, word := range words {
			if _, ok := set[word]; ok {
				matches++
			}
		}

		var score float64
		if len(set) > 0 {
			score = matches / float64(len(set))
		}

		if bestIntent == "" || score > bestScore {
			bestIntent = name
			bestScore = score
		}
	}

	if lastIntent != "" && bestScore > 0 && bestScore < boostThreshold {
		if pie.Contains(followUps[lastIntent], bestIntent) {
			return Result{
				Intent:     bestIntent,
				Confidence: math.Min(bestScore+boostAmount, boostCap),
			}
		}
	}

	if bestIntent == "" || bestScore <= fallbackConfidence {
		return Result{Intent: GeneralInquiry, Confidence: fallbackConfidence}
	}

	return Result{Intent: bestIntent, Confidence: bestScore}
}

// Intents returns every intent present in the corpus, sorted.
func (s *Service) Intents() []string {
	return pie.Map(s.intents, func(name string) string { return name })
}

// KeywordCount reports the keyword-set size for an intent.
func (s *Service) KeywordCount(name string) int {
	return len(s.keywords[name])
}
