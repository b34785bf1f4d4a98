package engine

import (
	"context"
	"log/slog"
	"time"

	"bookswap/app/service/analytics"
	"bookswap/app/service/conversation"
	"bookswap/app/service/entity"
	"bookswap/app/service/intent"
	"bookswap/app/service/responder"
	"bookswap/app/util/textnorm"

	"github.com/samber/do"
)

const apologyReply = "I apologize, but I encountered an error. Please try rephrasing your question! 🤖"

// Response is the turn-level shape returned to callers.
type Response struct {
	Reply       string            `json:"reply"`
	Intent      string            `json:"intent"`
	Confidence  float64           `json:"confidence"`
	Category    string            `json:"category,omitempty"`
	Entities    map[string]string `json:"entities"`
	Suggestions []string          `json:"suggestions"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Service is the single entry point for a conversation turn:
// normalize -> lookup context -> classify -> extract -> generate ->
// update context -> log.
type Service struct {
	intentSvc    *intent.Service
	entitySvc    *entity.Service
	contextSvc   *conversation.Service
	responderSvc *responder.Service
	analyticsSvc *analytics.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		intentSvc:    do.MustInvoke[*intent.Service](di),
		entitySvc:    do.MustInvoke[*entity.Service](di),
		contextSvc:   do.MustInvoke[*conversation.Service](di),
		responderSvc: do.MustInvoke[*responder.Service](di),
		analyticsSvc: do.MustInvoke[*analytics.Service](di),
	}, nil
}

func NewService(
	intentSvc *intent.Service,
	entitySvc *entity.Service,
	contextSvc *conversation.Service,
	responderSvc *responder.Service,
	analyticsSvc *analytics.Service,
) *Service {
	return &Service{
		intentSvc:    intentSvc,
		entitySvc:    entitySvc,
		contextSvc:   contextSvc,
		responderSvc: responderSvc,
		analyticsSvc: analyticsSvc,
	}
}

// ProcessMessage handles one turn. It never fails: internal panics become
// the fixed apology response, and processing time is recorded either way.
func (s *Service) ProcessMessage(ctx context.Context, userID, message string) Response {
	start := time.Now()

	if userID == "" {
		userID = "anonymous"
	}

	response := s.processTurn(ctx, userID, message)

	elapsed := time.Since(start)

	s.analyticsSvc.Record(analytics.Entry{
		UserID:           userID,
		Message:          message,
		Intent:           response.Intent,
		Confidence:       response.Confidence,
		ResponseLength:   len(response.Reply),
		ProcessingTimeMs: elapsed.Milliseconds(),
	})

	slog.Info("Processed chatbot turn",
		"userId", userID,
		"intent", response.Intent,
		"confidence", response.Confidence,
		"duration", elapsed)

	return response
}

func (s *Service) processTurn(ctx context.Context, userID, message string) (response Response) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Chatbot turn failed",
				"userId", userID,
				"error", r)

			response = Response{
				Reply:       apologyReply,
				Intent:      "error",
				Confidence:  0,
				Entities:    map[string]string{},
				Suggestions: []string{},
				Timestamp:   time.Now(),
			}
		}
	}()

	normalized := textnorm.Normalize(message)

	convCtx := s.contextSvc.Get(userID)

	result := s.intentSvc.Classify(normalized, convCtx.LastIntent)

	entities := s.entitySvc.Extract(normalized, result.Intent)

	reply := s.responderSvc.Generate(
		responder.WithUserID(ctx, userID),
		result.Intent, entities, convCtx, normalized)

	s.contextSvc.Update(userID, conversation.Update{
		LastIntent:   result.Intent,
		LastEntities: entities,
		LastQuery:    normalized,
	})

	return Response{
		Reply:       reply.Text,
		Intent:      result.Intent,
		Confidence:  result.Confidence,
		Category:    reply.Category,
		Entities:    entities,
		Suggestions: reply.Suggestions,
		Timestamp:   time.Now(),
	}
}
