package services

import (
	"context"
	"fmt"
	"log"

	"vigor/internal/models/request_models"
	"vigor/internal/models/response_models"
	"vigor/pkg/ratelimit"
	"vigor/pkg/utils"
)

// DefaultCoachModels is the ordered fallback chain. The first model is the
// preferred one; every later entry is tried exactly once when its predecessor
// fails, regardless of the failure class.
var DefaultCoachModels = []string{
	"deepseek/deepseek-chat-v3-0324:free",
	"meta-llama/llama-3.3-70b-instruct:free",
	"google/gemini-2.0-flash-exp:free",
	"qwen/qwen-2.5-72b-instruct:free",
	"mistralai/mistral-small-3.1-24b-instruct:free",
	"meta-llama/llama-3.1-8b-instruct:free",
	"google/gemma-3-27b-it:free",
	"mistralai/mistral-7b-instruct:free",
}

// RateLimitError carries the limiter decision so the transport layer can tell
// the client when to retry.
type RateLimitError struct {
	Decision ratelimit.Decision
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.Decision.ResetIn)
}

func (e *RateLimitError) Unwrap() error { return utils.ErrRateLimited }

type CoachServiceInterface interface {
	Chat(ctx context.Context, req request_models.ChatRequest) (response_models.ChatResponse, error)
	// ChatStream forwards response deltas to onDelta as they arrive and
	// returns the model that produced them.
	ChatStream(ctx context.Context, req request_models.ChatRequest, onDelta func(string)) (string, error)
}

type CoachService struct {
	backend   utils.ChatBackend
	models    []string
	limiter   ratelimit.Limiter
	knowledge KnowledgeServiceInterface
	hour      func() int
}

func NewCoachService(
	backend utils.ChatBackend,
	models []string,
	limiter ratelimit.Limiter,
	knowledge KnowledgeServiceInterface,
) CoachServiceInterface {
	if len(models) == 0 {
		models = DefaultCoachModels
	}
	return &CoachService{
		backend:   backend,
		models:    models,
		limiter:   limiter,
		knowledge: knowledge,
		hour:      utils.CoachHour,
	}
}

func (s *CoachService) checkLimit(ctx context.Context, req request_models.ChatRequest) error {
	if s.limiter == nil {
		return nil
	}
	key := req.Email
	if key == "" {
		key = "anonymous"
	}
	decision, err := s.limiter.Check(ctx, key)
	if err != nil {
		// A broken limiter never blocks the chat.
		log.Printf("rate limiter check failed, allowing request: %v", err)
		return nil
	}
	if !decision.Allowed {
		return &RateLimitError{Decision: decision}
	}
	return nil
}

func (s *CoachService) buildMessages(ctx context.Context, req request_models.ChatRequest) []utils.ChatMessage {
	var query string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == utils.RoleUser {
			query = req.Messages[i].Content
			break
		}
	}

	var articles []KBEntry
	if s.knowledge != nil {
		articles = s.knowledge.TopArticles(ctx, query, 4)
	}

	system := BuildSystemPrompt(CoachContext{
		FirstName:  req.FirstName,
		ProgramDay: req.ProgramDay,
		Category:   req.Category,
		Level:      req.Level,
		Hour:       s.hour(),
		Tasks:      req.Tasks,
		Program:    req.Program,
		Articles:   articles,
	})

	messages := make([]utils.ChatMessage, 0, len(req.Messages)+1)
	messages = append(messages, utils.ChatMessage{Role: utils.RoleSystem, Content: system})
	for _, m := range req.Messages {
		messages = append(messages, utils.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return messages
}

// attemptInOrder walks the model chain and runs try once per model until one
// succeeds. Rate limits, upstream HTTP errors and transport errors are all
// treated the same: log, move on. Only exhaustion of the whole chain surfaces
// as an error.
func attemptInOrder(ctx context.Context, models []string, try func(ctx context.Context, model string) error) (string, error) {
	var lastErr error
	for _, model := range models {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		err := try(ctx, model)
		if err == nil {
			return model, nil
		}
		log.Printf("coach model %s failed: %v", model, err)
		lastErr = err
	}
	return "", fmt.Errorf("%w: %v", utils.ErrAllModelsBusy, lastErr)
}

func (s *CoachService) Chat(ctx context.Context, req request_models.ChatRequest) (response_models.ChatResponse, error) {
	if err := s.checkLimit(ctx, req); err != nil {
		return response_models.ChatResponse{}, err
	}

	messages := s.buildMessages(ctx, req)

	var reply string
	model, err := attemptInOrder(ctx, s.models, func(ctx context.Context, model string) error {
		out, err := s.backend.Complete(ctx, model, messages)
		if err != nil {
			return err
		}
		reply = out
		return nil
	})
	if err != nil {
		return response_models.ChatResponse{}, err
	}

	return response_models.ChatResponse{Reply: reply, Model: model}, nil
}

func (s *CoachService) ChatStream(ctx context.Context, req request_models.ChatRequest, onDelta func(string)) (string, error) {
	if err := s.checkLimit(ctx, req); err != nil {
		return "", err
	}

	messages := s.buildMessages(ctx, req)

	// Once any delta has reached the client the response cannot be restarted
	// on another model, so a late failure ends the stream instead of falling
	// through the chain.
	emitted := false
	guarded := func(delta string) {
		emitted = true
		onDelta(delta)
	}

	var late error
	model, err := attemptInOrder(ctx, s.models, func(ctx context.Context, model string) error {
		err := s.backend.Stream(ctx, model, messages, guarded)
		if err != nil && emitted {
			late = err
			return nil
		}
		return err
	})
	if err != nil {
		return "", err
	}
	if late != nil {
		log.Printf("coach stream on %s ended early after partial output: %v", model, late)
	}
	return model, nil
}
