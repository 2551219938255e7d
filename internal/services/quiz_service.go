package services

import (
	"context"
	"sync"

	"vigor/internal/models/response_models"
	mem "vigor/pkg/memcache"
	"vigor/pkg/utils"
)

// SubmissionMeta is the request metadata attached to the final submission.
type SubmissionMeta struct {
	Source    string
	UserAgent string
	Referrer  string
}

type QuizServiceInterface interface {
	// Start opens a new session or resumes an existing one when sessionID is
	// known to the store.
	Start(ctx context.Context, sessionID string) (response_models.QuizStepResponse, error)
	Answer(ctx context.Context, sessionID, questionID string, value interface{}) (response_models.QuizStepResponse, error)
	// Next advances one step; on the final step it scores the answers, fans
	// the submission out and returns the completed view instead of moving.
	Next(ctx context.Context, sessionID string, meta SubmissionMeta) (response_models.QuizStepResponse, error)
	Back(ctx context.Context, sessionID string) (response_models.QuizStepResponse, error)
	State(ctx context.Context, sessionID string) (response_models.QuizStepResponse, error)
}

type QuizService struct {
	engine      *Engine
	store       mem.QuizStateStore
	submissions SubmissionServiceInterface
	resultBase  string

	// Guards against the same session submitting twice concurrently; the
	// winning request performs the fan-out, the loser gets an error.
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewQuizService(
	engine *Engine,
	store mem.QuizStateStore,
	submissions SubmissionServiceInterface,
	resultBase string,
) QuizServiceInterface {
	return &QuizService{
		engine:      engine,
		store:       store,
		submissions: submissions,
		resultBase:  resultBase,
		inFlight:    make(map[string]struct{}),
	}
}

func (s *QuizService) Start(ctx context.Context, sessionID string) (response_models.QuizStepResponse, error) {
	if sessionID == "" {
		token, err := utils.GenerateSecureToken(16)
		if err != nil {
			return response_models.QuizStepResponse{}, err
		}
		sessionID = token
	}

	state, found, err := s.store.Restore(ctx, sessionID)
	if err != nil {
		return response_models.QuizStepResponse{}, err
	}
	if !found {
		state = mem.NewTraversalState()
	}
	s.engine.Clamp(&state)

	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return response_models.QuizStepResponse{}, err
	}
	return s.stepResponse(sessionID, state), nil
}

func (s *QuizService) load(ctx context.Context, sessionID string) (mem.TraversalState, error) {
	state, found, err := s.store.Restore(ctx, sessionID)
	if err != nil {
		return mem.TraversalState{}, err
	}
	if !found {
		return mem.TraversalState{}, utils.ErrSessionNotFound
	}
	s.engine.Clamp(&state)
	return state, nil
}

func (s *QuizService) Answer(ctx context.Context, sessionID, questionID string, value interface{}) (response_models.QuizStepResponse, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return response_models.QuizStepResponse{}, err
	}

	if err := s.engine.Answer(&state, questionID, value); err != nil {
		return response_models.QuizStepResponse{}, err
	}
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return response_models.QuizStepResponse{}, err
	}
	return s.stepResponse(sessionID, state), nil
}

func (s *QuizService) Next(ctx context.Context, sessionID string, meta SubmissionMeta) (response_models.QuizStepResponse, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return response_models.QuizStepResponse{}, err
	}

	atEnd, err := s.engine.Advance(&state)
	if err != nil {
		return response_models.QuizStepResponse{}, err
	}
	if !atEnd {
		if err := s.store.Save(ctx, sessionID, state); err != nil {
			return response_models.QuizStepResponse{}, err
		}
		return s.stepResponse(sessionID, state), nil
	}

	return s.complete(ctx, sessionID, state, meta)
}

func (s *QuizService) complete(ctx context.Context, sessionID string, state mem.TraversalState, meta SubmissionMeta) (response_models.QuizStepResponse, error) {
	s.mu.Lock()
	if _, busy := s.inFlight[sessionID]; busy {
		s.mu.Unlock()
		return response_models.QuizStepResponse{}, utils.ErrAlreadySubmitted
	}
	s.inFlight[sessionID] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inFlight, sessionID)
		s.mu.Unlock()
	}()

	score := CalculateScore(NormalizeAnswers(state.Answers))

	firstName, _ := state.Answers["name"].(string)
	email, _ := state.Answers["email"].(string)

	params := s.submissions.Submit(ctx, SubmissionRecord{
		SessionID: sessionID,
		Email:     email,
		FirstName: firstName,
		Answers:   state.Answers,
		Score:     score,
		Source:    meta.Source,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	})

	resp := s.stepResponse(sessionID, state)
	resp.Completed = true
	resp.Item = nil
	resp.Result = &response_models.ResultView{
		Score:        params.Score,
		Testosterone: params.Testosterone,
		Level:        params.Level,
		Name:         params.Name,
		RedirectURL:  params.RedirectURL(s.resultBase),
	}
	return resp, nil
}

func (s *QuizService) Back(ctx context.Context, sessionID string) (response_models.QuizStepResponse, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return response_models.QuizStepResponse{}, err
	}

	s.engine.Retreat(&state)
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return response_models.QuizStepResponse{}, err
	}
	return s.stepResponse(sessionID, state), nil
}

func (s *QuizService) State(ctx context.Context, sessionID string) (response_models.QuizStepResponse, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return response_models.QuizStepResponse{}, err
	}
	return s.stepResponse(sessionID, state), nil
}

func (s *QuizService) stepResponse(sessionID string, state mem.TraversalState) response_models.QuizStepResponse {
	item := s.engine.ItemAt(state.CurrentIndex)
	view := itemView(item)
	return response_models.QuizStepResponse{
		SessionID:       sessionID,
		Item:            &view,
		StepIndex:       state.CurrentIndex,
		TotalSteps:      s.engine.TotalSteps(),
		ProgressPercent: s.engine.ProgressPercent(state),
		AnsweredCount:   s.engine.AnsweredCount(state),
		CanAdvance:      s.engine.CanAdvance(state),
	}
}

func itemView(item QuizItem) response_models.ItemView {
	if item.IsQuestion() {
		q := item.Question
		view := response_models.ItemView{
			Kind:        "question",
			ID:          q.ID,
			Type:        string(q.Type),
			Prompt:      q.Prompt,
			Subtitle:    q.Subtitle,
			Options:     q.Options,
			Placeholder: q.Placeholder,
			Required:    q.Required,
		}
		if q.Type == QuestionSlider {
			min, max, step := q.Min, q.Max, q.Step
			view.Min, view.Max, view.Step = &min, &max, &step
		}
		return view
	}

	info := item.Info
	return response_models.ItemView{
		Kind:      "info",
		ID:        info.ID,
		Icon:      info.Icon,
		Title:     info.Title,
		BodyLines: info.BodyLines,
		CTALabel:  info.CTALabel,
	}
}
