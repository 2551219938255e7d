package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "vigor/pkg/memcache"
	"vigor/pkg/utils"
)

type fakeSubmissions struct {
	mu      sync.Mutex
	calls   []SubmissionRecord
	release chan struct{} // when set, Submit blocks until closed
	started chan struct{}
}

func (f *fakeSubmissions) Submit(_ context.Context, record SubmissionRecord) ResultParams {
	f.mu.Lock()
	f.calls = append(f.calls, record)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return ResultParams{
		Score:        record.Score.TotalScore,
		Testosterone: record.Score.EstimatedTestosterone.Value,
		Level:        record.Score.Level,
		Name:         record.FirstName,
	}
}

func (f *fakeSubmissions) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestQuizService(subs SubmissionServiceInterface) (QuizServiceInterface, mem.QuizStateStore) {
	store := mem.NewQuizStates(time.Minute)
	engine := NewEngine(fixtureItems())
	return NewQuizService(engine, store, subs, "https://vigor.app/ergebnis"), store
}

func TestQuizServiceStartCreatesSession(t *testing.T) {
	svc, store := newTestQuizService(&fakeSubmissions{})
	ctx := context.Background()

	resp, err := svc.Start(ctx, "")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 0, resp.StepIndex)
	assert.Equal(t, 5, resp.TotalSteps)
	assert.False(t, resp.CanAdvance)
	require.NotNil(t, resp.Item)
	assert.Equal(t, "question", resp.Item.Kind)
	assert.Equal(t, "name", resp.Item.ID)

	_, found, err := store.Restore(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestQuizServiceStartResumesKnownSession(t *testing.T) {
	svc, _ := newTestQuizService(&fakeSubmissions{})
	ctx := context.Background()

	first, err := svc.Start(ctx, "")
	require.NoError(t, err)
	_, err = svc.Answer(ctx, first.SessionID, "name", "Jonas")
	require.NoError(t, err)
	_, err = svc.Next(ctx, first.SessionID, SubmissionMeta{})
	require.NoError(t, err)

	resumed, err := svc.Start(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, resumed.SessionID)
	assert.Equal(t, 1, resumed.StepIndex)
	assert.Equal(t, 1, resumed.AnsweredCount)
}

func TestQuizServiceStartWithUnknownIDOpensFresh(t *testing.T) {
	svc, _ := newTestQuizService(&fakeSubmissions{})

	resp, err := svc.Start(context.Background(), "never-seen-before")
	require.NoError(t, err)
	assert.Equal(t, "never-seen-before", resp.SessionID)
	assert.Equal(t, 0, resp.StepIndex)
}

func TestQuizServiceUnknownSessionRejected(t *testing.T) {
	svc, _ := newTestQuizService(&fakeSubmissions{})
	ctx := context.Background()

	_, err := svc.Answer(ctx, "ghost", "name", "x")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
	_, err = svc.Next(ctx, "ghost", SubmissionMeta{})
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
	_, err = svc.Back(ctx, "ghost")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
	_, err = svc.State(ctx, "ghost")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestQuizServiceNextBlockedWithoutAnswer(t *testing.T) {
	svc, _ := newTestQuizService(&fakeSubmissions{})
	ctx := context.Background()

	resp, err := svc.Start(ctx, "")
	require.NoError(t, err)

	_, err = svc.Next(ctx, resp.SessionID, SubmissionMeta{})
	assert.ErrorIs(t, err, utils.ErrAnswerRequired)
}

func TestQuizServiceAnswerRejectsUnknownQuestion(t *testing.T) {
	svc, _ := newTestQuizService(&fakeSubmissions{})
	ctx := context.Background()

	resp, err := svc.Start(ctx, "")
	require.NoError(t, err)

	_, err = svc.Answer(ctx, resp.SessionID, "nope", "x")
	assert.ErrorIs(t, err, utils.ErrUnknownQuestion)
}

func walkToEnd(t *testing.T, svc QuizServiceInterface, sessionID string) {
	t.Helper()
	ctx := context.Background()

	answers := map[string]interface{}{
		"name":  "Jonas",
		"age":   float64(28),
		"email": "jonas@example.com",
	}
	for id, value := range answers {
		_, err := svc.Answer(ctx, sessionID, id, value)
		require.NoError(t, err)
	}
	// name -> age -> info -> mood (optional), four forward steps reach the
	// email question at the end.
	for i := 0; i < 4; i++ {
		_, err := svc.Next(ctx, sessionID, SubmissionMeta{})
		require.NoError(t, err)
	}
}

func TestQuizServiceCompletionSubmitsOnce(t *testing.T) {
	subs := &fakeSubmissions{}
	svc, _ := newTestQuizService(subs)
	ctx := context.Background()

	start, err := svc.Start(ctx, "")
	require.NoError(t, err)
	walkToEnd(t, svc, start.SessionID)

	resp, err := svc.Next(ctx, start.SessionID, SubmissionMeta{Source: "quiz-funnel", UserAgent: "test-agent"})
	require.NoError(t, err)

	assert.True(t, resp.Completed)
	assert.Nil(t, resp.Item)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "Jonas", resp.Result.Name)
	assert.Contains(t, resp.Result.RedirectURL, "https://vigor.app/ergebnis?")
	assert.Contains(t, resp.Result.RedirectURL, "name=Jonas")
	assert.True(t, strings.Contains(resp.Result.RedirectURL, "score="))

	require.Equal(t, 1, subs.callCount())
	record := subs.calls[0]
	assert.Equal(t, start.SessionID, record.SessionID)
	assert.Equal(t, "jonas@example.com", record.Email)
	assert.Equal(t, "Jonas", record.FirstName)
	assert.Equal(t, "quiz-funnel", record.Source)
	assert.Equal(t, "test-agent", record.UserAgent)
	assert.Equal(t, resp.Result.Score, record.Score.TotalScore)
}

func TestQuizServiceConcurrentSubmitRunsOnce(t *testing.T) {
	subs := &fakeSubmissions{
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	svc, _ := newTestQuizService(subs)
	ctx := context.Background()

	start, err := svc.Start(ctx, "")
	require.NoError(t, err)
	walkToEnd(t, svc, start.SessionID)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Next(ctx, start.SessionID, SubmissionMeta{})
		done <- err
	}()
	<-subs.started

	// Second submission while the first is in flight loses.
	_, err = svc.Next(ctx, start.SessionID, SubmissionMeta{})
	assert.ErrorIs(t, err, utils.ErrAlreadySubmitted)

	close(subs.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, subs.callCount())
}

func TestQuizServiceBackAndState(t *testing.T) {
	svc, _ := newTestQuizService(&fakeSubmissions{})
	ctx := context.Background()

	start, err := svc.Start(ctx, "")
	require.NoError(t, err)
	_, err = svc.Answer(ctx, start.SessionID, "name", "Jonas")
	require.NoError(t, err)
	_, err = svc.Next(ctx, start.SessionID, SubmissionMeta{})
	require.NoError(t, err)

	back, err := svc.Back(ctx, start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, back.StepIndex)
	assert.Equal(t, 1, back.AnsweredCount)

	state, err := svc.State(ctx, start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.StepIndex)
	assert.True(t, state.CanAdvance)
}

func TestQuizServiceSliderViewCarriesBounds(t *testing.T) {
	svc, _ := newTestQuizService(&fakeSubmissions{})
	ctx := context.Background()

	start, err := svc.Start(ctx, "")
	require.NoError(t, err)
	_, err = svc.Answer(ctx, start.SessionID, "name", "Jonas")
	require.NoError(t, err)

	resp, err := svc.Next(ctx, start.SessionID, SubmissionMeta{})
	require.NoError(t, err)

	require.NotNil(t, resp.Item)
	assert.Equal(t, "slider", resp.Item.Type)
	require.NotNil(t, resp.Item.Min)
	require.NotNil(t, resp.Item.Max)
	assert.Equal(t, 18.0, *resp.Item.Min)
	assert.Equal(t, 80.0, *resp.Item.Max)
}
