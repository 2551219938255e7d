package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigor/internal/models/db_models"
	mem "vigor/pkg/memcache"
)

type fakeResultRepo struct {
	mu      sync.Mutex
	failing bool
	saved   []*db_models.QuizResult
}

func (f *fakeResultRepo) CreateResult(_ context.Context, result *db_models.QuizResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("connection refused")
	}
	f.saved = append(f.saved, result)
	return nil
}

func (f *fakeResultRepo) GetResultBySession(_ context.Context, _ string) (*db_models.QuizResult, error) {
	return nil, errors.New("not implemented")
}

type fakeMail struct {
	mu      sync.Mutex
	failing bool
	sent    []string
}

func (f *fakeMail) SendQuizResultEmail(_ context.Context, to, _ string, _ ScoreResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("resend unavailable")
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeWebhook struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeWebhook) PostResult(_ context.Context, _ SubmissionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil
}

func testRecord() SubmissionRecord {
	return SubmissionRecord{
		SessionID: "sess-1",
		Email:     "jonas@example.com",
		FirstName: "Jonas",
		Answers:   map[string]interface{}{"sleep": float64(8)},
		Score: ScoreResult{
			TotalScore:            72,
			EstimatedTestosterone: TestosteroneEstimate{Value: 624, Level: "optimal"},
			Level:                 "low",
			RecommendedTier:       "t-boost-maintain",
		},
		Source: "quiz-funnel",
	}
}

func TestSubmitFansOutToAllSinks(t *testing.T) {
	repo := &fakeResultRepo{}
	mail := &fakeMail{}
	webhook := &fakeWebhook{}
	store := mem.NewQuizStates(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", mem.NewTraversalState()))

	svc := NewSubmissionService(repo, mail, webhook, store)
	params := svc.Submit(ctx, testRecord())

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	assert.Equal(t, "sess-1", saved.SessionID)
	assert.Equal(t, 72, saved.TotalScore)
	assert.Equal(t, 624.0, saved.TestosteroneValue)
	assert.Equal(t, "t-boost-maintain", saved.RecommendedTier)

	var answers map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(saved.AnswersJSON), &answers))
	assert.Equal(t, 8.0, answers["sleep"])

	assert.Equal(t, []string{"jonas@example.com"}, mail.sent)
	assert.Equal(t, 1, webhook.calls)

	assert.Equal(t, 72, params.Score)
	assert.Equal(t, 624.0, params.Testosterone)
	assert.Equal(t, "low", params.Level)
	assert.Equal(t, "Jonas", params.Name)

	_, found, err := store.Restore(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, found, "state should be cleared after submission")
}

// A dead database must not stop the email or the webhook, and the caller still
// gets usable result parameters.
func TestSubmitSurvivesFailingPersistence(t *testing.T) {
	repo := &fakeResultRepo{failing: true}
	mail := &fakeMail{}
	webhook := &fakeWebhook{}
	store := mem.NewQuizStates(time.Minute)

	svc := NewSubmissionService(repo, mail, webhook, store)
	params := svc.Submit(context.Background(), testRecord())

	assert.Empty(t, repo.saved)
	assert.Equal(t, []string{"jonas@example.com"}, mail.sent)
	assert.Equal(t, 1, webhook.calls)
	assert.Equal(t, 72, params.Score)
}

func TestSubmitSurvivesFailingMail(t *testing.T) {
	repo := &fakeResultRepo{}
	mail := &fakeMail{failing: true}
	webhook := &fakeWebhook{}
	store := mem.NewQuizStates(time.Minute)

	svc := NewSubmissionService(repo, mail, webhook, store)
	params := svc.Submit(context.Background(), testRecord())

	assert.Len(t, repo.saved, 1)
	assert.Equal(t, 1, webhook.calls)
	assert.Equal(t, 72, params.Score)
}

func TestSubmitSkipsMailWithoutAddress(t *testing.T) {
	repo := &fakeResultRepo{}
	mail := &fakeMail{}
	store := mem.NewQuizStates(time.Minute)

	record := testRecord()
	record.Email = ""

	svc := NewSubmissionService(repo, mail, &fakeWebhook{}, store)
	svc.Submit(context.Background(), record)

	assert.Empty(t, mail.sent)
	assert.Len(t, repo.saved, 1)
}

func TestResultParamsRedirectURL(t *testing.T) {
	params := ResultParams{Score: 72, Testosterone: 624, Level: "low", Name: "Jonas Müller"}
	got := params.RedirectURL("https://vigor.app/ergebnis")

	assert.Contains(t, got, "https://vigor.app/ergebnis?")
	assert.Contains(t, got, "score=72")
	assert.Contains(t, got, "testosterone=624")
	assert.Contains(t, got, "level=low")
	// Names are query-escaped.
	assert.Contains(t, got, "name=Jonas+M%C3%BCller")
}
