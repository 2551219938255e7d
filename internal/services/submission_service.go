package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"golang.org/x/sync/errgroup"

	"vigor/internal/models/db_models"
	"vigor/internal/repositories"
	mem "vigor/pkg/memcache"
)

// SubmissionRecord is everything the fan-out needs: the raw answers, the
// computed score and request metadata.
type SubmissionRecord struct {
	SessionID string
	Email     string
	FirstName string
	Answers   map[string]interface{}
	Score     ScoreResult

	Source    string
	UserAgent string
	Referrer  string
}

// ResultParams is the contract with the result page: these four values travel
// as query parameters and are rendered verbatim.
type ResultParams struct {
	Score        int
	Testosterone float64
	Level        string
	Name         string
}

func (p ResultParams) RedirectURL(base string) string {
	q := url.Values{}
	q.Set("score", fmt.Sprintf("%d", p.Score))
	q.Set("testosterone", fmt.Sprintf("%.0f", p.Testosterone))
	q.Set("level", p.Level)
	q.Set("name", p.Name)
	return base + "?" + q.Encode()
}

type SubmissionServiceInterface interface {
	Submit(ctx context.Context, record SubmissionRecord) ResultParams
}

// SubmissionService fans a finished quiz out to every downstream sink. The
// sinks run concurrently and each failure is logged and swallowed: the user
// always reaches the result view, duplicates are preferred over losses.
type SubmissionService struct {
	results repositories.ResultRepository
	mail    IMailService
	webhook WebhookSink
	store   mem.QuizStateStore
}

func NewSubmissionService(
	results repositories.ResultRepository,
	mail IMailService,
	webhook WebhookSink,
	store mem.QuizStateStore,
) SubmissionServiceInterface {
	return &SubmissionService{
		results: results,
		mail:    mail,
		webhook: webhook,
		store:   store,
	}
}

// bestEffort runs one sink inside its own fault boundary.
func bestEffort(g *errgroup.Group, name string, fn func() error) {
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("submission sink %s panicked: %v", name, r)
			}
		}()
		if err := fn(); err != nil {
			log.Printf("submission sink %s failed: %v", name, err)
		}
		return nil
	})
}

func (s *SubmissionService) Submit(ctx context.Context, record SubmissionRecord) ResultParams {
	var g errgroup.Group

	bestEffort(&g, "persistence", func() error {
		answersJSON, err := json.Marshal(record.Answers)
		if err != nil {
			return err
		}
		return s.results.CreateResult(ctx, &db_models.QuizResult{
			SessionID:         record.SessionID,
			Email:             record.Email,
			FirstName:         record.FirstName,
			AnswersJSON:       string(answersJSON),
			TotalScore:        record.Score.TotalScore,
			TestosteroneValue: record.Score.EstimatedTestosterone.Value,
			TestosteroneLevel: record.Score.EstimatedTestosterone.Level,
			RiskLevel:         record.Score.Level,
			RecommendedTier:   record.Score.RecommendedTier,
			Source:            record.Source,
			UserAgent:         record.UserAgent,
			Referrer:          record.Referrer,
		})
	})

	bestEffort(&g, "email", func() error {
		if record.Email == "" {
			return nil
		}
		return s.mail.SendQuizResultEmail(ctx, record.Email, record.FirstName, record.Score)
	})

	bestEffort(&g, "webhook", func() error {
		return s.webhook.PostResult(ctx, record)
	})

	_ = g.Wait()

	if err := s.store.Clear(ctx, record.SessionID); err != nil {
		log.Printf("clearing quiz state for %s failed: %v", record.SessionID, err)
	}

	return ResultParams{
		Score:        record.Score.TotalScore,
		Testosterone: record.Score.EstimatedTestosterone.Value,
		Level:        record.Score.Level,
		Name:         record.FirstName,
	}
}
