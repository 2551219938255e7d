package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"vigor/pkg/utils"
)

// WebhookSink mirrors every submission to the legacy endpoint that predates
// this service. Best effort only; the submission flow ignores failures here.
type WebhookSink interface {
	PostResult(ctx context.Context, record SubmissionRecord) error
}

type legacyWebhook struct {
	url    string
	secret string
	client *http.Client
}

func NewLegacyWebhook(url, secret string) WebhookSink {
	return &legacyWebhook{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *legacyWebhook) PostResult(ctx context.Context, record SubmissionRecord) error {
	if w.url == "" {
		return nil
	}

	payload := map[string]interface{}{
		"session_id":         record.SessionID,
		"email":              record.Email,
		"first_name":         record.FirstName,
		"answers":            record.Answers,
		"total_score":        record.Score.TotalScore,
		"testosterone_value": record.Score.EstimatedTestosterone.Value,
		"testosterone_level": record.Score.EstimatedTestosterone.Level,
		"level":              record.Score.Level,
		"recommended_tier":   record.Score.RecommendedTier,
		"source":             record.Source,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Body-Signature", utils.SignPayload(w.secret, body))

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("legacy webhook returned %d", resp.StatusCode)
	}
	return nil
}
