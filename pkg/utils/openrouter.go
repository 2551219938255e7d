package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenRouterBackend talks to any OpenAI-compatible chat endpoint (OpenRouter
// in production). Free-tier models there are individually unreliable, which is
// exactly why the coach service walks a fallback list over this backend.
type OpenRouterBackend struct {
	client      *openai.Client
	maxTokens   int
	temperature float32
}

// attributionTransport injects the attribution headers OpenRouter uses to
// credit the calling app on every request.
type attributionTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(req)
}

func NewOpenRouterBackend(apiKey, baseURL, referer, title string) *OpenRouterBackend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{
		Timeout: 90 * time.Second,
		Transport: &attributionTransport{
			base:    http.DefaultTransport,
			referer: referer,
			title:   title,
		},
	}

	return &OpenRouterBackend{
		client:      openai.NewClientWithConfig(cfg),
		maxTokens:   1024,
		temperature: 0.7,
	}
}

func (b *OpenRouterBackend) request(model string, messages []ChatMessage, stream bool) openai.ChatCompletionRequest {
	msgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		MaxTokens:   b.maxTokens,
		Temperature: b.temperature,
		Stream:      stream,
	}
}

func (b *OpenRouterBackend) Complete(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, b.request(model, messages, false))
	if err != nil {
		return "", classifyOpenAIError(model, err)
	}
	if len(resp.Choices) == 0 {
		return "", &ModelCallError{Model: model, Kind: FailureHTTP, Err: fmt.Errorf("response carried no choices")}
	}
	return resp.Choices[0].Message.Content, nil
}

func (b *OpenRouterBackend) Stream(ctx context.Context, model string, messages []ChatMessage, onDelta func(string)) error {
	stream, err := b.client.CreateChatCompletionStream(ctx, b.request(model, messages, true))
	if err != nil {
		return classifyOpenAIError(model, err)
	}
	defer stream.Close()

	received := false
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A stream that dies before delivering anything counts as a
			// failed attempt; mid-stream errors after content are final.
			if !received {
				return classifyOpenAIError(model, err)
			}
			return nil
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if chunk := resp.Choices[0].Delta.Content; chunk != "" {
			received = true
			onDelta(chunk)
		}
	}
	if !received {
		return &ModelCallError{Model: model, Kind: FailureHTTP, Err: fmt.Errorf("stream opened but delivered no content")}
	}
	return nil
}

func classifyOpenAIError(model string, err error) *ModelCallError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return &ModelCallError{Model: model, Kind: FailureRateLimited, Err: err}
		}
		return &ModelCallError{Model: model, Kind: FailureHTTP, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			return &ModelCallError{Model: model, Kind: FailureRateLimited, Err: err}
		}
		return &ModelCallError{Model: model, Kind: FailureHTTP, Err: err}
	}
	return &ModelCallError{Model: model, Kind: FailureTransport, Err: err}
}
