package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiChatBackend is the alternative provider behind the ChatBackend
// interface. Model ids in the fallback list are Gemini model names when this
// provider is selected.
type GeminiChatBackend struct {
	client *genai.Client
}

func NewGeminiChatBackend(ctx context.Context, apiKey string) (*GeminiChatBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiChatBackend{client: client}, nil
}

// split separates the system prompt, prior turns and the latest user message
// out of the OpenAI-style message list.
func (b *GeminiChatBackend) split(messages []ChatMessage) (system string, history []*genai.Content, last string) {
	var turns []ChatMessage
	for _, m := range messages {
		if m.Role == RoleSystem {
			system += m.Content
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) == 0 {
		return system, nil, ""
	}
	last = turns[len(turns)-1].Content
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return system, history, last
}

func (b *GeminiChatBackend) session(model string, messages []ChatMessage) (*genai.ChatSession, string) {
	system, history, last := b.split(messages)

	m := b.client.GenerativeModel(model)
	m.SetTemperature(0.7)
	m.SetMaxOutputTokens(1024)
	if system != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := m.StartChat()
	cs.History = history
	return cs, last
}

func (b *GeminiChatBackend) Complete(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	cs, last := b.session(model, messages)
	if last == "" {
		return "", &ModelCallError{Model: model, Kind: FailureHTTP, Err: fmt.Errorf("no user message to send")}
	}

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", classifyGeminiError(model, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &ModelCallError{Model: model, Kind: FailureHTTP, Err: fmt.Errorf("no content generated")}
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (b *GeminiChatBackend) Stream(ctx context.Context, model string, messages []ChatMessage, onDelta func(string)) error {
	cs, last := b.session(model, messages)
	if last == "" {
		return &ModelCallError{Model: model, Kind: FailureHTTP, Err: fmt.Errorf("no user message to send")}
	}

	iter := cs.SendMessageStream(ctx, genai.Text(last))
	received := false
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			if !received {
				return classifyGeminiError(model, err)
			}
			return nil
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok && text != "" {
				received = true
				onDelta(string(text))
			}
		}
	}
	if !received {
		return &ModelCallError{Model: model, Kind: FailureHTTP, Err: fmt.Errorf("stream opened but delivered no content")}
	}
	return nil
}

func (b *GeminiChatBackend) Close() error { return b.client.Close() }

func classifyGeminiError(model string, err error) *ModelCallError {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		if gErr.Code == 429 {
			return &ModelCallError{Model: model, Kind: FailureRateLimited, Err: err}
		}
		return &ModelCallError{Model: model, Kind: FailureHTTP, Err: err}
	}
	return &ModelCallError{Model: model, Kind: FailureTransport, Err: err}
}
