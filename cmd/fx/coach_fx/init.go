package coach_fx

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"vigor/internal/repositories"
	"vigor/internal/services"
	"vigor/pkg/ratelimit"
	"vigor/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(
		provideChatBackend,
		provideEmbeddingClient,
		provideKnowledgeService,
		provideCoachService,
	),
	fx.Invoke(seedKnowledgeBase),
)

// provideChatBackend picks the chat provider. OpenRouter is the default; the
// Gemini backend exists for deployments that talk to Google directly.
func provideChatBackend(lc fx.Lifecycle) (utils.ChatBackend, error) {
	provider := getEnvWithDefault("COACH_PROVIDER", "openrouter")

	switch strings.ToLower(provider) {
	case "openrouter":
		return utils.NewOpenRouterBackend(
			os.Getenv("OPENROUTER_API_KEY"),
			getEnvWithDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			getEnvWithDefault("APP_BASE_URL", "https://vigor.app"),
			getEnvWithDefault("APP_NAME", "Vigor"),
		), nil
	case "gemini":
		backend, err := utils.NewGeminiChatBackend(context.Background(), os.Getenv("GEMINI_API_KEY"))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini backend: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return backend.Close() },
		})
		return backend, nil
	default:
		return nil, fmt.Errorf("unsupported coach provider: %s. Use 'openrouter' or 'gemini'", provider)
	}
}

func provideEmbeddingClient() (utils.EmbeddingClientInterface, error) {
	provider := getEnvWithDefault("EMBEDDING_PROVIDER", "local")
	return utils.NewEmbeddingClient(
		provider,
		os.Getenv("OPENAI_API_KEY"),
		getEnvWithDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
	)
}

func provideKnowledgeService(
	repo repositories.KBRepository,
	embedder utils.EmbeddingClientInterface,
) services.KnowledgeServiceInterface {
	return services.NewKnowledgeService(repo, embedder)
}

func provideCoachService(
	backend utils.ChatBackend,
	limiter ratelimit.Limiter,
	knowledge services.KnowledgeServiceInterface,
) services.CoachServiceInterface {
	return services.NewCoachService(backend, coachModels(), limiter, knowledge)
}

func coachModels() []string {
	raw := os.Getenv("COACH_MODELS")
	if raw == "" {
		return services.DefaultCoachModels
	}
	var models []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	return models
}

func seedKnowledgeBase(lc fx.Lifecycle, knowledge services.KnowledgeServiceInterface) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := knowledge.SeedArticles(ctx); err != nil {
				log.Printf("Knowledge base seeding failed, coach falls back to the static list: %v", err)
			}
			return nil
		},
	})
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
