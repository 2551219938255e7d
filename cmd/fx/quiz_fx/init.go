package quiz_fx

import (
	"os"

	"go.uber.org/fx"

	"vigor/internal/repositories"
	"vigor/internal/services"
	mem "vigor/pkg/memcache"
)

var Module = fx.Provide(
	provideEngine,
	provideWebhookSink,
	provideSubmissionService,
	provideQuizService,
)

func provideEngine() *services.Engine {
	return services.NewEngine(services.DefaultQuizItems())
}

func provideWebhookSink() services.WebhookSink {
	return services.NewLegacyWebhook(
		os.Getenv("LEGACY_WEBHOOK_URL"),
		os.Getenv("LEGACY_WEBHOOK_SECRET"),
	)
}

func provideSubmissionService(
	results repositories.ResultRepository,
	mail services.IMailService,
	webhook services.WebhookSink,
	store mem.QuizStateStore,
) services.SubmissionServiceInterface {
	return services.NewSubmissionService(results, mail, webhook, store)
}

func provideQuizService(
	engine *services.Engine,
	store mem.QuizStateStore,
	submissions services.SubmissionServiceInterface,
) services.QuizServiceInterface {
	resultBase := os.Getenv("RESULT_PAGE_URL")
	if resultBase == "" {
		resultBase = "https://vigor.app/ergebnis"
	}
	return services.NewQuizService(engine, store, submissions, resultBase)
}
