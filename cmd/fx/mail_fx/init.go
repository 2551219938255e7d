package mail_fx

import (
	"os"

	"go.uber.org/fx"

	"vigor/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.IMailService {
	cfg := services.ResendConfig{
		APIKey:     os.Getenv("RESEND_API_KEY"),
		From:       getEnvWithDefault("MAIL_FROM", "Vigor <ergebnis@vigor.app>"),
		AppName:    getEnvWithDefault("APP_NAME", "Vigor"),
		AppBaseURL: getEnvWithDefault("APP_BASE_URL", "https://vigor.app"),
	}
	return services.NewResendMailService(cfg)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
