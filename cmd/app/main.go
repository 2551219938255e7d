package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"vigor/cmd/fx/coach_fx"
	"vigor/cmd/fx/controllers_fx"
	"vigor/cmd/fx/db_fx"
	"vigor/cmd/fx/mail_fx"
	"vigor/cmd/fx/memcache_fx"
	"vigor/cmd/fx/quiz_fx"
	"vigor/internal/api/controllers"
	"vigor/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		coach_fx.Module,
		quiz_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	quizController *controllers.QuizController,
	coachController *controllers.CoachController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, quizController, coachController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	quizController *controllers.QuizController,
	coachController *controllers.CoachController) {

	api := r.Group("/api")

	quizGroup := api.Group("/quiz")
	quizGroup.POST("/start", quizController.StartQuiz)
	quizGroup.POST("/answer", quizController.SaveAnswer)
	quizGroup.POST("/next", quizController.Next)
	quizGroup.POST("/back", quizController.Back)
	quizGroup.GET("/state", quizController.State)

	coachGroup := api.Group("/coach")
	coachGroup.Use(middleware.IdentityMiddleware())
	coachGroup.POST("/chat", coachController.Chat)
	coachGroup.POST("/chat/stream", coachController.ChatStream)
}
