package controllers_fx

import (
	"go.uber.org/fx"

	"vigor/internal/api/controllers"
)

var Module = fx.Provide(
	controllers.NewQuizController,
	controllers.NewCoachController,
)
