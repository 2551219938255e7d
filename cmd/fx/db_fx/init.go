package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"vigor/internal/infra"
	"vigor/internal/repositories"
)

var Module = fx.Provide(
	provideDB,
	repositories.NewResultRepository,
	repositories.NewKBRepository,
)

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}
