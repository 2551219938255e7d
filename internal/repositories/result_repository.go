package repositories

import (
	"context"

	"gorm.io/gorm"

	"vigor/internal/models/db_models"
)

type ResultRepository interface {
	CreateResult(ctx context.Context, result *db_models.QuizResult) error
	GetResultBySession(ctx context.Context, sessionID string) (*db_models.QuizResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) CreateResult(ctx context.Context, result *db_models.QuizResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *resultRepository) GetResultBySession(ctx context.Context, sessionID string) (*db_models.QuizResult, error) {
	var result db_models.QuizResult
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at desc").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}
