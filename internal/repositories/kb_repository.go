package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"vigor/internal/models/db_models"
)

type KBRepository interface {
	UpsertArticle(ctx context.Context, article *db_models.KBArticle) error
	SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.KBArticle, error)
	CountArticles(ctx context.Context) (int64, error)
}

type kbRepository struct {
	db *gorm.DB
}

func NewKBRepository(db *gorm.DB) KBRepository {
	return &kbRepository{db: db}
}

func (r *kbRepository) UpsertArticle(ctx context.Context, article *db_models.KBArticle) error {
	var existing db_models.KBArticle
	err := r.db.WithContext(ctx).Where("slug = ?", article.Slug).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(article).Error
	}
	if err != nil {
		return err
	}
	article.ID = existing.ID
	return r.db.WithContext(ctx).Model(&existing).Updates(article).Error
}

func (r *kbRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.KBArticle, error) {
	if limit <= 0 {
		limit = 4
	}
	var results []db_models.KBArticle

	// Cosine distance; closer to 0 is better.
	query := `
        SELECT *
        FROM kb_articles
        WHERE deleted_at IS NULL
        ORDER BY embedding <=> $1
        LIMIT $2
    `
	err := r.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *kbRepository) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.KBArticle{}).Count(&count).Error
	return count, err
}
