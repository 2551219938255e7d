package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// KBArticle is one knowledge-base entry the coach may cite. The embedding is
// computed over title+summary and used to rank articles against the user's
// latest message.
type KBArticle struct {
	BaseModel
	Slug      string         `gorm:"uniqueIndex"`
	Title     string
	URL       string
	Summary   string
	Facts     pq.StringArray `gorm:"type:text[]"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}
