package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopArticlesFallsBackToStaticList(t *testing.T) {
	svc := NewKnowledgeService(nil, nil)

	articles := svc.TopArticles(context.Background(), "Schlaf", 3)
	require.Len(t, articles, 3)
	assert.Equal(t, "Schlaf und Testosteron", articles[0].Title)
}

func TestTopArticlesDefaultLimit(t *testing.T) {
	svc := NewKnowledgeService(nil, nil)

	articles := svc.TopArticles(context.Background(), "irgendwas", 0)
	assert.Len(t, articles, 4)
}

func TestSeedArticlesWithoutBackendIsANoop(t *testing.T) {
	svc := NewKnowledgeService(nil, nil)
	assert.NoError(t, svc.SeedArticles(context.Background()))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "schlaf-und-testosteron", slugify("Schlaf und Testosteron"))
	assert.Equal(t, "alkohol-nikotin-und-hormone", slugify("Alkohol, Nikotin und Hormone"))
}

func TestSeedArticlesAreWellFormed(t *testing.T) {
	for _, entry := range seedArticles() {
		assert.NotEmpty(t, entry.Title)
		assert.NotEmpty(t, entry.URL)
		assert.NotEmpty(t, entry.Summary)
		assert.NotEmpty(t, entry.Facts)
	}
}
