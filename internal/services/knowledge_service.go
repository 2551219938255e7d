package services

import (
	"context"
	"log"

	"vigor/internal/models/db_models"
	"vigor/internal/repositories"
	"vigor/pkg/utils"
)

// KBEntry is the prompt-facing shape of a knowledge-base article.
type KBEntry struct {
	Title   string
	URL     string
	Summary string
	Facts   []string
}

type KnowledgeServiceInterface interface {
	// TopArticles ranks the knowledge base against the user's message. It
	// never fails: when no database or embedding is available it falls back
	// to the static seed list.
	TopArticles(ctx context.Context, query string, limit int) []KBEntry
	SeedArticles(ctx context.Context) error
}

type KnowledgeService struct {
	repo     repositories.KBRepository
	embedder utils.EmbeddingClientInterface
}

func NewKnowledgeService(repo repositories.KBRepository, embedder utils.EmbeddingClientInterface) KnowledgeServiceInterface {
	return &KnowledgeService{repo: repo, embedder: embedder}
}

func (s *KnowledgeService) TopArticles(ctx context.Context, query string, limit int) []KBEntry {
	if limit <= 0 {
		limit = 4
	}

	seed := seedArticles()
	if s.repo == nil || s.embedder == nil || query == "" {
		return truncate(seed, limit)
	}

	vector, err := s.embedder.GetEmbedding(ctx, query)
	if err != nil {
		log.Printf("kb embedding failed, using static list: %v", err)
		return truncate(seed, limit)
	}

	rows, err := s.repo.SearchByVector(ctx, vector, limit)
	if err != nil || len(rows) == 0 {
		if err != nil {
			log.Printf("kb vector search failed, using static list: %v", err)
		}
		return truncate(seed, limit)
	}

	entries := make([]KBEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, KBEntry{
			Title:   row.Title,
			URL:     row.URL,
			Summary: row.Summary,
			Facts:   row.Facts,
		})
	}
	return entries
}

// SeedArticles embeds and upserts the static article list so vector ranking
// has data to work with. Called once on startup, best effort.
func (s *KnowledgeService) SeedArticles(ctx context.Context) error {
	if s.repo == nil || s.embedder == nil {
		return nil
	}
	if count, err := s.repo.CountArticles(ctx); err == nil && count >= int64(len(seedArticles())) {
		return nil
	}
	for _, entry := range seedArticles() {
		vector, err := s.embedder.GetEmbedding(ctx, entry.Title+" "+entry.Summary)
		if err != nil {
			return err
		}
		article := &db_models.KBArticle{
			Slug:      slugify(entry.Title),
			Title:     entry.Title,
			URL:       entry.URL,
			Summary:   entry.Summary,
			Facts:     entry.Facts,
			Embedding: vector,
		}
		if err := s.repo.UpsertArticle(ctx, article); err != nil {
			return err
		}
	}
	return nil
}

func truncate(entries []KBEntry, limit int) []KBEntry {
	if len(entries) <= limit {
		return entries
	}
	return entries[:limit]
}

func slugify(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+32)
		case r == ' ' || r == '-':
			out = append(out, '-')
		}
	}
	return string(out)
}

func seedArticles() []KBEntry {
	return []KBEntry{
		{
			Title:   "Schlaf und Testosteron",
			URL:     "https://vigor.app/wissen/schlaf-und-testosteron",
			Summary: "Warum Tiefschlaf der wichtigste Produktionszeitraum für Testosteron ist.",
			Facts: []string{
				"Der Großteil der täglichen Testosteronproduktion findet im Tiefschlaf statt.",
				"Eine Woche mit unter 5 Stunden Schlaf kann den Spiegel um 10-15 Prozent senken.",
				"Konstante Schlafenszeiten stabilisieren den zirkadianen Hormonrhythmus.",
			},
		},
		{
			Title:   "Krafttraining als natürlicher Booster",
			URL:     "https://vigor.app/wissen/krafttraining",
			Summary: "Welche Trainingsformen den Hormonspiegel messbar beeinflussen.",
			Facts: []string{
				"Mehrgelenkige Grundübungen mit hoher Last erzeugen die stärkste akute Hormonantwort.",
				"Übertraining ohne Regeneration senkt den Spiegel statt ihn zu erhöhen.",
				"3-4 Einheiten pro Woche sind für die meisten Männer das Optimum.",
			},
		},
		{
			Title:   "Alkohol, Nikotin und Hormone",
			URL:     "https://vigor.app/wissen/alkohol-nikotin",
			Summary: "Wie Genussmittel die körpereigene Produktion drücken.",
			Facts: []string{
				"Regelmäßiger Alkoholkonsum erhöht die Aromatase-Aktivität und damit den Östrogenanteil.",
				"Bereits moderates Trinken am Abend reduziert die nächtliche Produktion.",
			},
		},
		{
			Title:   "Ernährung für den Hormonhaushalt",
			URL:     "https://vigor.app/wissen/ernaehrung",
			Summary: "Makronährstoffe, Mikronährstoffe und ihr Einfluss auf Testosteron.",
			Facts: []string{
				"Zu wenig Nahrungsfett (unter 20 Prozent der Kalorien) senkt den Spiegel.",
				"Zink- und Vitamin-D-Mangel sind die häufigsten ernährungsbedingten Bremsen.",
				"Crash-Diäten mit großem Defizit drücken die Produktion deutlich.",
			},
		},
		{
			Title:   "Stress und Cortisol",
			URL:     "https://vigor.app/wissen/stress-cortisol",
			Summary: "Der Gegenspieler: chronischer Stress blockiert die Testosteronwirkung.",
			Facts: []string{
				"Cortisol und Testosteron konkurrieren um dieselben Ausgangsstoffe.",
				"Kurze tägliche Entspannungsroutinen senken den Cortisol-Grundpegel messbar.",
			},
		},
		{
			Title:   "Morgenerektionen als Biomarker",
			URL:     "https://vigor.app/wissen/morgenerektionen",
			Summary: "Was nächtliche Erektionen über den Hormonstatus verraten.",
			Facts: []string{
				"Regelmäßige Morgenerektionen korrelieren stark mit einem gesunden Spiegel.",
				"Ihr Ausbleiben über Wochen ist ein ernstzunehmendes Warnsignal.",
			},
		},
	}
}
