package services

// The quiz is a fixed ordered sequence of items; the sequence alone determines
// step count and progress. Questions collect answers, info slides only move
// the traversal forward.

type QuestionType string

const (
	QuestionSlider  QuestionType = "slider"
	QuestionButtons QuestionType = "buttons"
	QuestionText    QuestionType = "text"
	QuestionEmail   QuestionType = "email"
)

type Question struct {
	ID          string
	Type        QuestionType
	Prompt      string
	Subtitle    string
	Options     []string
	Min         float64
	Max         float64
	Step        float64
	Placeholder string
	Required    bool
}

type InfoSlide struct {
	ID        string
	Icon      string
	Title     string
	BodyLines []string
	CTALabel  string
}

// QuizItem is either a question or an info slide, never both.
type QuizItem struct {
	Question *Question
	Info     *InfoSlide
}

func (i QuizItem) ID() string {
	if i.Question != nil {
		return i.Question.ID
	}
	return i.Info.ID
}

func (i QuizItem) IsQuestion() bool { return i.Question != nil }

func question(q Question) QuizItem   { return QuizItem{Question: &q} }
func infoSlide(s InfoSlide) QuizItem { return QuizItem{Info: &s} }

// DefaultQuizItems is the production testosterone-index quiz.
func DefaultQuizItems() []QuizItem {
	return []QuizItem{
		question(Question{
			ID: "name", Type: QuestionText, Required: true,
			Prompt:      "Wie heißt du?",
			Placeholder: "Dein Vorname",
		}),
		question(Question{
			ID: "age", Type: QuestionSlider, Required: true,
			Prompt: "Wie alt bist du?",
			Min:    18, Max: 80, Step: 1,
		}),
		question(Question{
			ID: "weight", Type: QuestionSlider, Required: true,
			Prompt:   "Wie viel wiegst du?",
			Subtitle: "In Kilogramm",
			Min:      50, Max: 160, Step: 1,
		}),
		question(Question{
			ID: "height", Type: QuestionSlider, Required: true,
			Prompt:   "Wie groß bist du?",
			Subtitle: "In Zentimetern",
			Min:      150, Max: 210, Step: 1,
		}),
		question(Question{
			ID: "training_frequency", Type: QuestionButtons, Required: true,
			Prompt:  "Wie oft trainierst du pro Woche?",
			Options: []string{"none", "1-2", "3-4", "5+"},
		}),
		question(Question{
			ID: "training_type", Type: QuestionButtons, Required: true,
			Prompt:  "Wie trainierst du hauptsächlich?",
			Options: []string{"strength", "cardio", "mixed", "none"},
		}),
		infoSlide(InfoSlide{
			ID: "info_training", Icon: "dumbbell",
			Title: "Krafttraining wirkt",
			BodyLines: []string{
				"Schweres Grundlagentraining ist einer der stärksten natürlichen Hebel für deinen Testosteronspiegel.",
				"Schon 3 Einheiten pro Woche machen einen messbaren Unterschied.",
			},
			CTALabel: "Weiter",
		}),
		question(Question{
			ID: "sleep", Type: QuestionSlider, Required: true,
			Prompt:   "Wie viele Stunden schläfst du im Schnitt?",
			Min:      4, Max: 10, Step: 0.5,
		}),
		question(Question{
			ID: "diet", Type: QuestionButtons, Required: true,
			Prompt:  "Wie ernährst du dich überwiegend?",
			Options: []string{"balanced", "high-protein", "vegetarian", "fast-food"},
		}),
		question(Question{
			ID: "alcohol", Type: QuestionButtons, Required: true,
			Prompt:  "Wie oft trinkst du Alkohol?",
			Options: []string{"never", "rarely", "weekly", "often"},
		}),
		question(Question{
			ID: "nicotine", Type: QuestionButtons, Required: true,
			Prompt:  "Rauchst du oder nutzt du Nikotin?",
			Options: []string{"never", "sometimes", "daily"},
		}),
		infoSlide(InfoSlide{
			ID: "info_lifestyle", Icon: "moon",
			Title: "Schlaf und Lifestyle zählen",
			BodyLines: []string{
				"Der Großteil deines Testosterons wird im Tiefschlaf produziert.",
				"Alkohol und Nikotin drücken die Produktion direkt.",
			},
			CTALabel: "Verstanden",
		}),
		question(Question{
			ID: "libido", Type: QuestionSlider, Required: true,
			Prompt:   "Wie würdest du deine Libido einschätzen?",
			Subtitle: "1 = kaum vorhanden, 10 = sehr hoch",
			Min:      1, Max: 10, Step: 1,
		}),
		question(Question{
			ID: "morning_erections", Type: QuestionButtons, Required: true,
			Prompt:  "Wie oft wachst du mit Morgenerektion auf?",
			Options: []string{"daily", "often", "rarely", "never"},
		}),
		question(Question{
			ID: "morning_energy", Type: QuestionSlider, Required: true,
			Prompt:   "Wie energiegeladen fühlst du dich morgens?",
			Subtitle: "1 = völlig erschöpft, 10 = voller Energie",
			Min:      1, Max: 10, Step: 1,
		}),
		question(Question{
			ID: "recovery", Type: QuestionButtons, Required: true,
			Prompt:  "Wie schnell erholst du dich nach dem Training?",
			Options: []string{"fast", "average", "slow"},
		}),
		question(Question{
			ID: "mood", Type: QuestionButtons, Required: true,
			Prompt:  "Wie ist deine Stimmung im Alltag?",
			Options: []string{"stable", "swings", "irritable", "low"},
		}),
		question(Question{
			ID: "email", Type: QuestionEmail, Required: true,
			Prompt:      "Wohin sollen wir dein Ergebnis schicken?",
			Placeholder: "deine@email.de",
		}),
	}
}
