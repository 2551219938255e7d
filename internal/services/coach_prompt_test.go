package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"vigor/internal/models/request_models"
)

func fullCoachContext() CoachContext {
	return CoachContext{
		FirstName:  "Jonas",
		ProgramDay: 12,
		Category:   "t-boost-standard",
		Level:      "suboptimal",
		Hour:       8,
		Tasks: &request_models.TaskStatus{
			MealsLogged:     2,
			TotalMeals:      3,
			WorkoutDone:     true,
			SleepLogged:     false,
			CapsulesTaken:   1,
			CapsulesPlanned: 2,
		},
		Program: &request_models.ProgramContext{
			CaloriesTarget:   2600,
			ProteinGrams:     180,
			CarbGrams:        250,
			FatGrams:         80,
			ScheduledMeals:   []string{"Haferflocken mit Quark", "Hähnchen mit Reis"},
			ScheduledWorkout: "Push Day",
		},
		Articles: []KBEntry{
			{
				Title:   "Schlaf und Testosteron",
				URL:     "https://vigor.app/wissen/schlaf-und-testosteron",
				Summary: "Tiefschlaf ist der wichtigste Produktionszeitraum.",
				Facts:   []string{"Der Großteil der Produktion findet im Tiefschlaf statt."},
			},
		},
	}
}

func TestBuildSystemPromptFullContext(t *testing.T) {
	prompt := BuildSystemPrompt(fullCoachContext())

	assert.Contains(t, prompt, "Du bist Max")
	assert.Contains(t, prompt, "Kein Markdown")
	assert.Contains(t, prompt, "Es ist Morgen.")
	assert.Contains(t, prompt, "Er heißt Jonas.")
	assert.Contains(t, prompt, "Tag 12")
	assert.Contains(t, prompt, "t-boost-standard")
	assert.Contains(t, prompt, `"suboptimal"`)
	assert.Contains(t, prompt, "Mahlzeiten geloggt: 2 von 3.")
	assert.Contains(t, prompt, "Das Workout ist erledigt.")
	assert.Contains(t, prompt, "noch nicht eingetragen")
	assert.Contains(t, prompt, "Kapseln genommen: 1 von 2.")
	assert.Contains(t, prompt, "2600 kcal (180g Protein, 250g Kohlenhydrate, 80g Fett)")
	assert.Contains(t, prompt, "Haferflocken mit Quark, Hähnchen mit Reis")
	assert.Contains(t, prompt, "Push Day")
	assert.Contains(t, prompt, "Schlaf und Testosteron")
	assert.Contains(t, prompt, "https://vigor.app/wissen/schlaf-und-testosteron")
}

func TestBuildSystemPromptOmitsEmptySections(t *testing.T) {
	prompt := BuildSystemPrompt(CoachContext{Hour: 14})

	assert.Contains(t, prompt, "Du bist Max")
	assert.NotContains(t, prompt, "Über den Nutzer")
	assert.NotContains(t, prompt, "Heutige Aufgaben")
	assert.NotContains(t, prompt, "Sein aktueller Plan")
	assert.NotContains(t, prompt, "Wissensbasis")
	// Empty sections leave no blank holes behind.
	assert.NotContains(t, prompt, "\n\n\n")
}

func TestBuildSystemPromptPendingWorkoutFraming(t *testing.T) {
	ctx := CoachContext{
		Hour:  14,
		Tasks: &request_models.TaskStatus{MealsLogged: 0, TotalMeals: 3},
	}
	prompt := BuildSystemPrompt(ctx)

	assert.Contains(t, prompt, "Das Workout steht noch aus.")
	assert.NotContains(t, prompt, "Kapseln")
}

func TestBuildSystemPromptDayParts(t *testing.T) {
	cases := map[int]string{
		6:  "Es ist Morgen.",
		13: "Es ist Nachmittag.",
		20: "Es ist Abend.",
		2:  "Es ist tief in der Nacht.",
	}
	for hour, want := range cases {
		prompt := BuildSystemPrompt(CoachContext{Hour: hour})
		assert.Contains(t, prompt, want, "hour %d", hour)
	}
}

func TestBuildSystemPromptDeterministic(t *testing.T) {
	ctx := fullCoachContext()
	assert.Equal(t, BuildSystemPrompt(ctx), BuildSystemPrompt(ctx))
}

func TestBuildSystemPromptSectionOrderStable(t *testing.T) {
	prompt := BuildSystemPrompt(fullCoachContext())

	persona := strings.Index(prompt, "Du bist Max")
	rules := strings.Index(prompt, "Regeln:")
	tasks := strings.Index(prompt, "Heutige Aufgaben:")
	knowledge := strings.Index(prompt, "Wissensbasis")

	assert.Less(t, persona, rules)
	assert.Less(t, rules, tasks)
	assert.Less(t, tasks, knowledge)
}
