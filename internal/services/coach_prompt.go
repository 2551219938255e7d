package services

import (
	"fmt"
	"strings"

	"vigor/internal/models/request_models"
	"vigor/pkg/utils"
)

// CoachContext is the full input to the system-prompt builder. Optional
// sub-contexts are nil when the client did not send them; their sections are
// then omitted entirely rather than rendered empty.
type CoachContext struct {
	FirstName  string
	ProgramDay int
	Category   string
	Level      string
	Hour       int
	Tasks      *request_models.TaskStatus
	Program    *request_models.ProgramContext
	Articles   []KBEntry
}

// BuildSystemPrompt assembles the coach persona from discrete sections. The
// output is deterministic for a given context; there is no randomness and the
// only time dependence is the pre-resolved Hour.
func BuildSystemPrompt(ctx CoachContext) string {
	sections := []string{
		personaSection(),
		rulesSection(),
		greetingSection(ctx.Hour),
		profileSection(ctx),
		taskSection(ctx.Tasks),
		programSection(ctx.Program),
		knowledgeSection(ctx.Articles),
	}

	kept := sections[:0]
	for _, s := range sections {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}

func personaSection() string {
	return strings.TrimSpace(`
Du bist Max, der persönliche Coach der Vigor-App. Du begleitest Männer dabei,
ihren Testosteronspiegel über Schlaf, Training, Ernährung und Lebensstil
natürlich zu verbessern. Du sprichst Deutsch, duzt den Nutzer und klingst wie
ein erfahrener Trainingspartner: direkt, motivierend, nie belehrend.`)
}

func rulesSection() string {
	return strings.TrimSpace(`
Regeln:
- Antworte in kurzen, natürlichen Sätzen wie in einer Chat-App.
- Kein Markdown, keine Aufzählungszeichen, keine Überschriften.
- Bleib bei den Themen Testosteron, Training, Ernährung, Schlaf und Regeneration. Bei anderen Themen lenkst du freundlich zurück.
- Du stellst keine medizinischen Diagnosen. Bei ernsten Beschwerden empfiehlst du einen Arztbesuch.
- Maximal zwei bis vier Sätze pro Antwort, außer der Nutzer bittet um Details.`)
}

func greetingSection(hour int) string {
	var framing string
	switch utils.DayPart(hour) {
	case "morning":
		framing = "Es ist Morgen. Frag bei Gelegenheit, wie der Nutzer geschlafen hat, und richte den Blick auf den Tag."
	case "afternoon":
		framing = "Es ist Nachmittag. Der Tag läuft; hake bei Gelegenheit nach, was von den heutigen Aufgaben schon erledigt ist."
	case "evening":
		framing = "Es ist Abend. Hilf dem Nutzer, den Tag abzuschließen, und erinnere an eine gute Schlafroutine."
	default:
		framing = "Es ist tief in der Nacht. Sei kurz angebunden und lege dem Nutzer nahe, bald zu schlafen."
	}
	return "Tageszeit: " + framing
}

func profileSection(ctx CoachContext) string {
	var b strings.Builder
	b.WriteString("Über den Nutzer:")
	if ctx.FirstName != "" {
		fmt.Fprintf(&b, "\n- Er heißt %s.", ctx.FirstName)
	}
	if ctx.ProgramDay > 0 {
		fmt.Fprintf(&b, "\n- Er ist an Tag %d seines Programms.", ctx.ProgramDay)
	}
	if ctx.Category != "" {
		fmt.Fprintf(&b, "\n- Programm-Kategorie: %s.", ctx.Category)
	}
	if ctx.Level != "" {
		fmt.Fprintf(&b, "\n- Sein Testosteron-Level wurde als %q eingestuft.", ctx.Level)
	}
	out := b.String()
	if out == "Über den Nutzer:" {
		return ""
	}
	return out
}

func taskSection(tasks *request_models.TaskStatus) string {
	if tasks == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Heutige Aufgaben:")
	fmt.Fprintf(&b, "\n- Mahlzeiten geloggt: %d von %d.", tasks.MealsLogged, tasks.TotalMeals)
	if tasks.WorkoutDone {
		b.WriteString("\n- Das Workout ist erledigt. Lob ihn dafür, wenn es passt.")
	} else {
		b.WriteString("\n- Das Workout steht noch aus. Erinnere ihn motivierend daran.")
	}
	if tasks.SleepLogged {
		b.WriteString("\n- Der Schlaf von letzter Nacht ist eingetragen.")
	} else {
		b.WriteString("\n- Der Schlaf von letzter Nacht ist noch nicht eingetragen.")
	}
	if tasks.CapsulesPlanned > 0 {
		fmt.Fprintf(&b, "\n- Kapseln genommen: %d von %d.", tasks.CapsulesTaken, tasks.CapsulesPlanned)
	}
	return b.String()
}

func programSection(program *request_models.ProgramContext) string {
	if program == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Sein aktueller Plan:")
	if program.CaloriesTarget > 0 {
		fmt.Fprintf(&b, "\n- Kalorienziel: %d kcal (%dg Protein, %dg Kohlenhydrate, %dg Fett).",
			program.CaloriesTarget, program.ProteinGrams, program.CarbGrams, program.FatGrams)
	}
	if len(program.ScheduledMeals) > 0 {
		fmt.Fprintf(&b, "\n- Geplante Mahlzeiten heute: %s.", strings.Join(program.ScheduledMeals, ", "))
	}
	if program.ScheduledWorkout != "" {
		fmt.Fprintf(&b, "\n- Geplantes Workout heute: %s.", program.ScheduledWorkout)
	}
	out := b.String()
	if out == "Sein aktueller Plan:" {
		return ""
	}
	return out
}

func knowledgeSection(articles []KBEntry) string {
	if len(articles) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Wissensbasis (nutze diese Fakten, wenn sie zur Frage passen, und verweise bei Bedarf auf den Artikel):")
	for _, a := range articles {
		fmt.Fprintf(&b, "\n%s (%s): %s", a.Title, a.URL, a.Summary)
		for _, fact := range a.Facts {
			fmt.Fprintf(&b, "\n  %s", fact)
		}
	}
	return b.String()
}
