package response_models

// ItemView is the client-facing rendering of the current quiz item. Exactly
// one of the question fields or the slide fields is populated depending on
// Kind ("question" or "info").
type ItemView struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`

	// Question fields.
	Type        string   `json:"type,omitempty"` // slider, buttons, text, email
	Prompt      string   `json:"prompt,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Options     []string `json:"options,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        *float64 `json:"step,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required,omitempty"`

	// Info slide fields.
	Icon      string   `json:"icon,omitempty"`
	Title     string   `json:"title,omitempty"`
	BodyLines []string `json:"body_lines,omitempty"`
	CTALabel  string   `json:"cta_label,omitempty"`
}

type QuizStepResponse struct {
	SessionID       string      `json:"session_id"`
	Item            *ItemView   `json:"item,omitempty"`
	StepIndex       int         `json:"step_index"`
	TotalSteps      int         `json:"total_steps"`
	ProgressPercent float64     `json:"progress_percent"`
	AnsweredCount   int         `json:"answered_count"`
	CanAdvance      bool        `json:"can_advance"`
	Completed       bool        `json:"completed"`
	Result          *ResultView `json:"result,omitempty"`
}

// ResultView carries the query parameters the result page renders verbatim.
type ResultView struct {
	Score        int     `json:"score"`
	Testosterone float64 `json:"testosterone"`
	Level        string  `json:"level"`
	Name         string  `json:"name"`
	RedirectURL  string  `json:"redirect_url"`
}
