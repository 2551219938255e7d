package request_models

type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type ChatRequest struct {
	Email    string        `json:"email"`
	Messages []ChatMessage `json:"messages" binding:"required,min=1"`

	// Optional live context rendered into the system prompt.
	FirstName  string          `json:"first_name,omitempty"`
	ProgramDay int             `json:"program_day,omitempty"`
	Category   string          `json:"category,omitempty"`
	Level      string          `json:"level,omitempty"`
	Tasks      *TaskStatus     `json:"tasks,omitempty"`
	Program    *ProgramContext `json:"program,omitempty"`
}

type TaskStatus struct {
	MealsLogged     int  `json:"meals_logged"`
	TotalMeals      int  `json:"total_meals"`
	WorkoutDone     bool `json:"workout_done"`
	SleepLogged     bool `json:"sleep_logged"`
	CapsulesTaken   int  `json:"capsules_taken"`
	CapsulesPlanned int  `json:"capsules_planned"`
}

type ProgramContext struct {
	CaloriesTarget   int      `json:"calories_target"`
	ProteinGrams     int      `json:"protein_g"`
	CarbGrams        int      `json:"carbs_g"`
	FatGrams         int      `json:"fat_g"`
	ScheduledMeals   []string `json:"scheduled_meals,omitempty"`
	ScheduledWorkout string   `json:"scheduled_workout,omitempty"`
}
