package db_models

// QuizResult is the flattened answer+score record written by the submission
// fan-out. AnswersJSON keeps the raw answer set verbatim for later audits;
// the scored fields are denormalized for reporting queries.
type QuizResult struct {
	BaseModel
	SessionID string `gorm:"index"`
	Email     string `gorm:"index"`
	FirstName string

	AnswersJSON string `gorm:"type:jsonb"`

	TotalScore        int
	TestosteroneValue float64
	TestosteroneLevel string
	RiskLevel         string
	RecommendedTier   string

	Source    string
	UserAgent string
	Referrer  string
}
