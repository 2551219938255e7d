package request_models

type QuizStartRequest struct {
	// SessionID is optional: a returning client sends its previous id to
	// resume a saved traversal.
	SessionID string `json:"session_id,omitempty"`
}

type QuizAnswerRequest struct {
	SessionID  string      `json:"session_id" binding:"required"`
	QuestionID string      `json:"question_id" binding:"required"`
	Value      interface{} `json:"value"`
}

type QuizStepRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}
