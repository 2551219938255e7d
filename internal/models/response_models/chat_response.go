package response_models

type ChatResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
}

type RateLimitResponse struct {
	Remaining      int `json:"remaining"`
	ResetInSeconds int `json:"reset_in_seconds"`
}
