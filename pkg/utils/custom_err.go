package utils

import "errors"

var (
	ErrSessionNotFound  = errors.New("quiz session not found")
	ErrUnknownQuestion  = errors.New("unknown question id")
	ErrAnswerRequired   = errors.New("answer required before advancing")
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	ErrAllModelsBusy    = errors.New("all models exhausted")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDatabaseError    = errors.New("database error")
	ErrEmbeddingFailed  = errors.New("embedding generation failed")
)

// AllModelsBusyMessage is the user-facing text returned when every model in the
// fallback list has been tried without success. Kept in one place so the chat
// and stream paths cannot drift apart.
const AllModelsBusyMessage = "Alle Coach-Modelle sind gerade ausgelastet. Bitte versuche es in einer Minute erneut."
