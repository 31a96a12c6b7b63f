package domain

import "context"

// ModelMock is the model identifier reported whenever a quiz was produced by
// the deterministic offline generator instead of a real provider.
const ModelMock = "mock"

// QuizGenerator is the port for quiz generation backends.
//
// Implementations are expected to degrade gracefully: every recoverable
// upstream failure (missing credential, unknown provider, network error,
// unparsable output) must be converted into a usable quiz value, with the
// error return reserved for unexpected conditions only. The returned string
// is the identifier of the model that produced the quiz, or ModelMock.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req QuizRequest) (*Quiz, string, error)
}
