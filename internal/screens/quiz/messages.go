package quiz

import (
	"github.com/ptrumpis-ups/loader-quiz-app/internal/questions"
)

// questionsLoadedMsg is sent when the one-shot question load resolves.
type questionsLoadedMsg struct {
	Bank *questions.Bank
	Err  error
}
