package session

import (
	"github.com/ptrumpis-ups/loader-quiz-app/internal/grading"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/questions"
)

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseLoading    SessionPhase = iota // No questions loaded yet
	PhaseInProgress                     // Serving questions
	PhaseFinished                       // Past the last question, waiting for restart
)

// String returns a lowercase name for the phase.
func (p SessionPhase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseFinished:
		return "finished"
	default:
		return "loading"
	}
}

// SessionState tracks the runtime state of one pass through a quiz.
type SessionState struct {
	// Questions is the loaded sequence. It is never modified after Load.
	Questions []questions.Question

	// CurrentIndex is the index of the current question. It equals
	// len(Questions) only once the session is finished.
	CurrentIndex int

	// UserAnswers holds one slot per expected answer of the current question.
	UserAnswers []string

	// TotalScore is the sum of points awarded so far.
	TotalScore int

	// LastFeedback is the grading result for the current question (nil until graded).
	LastFeedback *grading.Result

	// HasAnsweredCurrent is true once the current question has been graded.
	HasAnsweredCurrent bool

	// Finished is true once the session has advanced past the last question.
	Finished bool

	// Results holds one entry per graded question, in order.
	Results []QuestionResult
}

// QuestionResult records the outcome of one graded question.
type QuestionResult struct {
	Prompt   string
	Verdict  grading.Verdict
	Awarded  int
	Possible int
	// Given holds the raw answers as typed, one per slot.
	Given []string
}

// NewSessionState returns an empty session in the loading phase.
func NewSessionState() *SessionState {
	return &SessionState{}
}

// Phase derives the session phase from the state fields.
func (s *SessionState) Phase() SessionPhase {
	switch {
	case len(s.Questions) == 0:
		return PhaseLoading
	case s.Finished:
		return PhaseFinished
	default:
		return PhaseInProgress
	}
}

// CurrentQuestion returns the question being asked, or nil outside the
// in-progress phase.
func (s *SessionState) CurrentQuestion() *questions.Question {
	if s.Phase() != PhaseInProgress || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}
