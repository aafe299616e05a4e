package questions

// Question is a single quiz item with one or more free-text expected answers.
type Question struct {
	// Prompt is the question text shown to the user.
	Prompt string `json:"question" yaml:"question"`

	// ExpectedAnswers holds one entry per answer slot. Never empty in a
	// loaded bank.
	ExpectedAnswers []string `json:"correctAnswers" yaml:"correctAnswers"`

	// StrictOrder requires answers to line up positionally with ExpectedAnswers.
	StrictOrder bool `json:"strictOrder,omitempty" yaml:"strictOrder,omitempty"`

	// Points makes the question all-or-nothing when set. When nil the question
	// gives one point per matched expected answer.
	Points *int `json:"points,omitempty" yaml:"points,omitempty"`
}

// SlotCount returns the number of answer slots shown for the question.
func (q Question) SlotCount() int {
	return len(q.ExpectedAnswers)
}

// MaxPoints returns the most the question can contribute to a score.
func (q Question) MaxPoints() int {
	if q.Points != nil {
		return *q.Points
	}
	return len(q.ExpectedAnswers)
}

// AllOrNothing reports whether the question awards its points only when every
// answer is correct.
func (q Question) AllOrNothing() bool {
	return q.Points != nil
}

// IntPtr is a convenience for building questions with fixed points.
func IntPtr(n int) *int {
	return &n
}
