package session

import "github.com/ptrumpis-ups/loader-quiz-app/internal/grading"

// SessionSummary holds the data displayed on the summary screen and written
// to the attempt log.
type SessionSummary struct {
	Score     int
	MaxScore  int
	Percent   float64 // Score / MaxScore in 0..1, 0 when MaxScore is 0
	Questions int
	Correct   int
	Results   []QuestionResult
}

// BuildSummary creates a SessionSummary from the current session state.
func BuildSummary(state *SessionState) *SessionSummary {
	maxScore := MaxScore(state.Questions)

	var percent float64
	if maxScore > 0 {
		percent = float64(state.TotalScore) / float64(maxScore)
	}

	correct := 0
	for _, r := range state.Results {
		if r.Verdict == grading.VerdictCorrect {
			correct++
		}
	}

	return &SessionSummary{
		Score:     state.TotalScore,
		MaxScore:  maxScore,
		Percent:   percent,
		Questions: len(state.Questions),
		Correct:   correct,
		Results:   append([]QuestionResult(nil), state.Results...),
	}
}
