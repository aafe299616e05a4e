package session

import (
	"github.com/ptrumpis-ups/loader-quiz-app/internal/grading"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/questions"
)

// Load populates the session with qs. It only takes effect once: later calls,
// and calls with an empty list, are ignored.
func Load(state *SessionState, qs []questions.Question) {
	if len(state.Questions) > 0 || len(qs) == 0 {
		return
	}
	state.Questions = qs
	resetProgress(state)
}

// SetAnswer stores text in the given answer slot of the current question.
// Slots outside the current question's expected answers are ignored, as are
// calls outside the in-progress phase.
func SetAnswer(state *SessionState, slot int, text string) {
	q := state.CurrentQuestion()
	if q == nil || slot < 0 || slot >= q.SlotCount() {
		return
	}
	state.UserAnswers[slot] = text
}

// Grade grades the current question against the stored answers, adds the
// awarded points to the total and records the result. A question is graded
// once; repeated calls return the earlier result. Returns nil outside the
// in-progress phase.
func Grade(state *SessionState) *grading.Result {
	q := state.CurrentQuestion()
	if q == nil {
		return nil
	}
	if state.HasAnsweredCurrent {
		return state.LastFeedback
	}

	res := grading.Grade(*q, state.UserAnswers)

	state.TotalScore += res.Awarded
	state.LastFeedback = res
	state.HasAnsweredCurrent = true
	state.Results = append(state.Results, QuestionResult{
		Prompt:   q.Prompt,
		Verdict:  res.Verdict,
		Awarded:  res.Awarded,
		Possible: q.MaxPoints(),
		Given:    append([]string(nil), state.UserAnswers...),
	})
	return res
}

// Advance moves to the next question. It only takes effect after the current
// question has been graded. Advancing from the last question finishes the
// session.
func Advance(state *SessionState) {
	if state.CurrentQuestion() == nil || !state.HasAnsweredCurrent {
		return
	}

	state.HasAnsweredCurrent = false
	state.LastFeedback = nil

	if state.CurrentIndex+1 >= len(state.Questions) {
		state.CurrentIndex = len(state.Questions)
		state.UserAnswers = nil
		state.Finished = true
		return
	}

	state.CurrentIndex++
	state.UserAnswers = make([]string, state.Questions[state.CurrentIndex].SlotCount())
}

// Restart resets all progress and keeps the loaded questions.
func Restart(state *SessionState) {
	if len(state.Questions) == 0 {
		return
	}
	resetProgress(state)
}

// MaxScore returns the highest score reachable for qs.
func MaxScore(qs []questions.Question) int {
	total := 0
	for _, q := range qs {
		total += q.MaxPoints()
	}
	return total
}

// Progress returns the 1-based number of the current question and the total.
// Once finished it returns (total, total).
func Progress(state *SessionState) (current, total int) {
	total = len(state.Questions)
	current = state.CurrentIndex + 1
	if current > total {
		current = total
	}
	return current, total
}

func resetProgress(state *SessionState) {
	state.CurrentIndex = 0
	state.UserAnswers = make([]string, state.Questions[0].SlotCount())
	state.TotalScore = 0
	state.LastFeedback = nil
	state.HasAnsweredCurrent = false
	state.Finished = false
	state.Results = nil
}
