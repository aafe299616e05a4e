package session

import (
	"testing"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/grading"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/questions"
)

func testQuestions() []questions.Question {
	return []questions.Question{
		{Prompt: "PSA?", ExpectedAnswers: []string{"Helm", "Handschuhe"}},
		{Prompt: "Zählen", ExpectedAnswers: []string{"Eins", "Zwei"}, StrictOrder: true, Points: questions.IntPtr(5)},
		{Prompt: "Notruf?", ExpectedAnswers: []string{"112"}},
	}
}

func loadedState() *SessionState {
	state := NewSessionState()
	Load(state, testQuestions())
	return state
}

func TestNewSessionState_Loading(t *testing.T) {
	state := NewSessionState()

	if state.Phase() != PhaseLoading {
		t.Errorf("Phase = %v, want loading", state.Phase())
	}
	if res := Grade(state); res != nil {
		t.Errorf("Grade while loading = %+v, want nil", res)
	}

	SetAnswer(state, 0, "x")
	Advance(state)
	Restart(state)

	if state.CurrentIndex != 0 || state.TotalScore != 0 || state.Finished {
		t.Errorf("loading state was modified: %+v", state)
	}
}

func TestLoad(t *testing.T) {
	state := loadedState()

	if state.Phase() != PhaseInProgress {
		t.Errorf("Phase = %v, want in-progress", state.Phase())
	}
	if len(state.UserAnswers) != 2 {
		t.Errorf("len(UserAnswers) = %d, want 2", len(state.UserAnswers))
	}
	if q := state.CurrentQuestion(); q == nil || q.Prompt != "PSA?" {
		t.Errorf("CurrentQuestion = %+v, want PSA?", q)
	}
}

func TestLoad_OnlyOnce(t *testing.T) {
	state := loadedState()

	Load(state, []questions.Question{{Prompt: "other", ExpectedAnswers: []string{"x"}}})

	if len(state.Questions) != 3 {
		t.Errorf("len(Questions) = %d, want 3 (second load ignored)", len(state.Questions))
	}
}

func TestLoad_EmptyIgnored(t *testing.T) {
	state := NewSessionState()
	Load(state, nil)

	if state.Phase() != PhaseLoading {
		t.Errorf("Phase = %v, want loading", state.Phase())
	}
}

func TestSetAnswer_OutOfRange(t *testing.T) {
	state := loadedState()

	SetAnswer(state, 0, "Helm")
	SetAnswer(state, 2, "ignored")
	SetAnswer(state, -1, "ignored")

	if len(state.UserAnswers) != 2 {
		t.Fatalf("len(UserAnswers) = %d, want 2", len(state.UserAnswers))
	}
	if state.UserAnswers[0] != "Helm" || state.UserAnswers[1] != "" {
		t.Errorf("UserAnswers = %q", state.UserAnswers)
	}
}

func TestGrade_CorrectUnordered(t *testing.T) {
	state := loadedState()
	SetAnswer(state, 0, "handschuhe")
	SetAnswer(state, 1, "helm")

	res := Grade(state)

	if res == nil {
		t.Fatal("Grade returned nil")
	}
	if res.Verdict != grading.VerdictCorrect {
		t.Errorf("Verdict = %s, want Correct", res.Verdict)
	}
	if state.TotalScore != 2 {
		t.Errorf("TotalScore = %d, want 2", state.TotalScore)
	}
	if !state.HasAnsweredCurrent {
		t.Error("expected HasAnsweredCurrent")
	}
	if state.LastFeedback != res {
		t.Error("LastFeedback should hold the result")
	}
	if len(state.Results) != 1 || state.Results[0].Possible != 2 {
		t.Errorf("Results = %+v", state.Results)
	}
}

func TestGrade_Twice(t *testing.T) {
	state := loadedState()
	SetAnswer(state, 0, "Helm")

	first := Grade(state)
	SetAnswer(state, 1, "Handschuhe")
	second := Grade(state)

	if first != second {
		t.Error("second Grade should return the first result")
	}
	if state.TotalScore != 1 {
		t.Errorf("TotalScore = %d, want 1 (graded once)", state.TotalScore)
	}
	if len(state.Results) != 1 {
		t.Errorf("len(Results) = %d, want 1", len(state.Results))
	}
}

func TestAdvance_RequiresGrade(t *testing.T) {
	state := loadedState()

	Advance(state)

	if state.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0 (ungraded question)", state.CurrentIndex)
	}
}

func TestAdvance_ResetsQuestionState(t *testing.T) {
	state := loadedState()
	SetAnswer(state, 0, "Helm")
	Grade(state)

	Advance(state)

	if state.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1", state.CurrentIndex)
	}
	if state.HasAnsweredCurrent {
		t.Error("HasAnsweredCurrent should reset")
	}
	if state.LastFeedback != nil {
		t.Error("LastFeedback should reset")
	}
	if len(state.UserAnswers) != 2 || state.UserAnswers[0] != "" {
		t.Errorf("UserAnswers = %q, want two empty slots", state.UserAnswers)
	}
}

func TestFullRun_FinishAndRestart(t *testing.T) {
	state := loadedState()

	// Question 1: one of two.
	SetAnswer(state, 0, "Helm")
	Grade(state)
	Advance(state)

	// Question 2: strict order reversed, all-or-nothing.
	SetAnswer(state, 0, "Zwei")
	SetAnswer(state, 1, "Eins")
	if res := Grade(state); res.Awarded != 0 {
		t.Errorf("reversed strict answers awarded %d, want 0", res.Awarded)
	}
	Advance(state)

	// Question 3.
	SetAnswer(state, 0, "112")
	Grade(state)
	Advance(state)

	if !state.Finished {
		t.Fatal("expected Finished after last question")
	}
	if state.Phase() != PhaseFinished {
		t.Errorf("Phase = %v, want finished", state.Phase())
	}
	if state.CurrentIndex != 3 {
		t.Errorf("CurrentIndex = %d, want 3", state.CurrentIndex)
	}
	if state.TotalScore != 2 {
		t.Errorf("TotalScore = %d, want 2", state.TotalScore)
	}

	// Finished sessions ignore answers and grading.
	SetAnswer(state, 0, "x")
	if res := Grade(state); res != nil {
		t.Errorf("Grade after finish = %+v, want nil", res)
	}
	Advance(state)
	if state.CurrentIndex != 3 || state.TotalScore != 2 {
		t.Errorf("finished state changed: index %d score %d", state.CurrentIndex, state.TotalScore)
	}

	Restart(state)

	if state.CurrentIndex != 0 || state.TotalScore != 0 {
		t.Errorf("after Restart: index %d score %d, want 0 0", state.CurrentIndex, state.TotalScore)
	}
	if state.Finished || state.HasAnsweredCurrent || state.LastFeedback != nil {
		t.Error("Restart should clear progress flags")
	}
	if len(state.Questions) != 3 {
		t.Errorf("len(Questions) = %d, want 3 (kept)", len(state.Questions))
	}
	if len(state.Results) != 0 {
		t.Errorf("len(Results) = %d, want 0", len(state.Results))
	}
	if len(state.UserAnswers) != 2 {
		t.Errorf("len(UserAnswers) = %d, want 2", len(state.UserAnswers))
	}
}

func TestTotalScore_NeverDecreases(t *testing.T) {
	state := loadedState()
	prev := 0
	for state.Phase() == PhaseInProgress {
		Grade(state)
		if state.TotalScore < prev {
			t.Fatalf("TotalScore decreased from %d to %d", prev, state.TotalScore)
		}
		prev = state.TotalScore
		Advance(state)
	}
}

func TestMaxScore(t *testing.T) {
	if got := MaxScore(testQuestions()); got != 8 {
		t.Errorf("MaxScore = %d, want 8", got)
	}
	if got := MaxScore(nil); got != 0 {
		t.Errorf("MaxScore(nil) = %d, want 0", got)
	}
}

func TestProgress(t *testing.T) {
	state := loadedState()

	cur, total := Progress(state)
	if cur != 1 || total != 3 {
		t.Errorf("Progress = %d/%d, want 1/3", cur, total)
	}

	for state.Phase() == PhaseInProgress {
		Grade(state)
		Advance(state)
	}

	cur, total = Progress(state)
	if cur != 3 || total != 3 {
		t.Errorf("Progress after finish = %d/%d, want 3/3", cur, total)
	}
}

func TestGivenAnswersAreCopied(t *testing.T) {
	state := loadedState()
	SetAnswer(state, 0, "Helm")
	Grade(state)

	state.UserAnswers[0] = "changed"

	if state.Results[0].Given[0] != "Helm" {
		t.Errorf("Given = %q, want copy of answers at grading time", state.Results[0].Given)
	}
}
