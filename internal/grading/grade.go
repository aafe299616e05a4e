package grading

import (
	"strings"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/questions"
)

// NoInput is shown in a strict-order breakdown for a slot left blank.
const NoInput = "(no input)"

// Verdict is the overall outcome of grading one question.
type Verdict string

const (
	VerdictCorrect   Verdict = "Correct"
	VerdictIncorrect Verdict = "Incorrect"
)

// Detail is the breakdown entry for one expected answer.
type Detail struct {
	// UserAnswer is the sanitized user text matched against Expected. In
	// unordered mode it is empty when nothing matched.
	UserAnswer string
	Expected   string
	Correct    bool
}

// Result is the outcome of grading one question.
type Result struct {
	Verdict Verdict
	Details []Detail
	Awarded int
}

// AllCorrect reports whether the verdict is Correct.
func (r *Result) AllCorrect() bool {
	return r.Verdict == VerdictCorrect
}

// CorrectCount returns the number of breakdown entries marked correct.
func (r *Result) CorrectCount() int {
	n := 0
	for _, d := range r.Details {
		if d.Correct {
			n++
		}
	}
	return n
}

// Grade compares answers against q's expected answers. answers may be shorter
// than the expected list; missing slots count as empty.
//
// Matching rules:
// - Both sides are sanitized (see Sanitize)
// - Comparison is case-insensitive
// - Strict order: position i is compared with position i, and the verdict
//   requires the whole sequence to match
// - Otherwise each expected answer consumes the first equal, unused user answer
//
// Points: all-or-nothing when q.Points is set, else one per correct entry.
func Grade(q questions.Question, answers []string) *Result {
	expected := make([]string, len(q.ExpectedAnswers))
	for i, a := range q.ExpectedAnswers {
		expected[i] = Sanitize(a)
	}

	given := make([]string, max(len(answers), len(expected)))
	for i := range given {
		if i < len(answers) {
			given[i] = Sanitize(answers[i])
		}
	}

	var details []Detail
	var allCorrect bool
	if q.StrictOrder {
		details, allCorrect = gradeStrict(expected, given)
	} else {
		details, allCorrect = gradeUnordered(expected, given)
	}

	res := &Result{Details: details, Verdict: VerdictIncorrect}
	if allCorrect {
		res.Verdict = VerdictCorrect
	}

	if q.Points != nil {
		if allCorrect {
			res.Awarded = *q.Points
		}
	} else {
		res.Awarded = res.CorrectCount()
	}
	return res
}

// gradeStrict builds a positional breakdown. The verdict comes from comparing
// the full sequences, not from the per-slot flags.
func gradeStrict(expected, given []string) ([]Detail, bool) {
	details := make([]Detail, len(expected))
	for i, exp := range expected {
		user := given[i]
		if user == "" {
			user = NoInput
		}
		details[i] = Detail{
			UserAnswer: user,
			Expected:   exp,
			Correct:    strings.EqualFold(user, exp),
		}
	}
	return details, sequenceEqualFold(given, expected)
}

// gradeUnordered performs first-available greedy matching. With equality as the
// only adjacency, any expected answer left unmatched by the greedy pass has no
// equal user answer left, so the match count is maximal.
func gradeUnordered(expected, given []string) ([]Detail, bool) {
	used := make([]bool, len(given))
	details := make([]Detail, len(expected))
	allCorrect := true

	for i, exp := range expected {
		details[i] = Detail{Expected: exp}
		for j, user := range given {
			if used[j] || !strings.EqualFold(user, exp) {
				continue
			}
			used[j] = true
			details[i].UserAnswer = user
			details[i].Correct = true
			break
		}
		if !details[i].Correct {
			allCorrect = false
		}
	}
	return details, allCorrect
}

// sequenceEqualFold compares two sequences element by element. Trailing empty
// user slots beyond the expected length do not count against the user.
func sequenceEqualFold(given, expected []string) bool {
	for i := len(expected); i < len(given); i++ {
		if given[i] != "" {
			return false
		}
	}
	for i, exp := range expected {
		if !strings.EqualFold(given[i], exp) {
			return false
		}
	}
	return true
}
