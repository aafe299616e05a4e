package summary

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/grading"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/router"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/session"
)

func testSummary() *session.SessionSummary {
	return &session.SessionSummary{
		Score:     3,
		MaxScore:  8,
		Percent:   3.0 / 8.0,
		Questions: 3,
		Correct:   2,
		Results: []session.QuestionResult{
			{Prompt: "Welche PSA ist Pflicht?", Verdict: grading.VerdictCorrect, Awarded: 2, Possible: 2},
			{Prompt: "Zählen Sie auf", Verdict: grading.VerdictIncorrect, Awarded: 0, Possible: 5},
			{Prompt: "Notruf?", Verdict: grading.VerdictCorrect, Awarded: 1, Possible: 1},
		},
	}
}

// drain runs cmd and returns the messages it produces. Batches and
// sequences are slices of commands and are expanded in order.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for i := 0; i < v.Len(); i++ {
		if c, ok := v.Index(i).Interface().(tea.Cmd); ok {
			out = append(out, drain(c)...)
		}
	}
	return out
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New("Sichere Arbeitsmethoden", testSummary())
	if s.Title() != "Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Summary")
	}
	if s.Status() != "3/8 points" {
		t.Errorf("Status = %q, want %q", s.Status(), "3/8 points")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New("Sichere Arbeitsmethoden", testSummary())
	view := s.View(80, 24)

	for _, want := range []string{"Quiz complete!", "3 / 8 points", "Welche PSA ist Pflicht?", "0/5"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	s := New("x", nil)
	if s.View(80, 24) != "" {
		t.Error("expected empty view without a summary")
	}
}

func TestSummaryScreen_Restart(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: 'r', Text: "r"},
	} {
		s := New("x", testSummary())
		_, cmd := s.Update(key)
		msgs := drain(cmd)

		if len(msgs) != 2 {
			t.Fatalf("%s: expected 2 messages, got %d", key.String(), len(msgs))
		}
		if _, ok := msgs[0].(router.PopScreenMsg); !ok {
			t.Errorf("%s: first message = %T, want PopScreenMsg", key.String(), msgs[0])
		}
		if _, ok := msgs[1].(RestartRequestedMsg); !ok {
			t.Errorf("%s: second message = %T, want RestartRequestedMsg", key.String(), msgs[1])
		}
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New("x", testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	msgs := drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message on Esc, got %d", len(msgs))
	}
	if _, ok := msgs[0].(router.PopScreenMsg); !ok {
		t.Errorf("message = %T, want PopScreenMsg", msgs[0])
	}
}

func TestSummaryScreen_SaveStatus(t *testing.T) {
	s := New("x", testSummary())
	s.Update(AttemptSavedMsg{ID: "abc"})
	if !strings.Contains(s.View(80, 24), "Attempt saved") {
		t.Error("expected saved note")
	}

	s.Update(AttemptSavedMsg{Err: errors.New("disk full")})
	if !strings.Contains(s.View(80, 24), "Could not save") {
		t.Error("expected failure note")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New("x", testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
