package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/router"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/store"
)

// mockAttemptRepo implements store.AttemptRepo for testing.
type mockAttemptRepo struct {
	attempts []store.AttemptRecord
	err      error
	gotQuiz  string
	gotLimit int
}

func (m *mockAttemptRepo) SaveAttempt(_ context.Context, _ *store.AttemptRecord) error {
	return nil
}
func (m *mockAttemptRepo) RecentAttempts(_ context.Context, quiz string, limit int) ([]store.AttemptRecord, error) {
	m.gotQuiz, m.gotLimit = quiz, limit
	return m.attempts, m.err
}
func (m *mockAttemptRepo) BestScore(_ context.Context, _ string) (int, bool, error) {
	return 0, false, nil
}

func testAttempts() []store.AttemptRecord {
	finished := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	return []store.AttemptRecord{
		{
			ID: "b", Quiz: "Sichere Arbeitsmethoden", Score: 6, MaxScore: 8, Questions: 2,
			FinishedAt: finished,
			Answers: []store.AnswerRecord{
				{Position: 0, Prompt: "Welche PSA?", Verdict: "Correct", Awarded: 2, Possible: 2},
				{Position: 1, Prompt: "Zählen", Verdict: "Incorrect", Awarded: 0, Possible: 5},
			},
		},
		{ID: "a", Quiz: "Sichere Arbeitsmethoden", Score: 2, MaxScore: 8, Questions: 2, FinishedAt: finished.Add(-time.Hour)},
	}
}

func loadedScreen(t *testing.T, repo *mockAttemptRepo) *HistoryScreen {
	t.Helper()
	s := New(repo, "Sichere Arbeitsmethoden", nil)
	s.Update(s.Init()())
	return s
}

func TestHistoryScreen_Loads(t *testing.T) {
	repo := &mockAttemptRepo{attempts: testAttempts()}
	s := loadedScreen(t, repo)

	if repo.gotQuiz != "Sichere Arbeitsmethoden" || repo.gotLimit != Limit {
		t.Errorf("query = (%q, %d), want (%q, %d)", repo.gotQuiz, repo.gotLimit, "Sichere Arbeitsmethoden", Limit)
	}
	view := s.View(100, 24)
	if !strings.Contains(view, "6/8") || !strings.Contains(view, "2/8") {
		t.Errorf("expected both attempts in view, got %q", view)
	}
	if strings.Contains(view, "Welche PSA?") {
		t.Error("answers should be collapsed by default")
	}
}

func TestHistoryScreen_LoadingAndEmpty(t *testing.T) {
	s := New(&mockAttemptRepo{}, "", nil)
	if !strings.Contains(s.View(80, 24), "Loading history") {
		t.Error("expected loading view")
	}
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "No attempts yet") {
		t.Error("expected empty view")
	}
}

func TestHistoryScreen_NilRepo(t *testing.T) {
	s := New(nil, "", nil)
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "No attempts yet") {
		t.Error("expected empty view without a repo")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loadedScreen(t, &mockAttemptRepo{err: errors.New("no such table: attempts")})
	if !strings.Contains(s.View(80, 24), "Error: no such table") {
		t.Error("expected error view")
	}
}

func TestHistoryScreen_NavigateAndExpand(t *testing.T) {
	s := loadedScreen(t, &mockAttemptRepo{attempts: testAttempts()})

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("selected after up at top = %d, want 0", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1 (clamped)", s.selected)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 24), "No answers recorded") {
		t.Error("expected expanded attempt without answers")
	}

	s.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(100, 24)
	if !strings.Contains(view, "Welche PSA?") || !strings.Contains(view, "0/5") {
		t.Error("expected per-question results of the first attempt")
	}
}

func TestHistoryScreen_Esc(t *testing.T) {
	s := loadedScreen(t, &mockAttemptRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Esc")
	}
}
