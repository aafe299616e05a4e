package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/questions"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/router"
)

func testModel(t *testing.T) AppModel {
	t.Helper()
	m := newAppModel(Options{Load: func() (*questions.Bank, error) { return questions.Default() }})
	if cmd := m.Init(); cmd != nil {
		updated, _ := m.Update(cmd())
		m = updated.(AppModel)
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestAppModel_TooSmall(t *testing.T) {
	m := testModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small!") {
		t.Error("expected resize message")
	}
}

func TestAppModel_HomeFrame(t *testing.T) {
	m := testModel(t)
	content := m.render()
	for _, want := range []string{"quizdrill", "Home", "START QUIZ", "Ctrl+C"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected frame to contain %q", want)
		}
	}
}

func TestAppModel_CtrlC(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg on ctrl+c")
	}
}

func TestAppModel_EscPopsOnlyAboveHome(t *testing.T) {
	m := testModel(t)
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("expected esc on home to do nothing")
	}

	// START QUIZ pushes the quiz screen.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	updated, _ := m.Update(cmd())
	m = updated.(AppModel)
	if m.router.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on esc")
	}
}
