package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/grading"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/router"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/screen"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/store"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/layout"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/theme"
)

// Limit is the number of attempts the screen loads.
const Limit = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

// HistoryScreen displays past attempts from the attempt log.
type HistoryScreen struct {
	repo     store.AttemptRepo
	quiz     string
	logger   *zap.Logger
	attempts []store.AttemptRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. An empty quiz lists attempts of every
// quiz.
func New(repo store.AttemptRepo, quiz string, logger *zap.Logger) *HistoryScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryScreen{
		repo:     repo,
		quiz:     quiz,
		logger:   logger,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, quiz, logger := s.repo, s.quiz, s.logger
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		attempts, err := repo.RecentAttempts(context.Background(), quiz, Limit)
		if err != nil {
			logger.Error("history query failed", zap.String("quiz", quiz), zap.Error(err))
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: attempts}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.attempts) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Finish a quiz to see it here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-24s  %3d/%-3d points  %3.0f%%",
			prefix,
			a.FinishedAt.Local().Format("Jan 02, 2006 15:04"),
			ansi.Truncate(a.Quiz, 24, "…"),
			a.Score, a.MaxScore, percent(a.Score, a.MaxScore))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Accent).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(renderAnswers(a.Answers, width))
		}
	}

	return b.String()
}

func renderAnswers(answers []store.AnswerRecord, width int) string {
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No answers recorded")) + "\n"
	}

	var b strings.Builder
	for _, ans := range answers {
		prompt := ansi.Truncate(strings.Join(strings.Fields(ans.Prompt), " "), 44, "…")
		line := fmt.Sprintf("    %2d. %-44s  %d/%d", ans.Position+1, prompt, ans.Awarded, ans.Possible)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(verdictColor(ans.Verdict)).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func percent(score, maxScore int) float64 {
	if maxScore <= 0 {
		return 0
	}
	return float64(score) / float64(maxScore) * 100
}

func verdictColor(v string) color.Color {
	if v == string(grading.VerdictCorrect) {
		return theme.Success
	}
	return theme.Error
}
