package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/grading"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/router"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/screen"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/session"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/components"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/layout"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/theme"
)

// RestartRequestedMsg asks the quiz screen below the summary to start over.
type RestartRequestedMsg struct{}

// AttemptSavedMsg reports the outcome of writing the finished attempt to
// the attempt log.
type AttemptSavedMsg struct {
	ID  string
	Err error
}

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	quizTitle  string
	summary    *session.SessionSummary
	saveStatus string
	saveFailed bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(quizTitle string, summary *session.SessionSummary) *SummaryScreen {
	return &SummaryScreen{quizTitle: quizTitle, summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) Status() string {
	if s.summary == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d points", s.summary.Score, s.summary.MaxScore)
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter/R", Description: "Restart"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case AttemptSavedMsg:
		if msg.Err != nil {
			s.saveStatus = "Could not save this attempt."
			s.saveFailed = true
		} else {
			s.saveStatus = "Attempt saved to history."
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "r":
			return s, tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				func() tea.Msg { return RestartRequestedMsg{} },
			)
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw).Render("Quiz complete!"))
	b.WriteString("\n")
	if s.quizTitle != "" {
		b.WriteString(theme.Subtitle.Width(cw).Render(s.quizTitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(components.Centered(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%d / %d points", sum.Score, sum.MaxScore)), cw))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Score", sum.Score, sum.MaxScore, min(cw, 50))
	b.WriteString(components.Centered(bar.View(), cw))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Questions: %d      Correct: %d      Score: %.0f%%",
		sum.Questions, sum.Correct, sum.Percent*100)
	b.WriteString(components.Centered(
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(stats), cw))
	b.WriteString("\n\n")

	b.WriteString(components.Centered(theme.Label.Render("Results"), cw))
	b.WriteString("\n")
	b.WriteString(components.Centered(
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw-4)), cw))
	b.WriteString("\n")

	// Leave room for the blocks above and the save status below.
	rows := height - 14
	results := sum.Results
	hidden := 0
	if rows > 0 && len(results) > rows {
		hidden = len(results) - rows + 1
		results = results[:rows-1]
	}
	for i, r := range results {
		b.WriteString(resultLine(i, r, cw))
		b.WriteString("\n")
	}
	if hidden > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  … %d more", hidden)))
		b.WriteString("\n")
	}

	if s.saveStatus != "" {
		style := theme.Hint
		if s.saveFailed {
			style = style.Foreground(theme.Error)
		}
		b.WriteString("\n")
		b.WriteString(components.Centered(style.Render(s.saveStatus), cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// resultLine renders one graded question as "✓ 1. prompt  2/2".
func resultLine(i int, r session.QuestionResult, cw int) string {
	mark := theme.Correct.Render("✓")
	if r.Verdict != grading.VerdictCorrect {
		mark = theme.Incorrect.Render("✗")
	}
	points := fmt.Sprintf("%d/%d", r.Awarded, r.Possible)
	prefix := fmt.Sprintf("%d. ", i+1)

	promptWidth := cw - 4 - len(prefix) - len(points) - 2
	prompt := ansi.Truncate(strings.Join(strings.Fields(r.Prompt), " "), max(promptWidth, 8), "…")

	gap := cw - 4 - len(prefix) - lipgloss.Width(prompt) - len(points)
	if gap < 1 {
		gap = 1
	}
	return fmt.Sprintf("  %s %s%s%s%s",
		mark, prefix,
		lipgloss.NewStyle().Foreground(theme.Text).Render(prompt),
		strings.Repeat(" ", gap),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(points))
}
