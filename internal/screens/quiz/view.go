package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/grading"
	sess "github.com/ptrumpis-ups/loader-quiz-app/internal/session"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/components"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	switch s.state.Phase() {
	case sess.PhaseLoading:
		return renderLoading(width)
	case sess.PhaseFinished:
		return s.renderFinished(width)
	}
	return s.renderQuestionView(width)
}

// nextLabel names what enter does once the current question is graded.
func (s *QuizScreen) nextLabel() string {
	if s.state.CurrentIndex+1 >= len(s.state.Questions) {
		return "Show results"
	}
	return "Next question"
}

// renderQuestionView renders the current question, its answer slots and,
// once graded, the feedback.
func (s *QuizScreen) renderQuestionView(width int) string {
	q := s.state.CurrentQuestion()
	if q == nil {
		return ""
	}
	cw := components.ContentWidth(width)
	current, total := sess.Progress(s.state)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d/%d", current, total))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score: %d", s.state.TotalScore))
	if q.StrictOrder {
		infoRight = theme.Hint.Render("order matters") + "   " + infoRight
	}

	gap := cw - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(infoLeft + strings.Repeat(" ", gap) + infoRight)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	for _, in := range s.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	label := "Check"
	if s.state.HasAnsweredCurrent {
		label = s.nextLabel()
	}
	b.WriteString(components.NewButton(label, true).View())

	if s.state.HasAnsweredCurrent && s.state.LastFeedback != nil {
		b.WriteString("\n\n")
		b.WriteString(renderFeedback(s.state.LastFeedback))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderFeedback renders the verdict and the per-answer breakdown.
func renderFeedback(res *grading.Result) string {
	var b strings.Builder

	if res.AllCorrect() {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Incorrect"))
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  +%d points", res.Awarded)))
	b.WriteString("\n")

	for _, d := range res.Details {
		b.WriteString("  ")
		b.WriteString(feedbackLine(d))
		b.WriteString("\n")
	}
	return b.String()
}

func feedbackLine(d grading.Detail) string {
	given := d.UserAnswer
	if given == "" {
		given = grading.NoInput
	}
	if d.Correct {
		return lipgloss.NewStyle().Foreground(theme.Success).
			Render("Correct: " + given)
	}
	return lipgloss.NewStyle().Foreground(theme.Error).
		Render(fmt.Sprintf("Incorrect: %s (expected: %s)", given, d.Expected))
}

func (s *QuizScreen) renderFinished(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Quiz complete!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("%d / %d points",
		s.state.TotalScore, sess.MaxScore(s.state.Questions))))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Press Enter for the summary or R to restart."))
	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Loading...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
