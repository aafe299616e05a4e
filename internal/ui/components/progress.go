package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for Value out of Max, followed by
// "Value/Max".
type ProgressBar struct {
	Label string
	Value int
	Max   int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, value, max, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Value: value,
		Max:   max,
		Width: width,
	}
}

// Fraction returns Value/Max clamped to [0, 1]. A zero Max yields 0.
func (p ProgressBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	f := float64(p.Value) / float64(p.Max)
	return min(max(f, 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Value, p.Max)

	barWidth := p.Width - lipgloss.Width(result) - len(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(counter)

	return result
}
