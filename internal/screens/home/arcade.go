package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/components"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/theme"
)

const titleFull = `╔═╗  ╦ ╦ ╦ ╔═╗ ╔╦╗ ╦═╗ ╦ ╦   ╦
║═╬╗ ║ ║ ║ ╔═╝  ║║ ╠╦╝ ║ ║   ║
╚═╝╚ ╚═╝ ╩ ╚═╝ ═╩╝ ╩╚═ ╩ ╩═╝ ╩═╝`

const titleCompact = "Q · U · I · Z · D · R · I · L · L"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	if compact {
		return components.Centered(style.Render(titleCompact), cw)
	}
	return components.Centered(style.Render(titleFull), cw)
}

// renderQuizCard renders the quiz title and its numbers in a bordered box
// matching content width.
func renderQuizCard(info quizInfo, cw int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	best := dimStyle.Render("★ NO ATTEMPTS YET")
	if info.HasBest {
		best = bestStyle.Render(fmt.Sprintf("★ BEST %d/%d", info.Best, info.MaxScore))
	}

	stats := strings.Join([]string{
		countStyle.Render(fmt.Sprintf("%d QUESTIONS", info.Questions)),
		countStyle.Render(fmt.Sprintf("◆ %d POINTS", info.MaxScore)),
		best,
	}, "   ")

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(info.Title) + "\n" + stats)
}

// renderLoadError replaces the quiz card when the question file is broken.
func renderLoadError(errMsg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + errMsg)
}

// renderMenu renders the menu as fixed-width buttons.
func renderMenu(menu components.Menu, cw int) string {
	return components.Centered(menu.View(buttonWidth), cw)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return components.Centered(RenderMascot(variant), cw)
}
