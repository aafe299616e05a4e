package components

import (
	"fmt"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/theme"
)

// Mark is the grading mark shown next to an answer slot.
type Mark int

const (
	MarkNone Mark = iota
	MarkCorrect
	MarkIncorrect
)

// TextInput wraps bubbles/textinput as one labelled answer slot.
type TextInput struct {
	Model textinput.Model
	Label string
	mark  Mark
}

// NewTextInput creates an unfocused answer slot. slot is zero-based; the
// label shows it one-based.
func NewTextInput(slot, width int) TextInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type your answer"
	ti.CharLimit = 200
	if width > 0 {
		ti.SetWidth(width)
	}

	return TextInput{
		Model: ti,
		Label: fmt.Sprintf("Answer %d", slot+1),
	}
}

// Focus gives the slot keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the slot has keyboard focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update forwards messages to the wrapped input. Once marked, the slot is
// read-only.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.mark != MarkNone {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the boxed input and the grading mark.
func (t TextInput) View() string {
	box := theme.InputBlurred
	if t.Model.Focused() {
		box = theme.InputFocused
	}

	row := box.Render(t.Model.View())
	switch t.mark {
	case MarkCorrect:
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, " "+theme.Correct.Render("✓"))
	case MarkIncorrect:
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, " "+theme.Incorrect.Render("✗"))
	}

	return theme.Label.Render(t.Label) + "\n" + row
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// SetMark freezes the slot and shows a grading mark.
func (t *TextInput) SetMark(m Mark) {
	t.mark = m
	t.Model.Blur()
}

// Marked reports whether the slot has been graded.
func (t TextInput) Marked() bool {
	return t.mark != MarkNone
}
