package components

import (
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/theme"
)

// Button renders the label of the action bound to enter. It has no key
// handling of its own; the owning screen decides what enter does.
type Button struct {
	Label  string
	Active bool
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{
		Label:  label,
		Active: active,
	}
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
