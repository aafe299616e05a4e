package home

import (
	"charm.land/lipgloss/v2"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default hard hat
	MascotCelebrating                      // Best attempt scored every point
	MascotAlert                            // Question file failed to load
)

const mascotIdle = `  ▄▄▄▄▄
 █▀▀█▀▀█
▀▀▀▀▀▀▀▀▀
 │ ◉ ◉ │
 │  ▽  │
 └─────┘`

const mascotCelebrating = `  ▄▄▄▄▄
 █▀▀█▀▀█
▀▀▀▀▀▀▀▀▀
 │ ★ ★ │
 │  ▿  │
 └─╥═╥─┘
   ╚═╝`

const mascotAlert = `  ▄▄▄▄▄
 █▀▀█▀▀█
▀▀▀▀▀▀▀▀▀
 │ ◉ ◉ │ !
 │  △  │
 └─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.Accent

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Success
	case MascotAlert:
		art = mascotAlert
		fg = theme.Error
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
