package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/router"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/screen"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/screens/history"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/screens/quiz"
	sess "github.com/ptrumpis-ups/loader-quiz-app/internal/session"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/store"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/components"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/layout"
)

// Options holds the dependencies the home screen hands to the screens it
// opens.
type Options struct {
	Load     quiz.Loader
	Attempts store.AttemptRepo
	Logger   *zap.Logger
}

// quizInfo is what the home screen shows about the configured quiz.
type quizInfo struct {
	Title     string
	Questions int
	MaxScore  int
	Best      int
	HasBest   bool
	Err       error
}

type quizInfoLoadedMsg quizInfo

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	info   quizInfo
	loaded bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	h := &HomeScreen{opts: opts}

	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			scr := quiz.New(quiz.Options{
				Load:     opts.Load,
				Attempts: opts.Attempts,
				Logger:   opts.Logger,
			})
			return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			scr := history.New(opts.Attempts, h.info.Title, opts.Logger)
			return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadInfo()
}

// loadInfo reads the quiz and its best recorded score.
func (h *HomeScreen) loadInfo() tea.Cmd {
	opts := h.opts
	return func() tea.Msg {
		if opts.Load == nil {
			return quizInfoLoadedMsg{}
		}
		bank, err := opts.Load()
		if err != nil {
			return quizInfoLoadedMsg{Err: err}
		}
		info := quizInfo{
			Title:     bank.Title(),
			Questions: bank.Len(),
			MaxScore:  sess.MaxScore(bank.Questions()),
		}
		if opts.Attempts != nil {
			best, ok, err := opts.Attempts.BestScore(context.Background(), info.Title)
			if err != nil {
				opts.Logger.Warn("best score query failed", zap.String("quiz", info.Title), zap.Error(err))
			}
			info.Best, info.HasBest = best, ok
		}
		return quizInfoLoadedMsg(info)
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizInfoLoadedMsg:
		h.info = quizInfo(msg)
		h.loaded = true
		h.menu.Items[0].Disabled = h.info.Err != nil
		if h.menu.Items[0].Disabled && h.menu.Selected == 0 {
			h.menu.Selected = 1
		}
		return h, nil

	case router.ResumedMsg:
		return h, h.loadInfo()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < layout.CompactHeight
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant(), cw))
	}

	switch {
	case h.info.Err != nil:
		sections = append(sections, renderLoadError(h.info.Err.Error(), cw))
	case h.loaded:
		sections = append(sections, renderQuizCard(h.info, cw))
	}

	sections = append(sections, renderMenu(h.menu, cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) mascotVariant() MascotVariant {
	switch {
	case h.info.Err != nil:
		return MascotAlert
	case h.info.HasBest && h.info.MaxScore > 0 && h.info.Best >= h.info.MaxScore:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}
