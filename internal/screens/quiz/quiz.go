package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/grading"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/questions"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/router"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/screen"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/screens/summary"
	sess "github.com/ptrumpis-ups/loader-quiz-app/internal/session"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/store"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/components"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/layout"
)

// saveTimeout bounds the attempt log write.
const saveTimeout = 5 * time.Second

// Loader produces the question bank. It runs once, off the Update goroutine.
type Loader func() (*questions.Bank, error)

// Options holds the dependencies of the quiz screen. Only Load is required.
type Options struct {
	Load     Loader
	Attempts store.AttemptRepo
	Logger   *zap.Logger
	Now      func() time.Time
}

// QuizScreen drives a quiz session: it owns the session state and invokes
// the session operations on key events.
type QuizScreen struct {
	load     Loader
	attempts store.AttemptRepo
	logger   *zap.Logger
	now      func() time.Time

	state     *sess.SessionState
	quizTitle string
	inputs    []components.TextInput
	focus     int
	startedAt time.Time
	errMsg    string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a new QuizScreen. The questions are loaded by Init.
func New(opts Options) *QuizScreen {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &QuizScreen{
		load:     opts.Load,
		attempts: opts.Attempts,
		logger:   logger,
		now:      now,
		state:    sess.NewSessionState(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.loadQuestions()
}

func (s *QuizScreen) Title() string {
	if s.quizTitle != "" {
		return s.quizTitle
	}
	return "Quiz"
}

func (s *QuizScreen) Status() string {
	if s.state.Phase() == sess.PhaseLoading {
		return ""
	}
	return fmt.Sprintf("Score: %d/%d", s.state.TotalScore, sess.MaxScore(s.state.Questions))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	switch s.state.Phase() {
	case sess.PhaseInProgress:
		if s.state.HasAnsweredCurrent {
			return []layout.KeyHint{
				{Key: "Enter", Description: s.nextLabel()},
				{Key: "Esc", Description: "Home"},
			}
		}
		return []layout.KeyHint{
			{Key: "Tab/↑↓", Description: "Switch answer"},
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Home"},
		}
	case sess.PhaseFinished:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Summary"},
			{Key: "R", Description: "Restart"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)

	case summary.RestartRequestedMsg:
		return s.restart()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Cursor blinks and pastes go to the focused slot.
	if s.editable() {
		return s.updateFocused(msg)
	}
	return s, nil
}

// loadQuestions is the one-shot question load.
func (s *QuizScreen) loadQuestions() tea.Cmd {
	load := s.load
	return func() tea.Msg {
		if load == nil {
			return questionsLoadedMsg{Err: errors.New("no question source configured")}
		}
		bank, err := load()
		return questionsLoadedMsg{Bank: bank, Err: err}
	}
}

func (s *QuizScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.logger.Error("question load failed", zap.Error(msg.Err))
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if msg.Bank == nil || msg.Bank.Len() == 0 {
		s.errMsg = "the quiz has no questions"
		return s, nil
	}

	sess.Load(s.state, msg.Bank.Questions())
	s.quizTitle = msg.Bank.Title()
	s.startedAt = s.now()
	s.logger.Info("quiz loaded",
		zap.String("quiz", s.quizTitle),
		zap.Int("questions", len(s.state.Questions)),
		zap.Int("max_score", sess.MaxScore(s.state.Questions)))

	return s, s.resetInputs()
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	key := msg.String()

	switch s.state.Phase() {
	case sess.PhaseLoading:
		return s, nil

	case sess.PhaseFinished:
		switch key {
		case "enter":
			return s, s.pushSummary()
		case "r", "R":
			return s.restart()
		}
		return s, nil
	}

	if s.state.HasAnsweredCurrent {
		if key == "enter" {
			return s.advance()
		}
		return s, nil
	}

	switch key {
	case "enter":
		return s.grade()
	case "tab", "down":
		return s, s.moveFocus(1)
	case "shift+tab", "up":
		return s, s.moveFocus(-1)
	}

	return s.updateFocused(msg)
}

// editable reports whether the answer slots accept input.
func (s *QuizScreen) editable() bool {
	return s.errMsg == "" &&
		s.state.Phase() == sess.PhaseInProgress &&
		!s.state.HasAnsweredCurrent &&
		s.focus < len(s.inputs)
}

func (s *QuizScreen) updateFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if !s.editable() {
		return s, nil
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	sess.SetAnswer(s.state, s.focus, s.inputs[s.focus].Value())
	return s, cmd
}

func (s *QuizScreen) moveFocus(delta int) tea.Cmd {
	n := len(s.inputs)
	if n < 2 {
		return nil
	}
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + n) % n
	return s.inputs[s.focus].Focus()
}

// resetInputs builds one empty slot per expected answer of the current
// question and focuses the first.
func (s *QuizScreen) resetInputs() tea.Cmd {
	q := s.state.CurrentQuestion()
	s.focus = 0
	s.inputs = nil
	if q == nil {
		return nil
	}
	s.inputs = make([]components.TextInput, q.SlotCount())
	for i := range s.inputs {
		s.inputs[i] = components.NewTextInput(i, 40)
	}
	return s.inputs[0].Focus()
}

func (s *QuizScreen) grade() (screen.Screen, tea.Cmd) {
	q := s.state.CurrentQuestion()
	if q == nil {
		return s, nil
	}
	index := s.state.CurrentIndex
	res := sess.Grade(s.state)
	if res == nil {
		return s, nil
	}

	for i, ok := range slotMarks(q.StrictOrder, s.state.UserAnswers, res) {
		if i >= len(s.inputs) {
			break
		}
		if ok {
			s.inputs[i].SetMark(components.MarkCorrect)
		} else {
			s.inputs[i].SetMark(components.MarkIncorrect)
		}
	}

	s.logger.Info("question graded",
		zap.Int("index", index),
		zap.String("verdict", string(res.Verdict)),
		zap.Int("awarded", res.Awarded),
		zap.Int("total", s.state.TotalScore))
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	sess.Advance(s.state)
	if !s.state.Finished {
		return s, s.resetInputs()
	}

	s.inputs = nil
	sum := sess.BuildSummary(s.state)
	s.logger.Info("quiz finished",
		zap.String("quiz", s.quizTitle),
		zap.Int("score", sum.Score),
		zap.Int("max_score", sum.MaxScore))

	return s, tea.Sequence(s.pushSummary(), s.saveAttempt(sum))
}

func (s *QuizScreen) restart() (screen.Screen, tea.Cmd) {
	if s.state.Phase() == sess.PhaseLoading {
		return s, nil
	}
	sess.Restart(s.state)
	s.startedAt = s.now()
	s.logger.Info("quiz restarted", zap.String("quiz", s.quizTitle))
	return s, s.resetInputs()
}

func (s *QuizScreen) pushSummary() tea.Cmd {
	scr := summary.New(s.quizTitle, sess.BuildSummary(s.state))
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: scr}
	}
}

// saveAttempt appends the finished attempt to the attempt log. Failures are
// logged and reported to the summary screen; they never end the quiz.
func (s *QuizScreen) saveAttempt(sum *sess.SessionSummary) tea.Cmd {
	if s.attempts == nil {
		return nil
	}
	rec := attemptRecord(s.quizTitle, sum, s.startedAt, s.now())
	repo := s.attempts
	logger := s.logger

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if err := repo.SaveAttempt(ctx, rec); err != nil {
			logger.Error("attempt save failed", zap.String("id", rec.ID), zap.Error(err))
			return summary.AttemptSavedMsg{ID: rec.ID, Err: err}
		}
		logger.Info("attempt saved", zap.String("id", rec.ID), zap.Int("score", rec.Score))
		return summary.AttemptSavedMsg{ID: rec.ID}
	}
}

func attemptRecord(quiz string, sum *sess.SessionSummary, started, finished time.Time) *store.AttemptRecord {
	rec := &store.AttemptRecord{
		ID:         uuid.NewString(),
		Quiz:       quiz,
		Score:      sum.Score,
		MaxScore:   sum.MaxScore,
		Questions:  sum.Questions,
		StartedAt:  started,
		FinishedAt: finished,
		Answers:    make([]store.AnswerRecord, len(sum.Results)),
	}
	for i, r := range sum.Results {
		rec.Answers[i] = store.AnswerRecord{
			Position: i,
			Prompt:   r.Prompt,
			Verdict:  string(r.Verdict),
			Awarded:  r.Awarded,
			Possible: r.Possible,
			Given:    r.Given,
		}
	}
	return rec
}

// slotMarks reports, per answer slot, whether the slot contributed to a
// correct breakdown entry. Strict results line up with the slots; unordered
// results are matched back the way grading consumed them.
func slotMarks(strict bool, answers []string, res *grading.Result) []bool {
	marks := make([]bool, max(len(answers), len(res.Details)))

	if strict {
		for i, d := range res.Details {
			marks[i] = d.Correct
		}
		return marks
	}

	for _, d := range res.Details {
		if !d.Correct {
			continue
		}
		for i, a := range answers {
			if !marks[i] && strings.EqualFold(grading.Sanitize(a), d.UserAnswer) {
				marks[i] = true
				break
			}
		}
	}
	return marks
}
