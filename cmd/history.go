package cmd

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/grading"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/store"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		quizTitle, _ := cmd.Flags().GetString("quiz")
		limit, _ := cmd.Flags().GetInt("limit")
		details, _ := cmd.Flags().GetBool("details")

		cfg, err := loadConfig(cmd, cmd.InheritedFlags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		s, err := store.Open(cfg.DB)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		attempts, err := s.AttemptRepo().RecentAttempts(cmd.Context(), quizTitle, limit)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		printAttempts(cmd.OutOrStdout(), attempts, details)
		return nil
	},
}

func init() {
	historyCmd.Flags().String("quiz", "", "Only show attempts of the quiz with this title")
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to show (0 shows all)")
	historyCmd.Flags().Bool("details", false, "Show per-question results")
}

// printAttempts writes a table of attempts. Colors are dropped when w is not
// a terminal.
func printAttempts(w io.Writer, attempts []store.AttemptRecord, details bool) {
	if len(attempts) == 0 {
		lipgloss.Fprintln(w, "No attempts found.")
		return
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	correct := lipgloss.NewStyle().Foreground(theme.Success)
	incorrect := lipgloss.NewStyle().Foreground(theme.Error)

	lipgloss.Fprintln(w, header.Render(fmt.Sprintf("%-16s  %-28s  %9s  %5s  %s",
		"Finished", "Quiz", "Score", "%", "ID")))
	lipgloss.Fprintln(w, strings.Repeat("─", 80))

	for _, a := range attempts {
		quizTitle := a.Quiz
		if len([]rune(quizTitle)) > 28 {
			quizTitle = string([]rune(quizTitle)[:27]) + "…"
		}
		var pct float64
		if a.MaxScore > 0 {
			pct = float64(a.Score) / float64(a.MaxScore) * 100
		}
		lipgloss.Fprintf(w, "%-16s  %-28s  %4d/%-4d  %4.0f%%  %s\n",
			a.FinishedAt.Local().Format("2006-01-02 15:04"),
			quizTitle, a.Score, a.MaxScore, pct, a.ID)

		if !details {
			continue
		}
		for _, ans := range a.Answers {
			style := incorrect
			if ans.Verdict == string(grading.VerdictCorrect) {
				style = correct
			}
			lipgloss.Fprintln(w, style.Render(fmt.Sprintf("    %2d. %-9s %d/%d  %s",
				ans.Position+1, ans.Verdict, ans.Awarded, ans.Possible, ans.Prompt)))
		}
	}
}
