package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/app"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/config"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/logging"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/questions"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/screens/quiz"
	"github.com/ptrumpis-ups/loader-quiz-app/internal/store"
)

// runApp resolves config, opens the attempt log and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("config resolved",
		zap.String("source", cfg.Source),
		zap.String("quiz", cfg.Quiz),
		zap.Bool("shuffle", cfg.Shuffle),
		zap.Int("limit", cfg.Limit),
		zap.String("db", cfg.DB),
		zap.String("version", version))

	st, err := store.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Load:     bankLoader(cfg),
		Attempts: st.AttemptRepo(),
		Logger:   logger,
	})
}

// bankLoader reads the configured quiz. Each call reads the file again and,
// with shuffle on, draws a new order.
func bankLoader(cfg *config.Config) quiz.Loader {
	return func() (*questions.Bank, error) {
		var opts []questions.Option
		if cfg.Title != "" {
			opts = append(opts, questions.WithTitle(cfg.Title))
		}
		if cfg.Shuffle {
			opts = append(opts, questions.WithShuffle(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))))
		}
		if cfg.Limit > 0 {
			opts = append(opts, questions.WithLimit(cfg.Limit))
		}

		if cfg.Quiz == "" {
			return questions.Default(opts...)
		}
		return questions.Load(cfg.Quiz, opts...)
	}
}
