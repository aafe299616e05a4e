package store

import (
	"context"
	"time"
)

// AnswerRecord is one graded question inside an attempt.
type AnswerRecord struct {
	Position int
	Prompt   string
	Verdict  string
	Awarded  int
	Possible int
	Given    []string
}

// AttemptRecord is one finished pass through a quiz.
type AttemptRecord struct {
	ID         string // UUID; assigned by SaveAttempt when empty
	Quiz       string
	Score      int
	MaxScore   int
	Questions  int
	StartedAt  time.Time
	FinishedAt time.Time
	Answers    []AnswerRecord
}

// AttemptRepo is the append-only log of finished attempts.
type AttemptRepo interface {
	// SaveAttempt stores the attempt and its answers in one transaction.
	SaveAttempt(ctx context.Context, rec *AttemptRecord) error

	// RecentAttempts returns up to limit attempts, newest first, with their
	// answers. An empty quiz returns attempts for every quiz; limit <= 0
	// returns all.
	RecentAttempts(ctx context.Context, quiz string, limit int) ([]AttemptRecord, error)

	// BestScore returns the highest score recorded for quiz. ok is false when
	// the quiz has no attempts.
	BestScore(ctx context.Context, quiz string) (score int, ok bool, err error)
}
