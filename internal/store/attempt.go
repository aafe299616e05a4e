package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var attemptColumns = []string{
	"id", "quiz", "score", "max_score", "questions", "started_at", "finished_at",
}

var answerColumns = []string{
	"attempt_id", "position", "prompt", "verdict", "awarded", "possible", "given",
}

// attemptRepo implements AttemptRepo on top of the ent SQL driver.
type attemptRepo struct {
	drv *entsql.Driver
}

func (r *attemptRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *attemptRepo) SaveAttempt(ctx context.Context, rec *AttemptRecord) (err error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = rec.FinishedAt
	}

	b := r.builder()
	attemptQuery, attemptArgs := b.Insert(attemptsTable).
		Columns(attemptColumns...).
		Values(
			rec.ID, rec.Quiz, rec.Score, rec.MaxScore, rec.Questions,
			rec.StartedAt.UnixMilli(), rec.FinishedAt.UnixMilli(),
		).
		Query()

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = tx.Exec(ctx, attemptQuery, attemptArgs, nil); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	if len(rec.Answers) > 0 {
		insert := b.Insert(answersTable).Columns(answerColumns...)
		for _, a := range rec.Answers {
			given, mErr := json.Marshal(nonNil(a.Given))
			if mErr != nil {
				err = fmt.Errorf("marshal given answers: %w", mErr)
				return err
			}
			insert.Values(rec.ID, a.Position, a.Prompt, a.Verdict, a.Awarded, a.Possible, string(given))
		}
		query, args := insert.Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("insert answers: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) RecentAttempts(ctx context.Context, quiz string, limit int) ([]AttemptRecord, error) {
	b := r.builder()
	sel := b.Select(attemptColumns...).
		From(b.Table(attemptsTable)).
		OrderBy(entsql.Desc("finished_at"), entsql.Desc("started_at"))
	if quiz != "" {
		sel.Where(entsql.EQ("quiz", quiz))
	}
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	var attempts []AttemptRecord
	index := make(map[string]int)
	for rows.Next() {
		var (
			rec                 AttemptRecord
			started, finished int64
		)
		if err := rows.Scan(&rec.ID, &rec.Quiz, &rec.Score, &rec.MaxScore, &rec.Questions, &started, &finished); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.StartedAt = time.UnixMilli(started)
		rec.FinishedAt = time.UnixMilli(finished)
		index[rec.ID] = len(attempts)
		attempts = append(attempts, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	rows.Close()

	if len(attempts) == 0 {
		return nil, nil
	}
	if err := r.loadAnswers(ctx, attempts, index); err != nil {
		return nil, err
	}
	return attempts, nil
}

// loadAnswers fills in the answers of attempts. index maps attempt IDs to
// positions in attempts.
func (r *attemptRepo) loadAnswers(ctx context.Context, attempts []AttemptRecord, index map[string]int) error {
	ids := make([]any, len(attempts))
	for i, a := range attempts {
		ids[i] = a.ID
	}

	b := r.builder()
	query, args := b.Select(answerColumns...).
		From(b.Table(answersTable)).
		Where(entsql.In("attempt_id", ids...)).
		OrderBy("attempt_id", "position").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			attemptID string
			ans       AnswerRecord
			given     string
		)
		if err := rows.Scan(&attemptID, &ans.Position, &ans.Prompt, &ans.Verdict, &ans.Awarded, &ans.Possible, &given); err != nil {
			return fmt.Errorf("scan answer: %w", err)
		}
		if err := json.Unmarshal([]byte(given), &ans.Given); err != nil {
			return fmt.Errorf("decode given answers: %w", err)
		}
		i, ok := index[attemptID]
		if !ok {
			continue
		}
		attempts[i].Answers = append(attempts[i].Answers, ans)
	}
	return rows.Err()
}

func (r *attemptRepo) BestScore(ctx context.Context, quiz string) (int, bool, error) {
	b := r.builder()
	query, args := b.Select(entsql.Max("score")).
		From(b.Table(attemptsTable)).
		Where(entsql.EQ("quiz", quiz)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, false, fmt.Errorf("query best score: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, false, rows.Err()
	}
	var best *int64
	if err := rows.Scan(&best); err != nil {
		return 0, false, fmt.Errorf("scan best score: %w", err)
	}
	if best == nil {
		return 0, false, nil
	}
	return int(*best), true, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
