package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oba-digital/obi-backend/internal/config"
	"github.com/oba-digital/obi-backend/internal/domain"
)

const uniqueViolation = "23505"

// AnswerStore reads and writes persisted question/answer pairs: the
// per-user history table and the shared common-question set.
type AnswerStore struct {
	db *pgxpool.Pool
}

func NewAnswerStore(db *pgxpool.Pool) *AnswerStore {
	return &AnswerStore{db: db}
}

// LookupPersonal returns the saved answer for an exact, case-sensitive
// match of question in the user's history. Anonymous users (userID 0)
// have no history, so the lookup misses without touching storage.
func (s *AnswerStore) LookupPersonal(ctx context.Context, question string, userID int64) (string, error) {
	if userID == 0 {
		return "", domain.ErrNotFound
	}

	var answer string
	err := s.db.QueryRow(ctx,
		`SELECT answer FROM user_questions WHERE user_id = $1 AND question = $2`,
		userID, question,
	).Scan(&answer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("%w: lookup personal answer: %v", domain.ErrStorageUnavailable, err)
	}
	return answer, nil
}

// LookupCommon returns the canned answer for an exact match of question
// in the shared common-question set.
func (s *AnswerStore) LookupCommon(ctx context.Context, question string) (string, error) {
	var answer string
	err := s.db.QueryRow(ctx,
		`SELECT answer FROM common_questions WHERE question = $1`,
		question,
	).Scan(&answer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("%w: lookup common answer: %v", domain.ErrStorageUnavailable, err)
	}
	return answer, nil
}

// Save inserts one history entry for the user. Question and answer are
// truncated to the storage cap. A second entry with identical question
// text for the same user is rejected with domain.ErrDuplicateQuestion.
func (s *AnswerStore) Save(ctx context.Context, question, answer string, userID int64) (*domain.HistoryEntry, error) {
	question = truncate(question, config.MaxStoredTextLen)
	answer = truncate(answer, config.MaxStoredTextLen)

	entry := &domain.HistoryEntry{
		UserID:   userID,
		Question: question,
		Answer:   answer,
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO user_questions (user_id, question, answer) VALUES ($1, $2, $3) RETURNING id, created_at`,
		userID, question, answer,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateQuestion
		}
		return nil, fmt.Errorf("%w: save history entry: %v", domain.ErrStorageUnavailable, err)
	}
	return entry, nil
}

// ListQuestions returns the user's saved questions, oldest first.
func (s *AnswerStore) ListQuestions(ctx context.Context, userID int64) ([]domain.HistoryEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, question, answer, created_at FROM user_questions WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list history: %v", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Question, &e.Answer, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan history row: %v", domain.ErrStorageUnavailable, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read history rows: %v", domain.ErrStorageUnavailable, err)
	}
	return entries, nil
}

// DeleteQuestion removes one saved entry by its question text.
func (s *AnswerStore) DeleteQuestion(ctx context.Context, userID int64, question string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM user_questions WHERE user_id = $1 AND question = $2`,
		userID, question,
	)
	if err != nil {
		return fmt.Errorf("%w: delete history entry: %v", domain.ErrStorageUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
