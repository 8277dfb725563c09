package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oba-digital/obi-backend/internal/domain"
)

// HelpQuestionStore reads the seeded example questions shown on the chat screen.
type HelpQuestionStore struct {
	db *pgxpool.Pool
}

func NewHelpQuestionStore(db *pgxpool.Pool) *HelpQuestionStore {
	return &HelpQuestionStore{db: db}
}

func (s *HelpQuestionStore) List(ctx context.Context) ([]domain.HelpQuestion, error) {
	rows, err := s.db.Query(ctx,
		`SELECT question, answer FROM help_questions ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list help questions: %v", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var questions []domain.HelpQuestion
	for rows.Next() {
		var q domain.HelpQuestion
		if err := rows.Scan(&q.Question, &q.Answer); err != nil {
			return nil, fmt.Errorf("%w: scan help question: %v", domain.ErrStorageUnavailable, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read help questions: %v", domain.ErrStorageUnavailable, err)
	}
	return questions, nil
}
