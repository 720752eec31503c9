package repository

import (
	"context"

	"schoolplanner/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) Create(ctx context.Context, res *entity.TestResult) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO test_results (user_id, test_name, score, total_questions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, completed_at
	`, res.UserID, res.TestName, res.Score, res.TotalQuestions).Scan(&res.ID, &res.CompletedAt)

	return errors.Wrap(err, "inserting test result")
}

func (r *ResultRepository) ListByUser(ctx context.Context, userID int64) ([]entity.TestResult, error) {
	results := make([]entity.TestResult, 0)
	err := r.db.SelectContext(ctx, &results, `
		SELECT id, user_id, test_name, score, total_questions, completed_at
		FROM test_results
		WHERE user_id = $1
		ORDER BY completed_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting test results")
	}
	return results, nil
}

func (r *ResultRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM test_results`)
	return n, errors.Wrap(err, "counting test results")
}
