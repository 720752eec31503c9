package repository

import (
	"context"

	"schoolplanner/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, title, description, subject, due_date, completed, user_id, created_at`

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO tasks (title, description, subject, due_date, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, completed, created_at
	`, t.Title, t.Description, t.Subject, t.DueDate, t.UserID).Scan(&t.ID, &t.Completed, &t.CreatedAt)

	return errors.Wrap(err, "inserting task")
}

// ListByUser returns the tasks owned by userID, earliest due date first.
// Tasks without a due date come last.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Task, error) {
	tasks := make([]entity.Task, 0)
	err := r.db.SelectContext(ctx, &tasks, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY due_date ASC NULLS LAST, id
	`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting tasks")
	}
	return tasks, nil
}

// DeleteByIDAndOwner deletes the task only when it belongs to userID. It
// reports whether a row was removed.
func (r *TaskRepository) DeleteByIDAndOwner(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, errors.Wrap(err, "deleting task")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "deleting task")
	}
	return n > 0, nil
}
