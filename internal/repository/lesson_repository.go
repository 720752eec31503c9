package repository

import (
	"context"

	"schoolplanner/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type LessonRepository struct {
	db *sqlx.DB
}

func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

const lessonColumns = `id, subject, teacher, classroom, day_of_week, time_start, time_end, created_by, created_at`

func (r *LessonRepository) Create(ctx context.Context, l *entity.Lesson) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO lessons (subject, teacher, classroom, day_of_week, time_start, time_end, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, l.Subject, l.Teacher, l.Classroom, l.DayOfWeek, l.TimeStart, l.TimeEnd, l.CreatedBy).Scan(&l.ID, &l.CreatedAt)

	return errors.Wrap(err, "inserting lesson")
}

func (r *LessonRepository) FindByID(ctx context.Context, id int64) (entity.Lesson, error) {
	var l entity.Lesson
	err := r.db.GetContext(ctx, &l, `SELECT `+lessonColumns+` FROM lessons WHERE id = $1`, id)
	if err != nil {
		return entity.Lesson{}, notFound(err, "selecting lesson")
	}
	return l, nil
}

// List returns every lesson ordered by weekday (Monday first), then start
// time. time_start is a zero padded HH:MM string so text order is time order.
func (r *LessonRepository) List(ctx context.Context) ([]entity.Lesson, error) {
	lessons := make([]entity.Lesson, 0)
	err := r.db.SelectContext(ctx, &lessons, `
		SELECT `+lessonColumns+`
		FROM lessons
		ORDER BY array_position($1::text[], day_of_week), time_start, id
	`, pq.Array(entity.Weekdays))
	if err != nil {
		return nil, errors.Wrap(err, "selecting lessons")
	}
	return lessons, nil
}

// Delete removes the lesson with the given id. It reports whether a row was
// removed; a missing lesson is not an error.
func (r *LessonRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "deleting lesson")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "deleting lesson")
	}
	return n > 0, nil
}
