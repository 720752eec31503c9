package entity

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// DateLayout is the wire and form format of task due dates.
const DateLayout = "2006-01-02"

type Task struct {
	ID          int64       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description null.String `db:"description" json:"description"`
	Subject     string      `db:"subject" json:"subject"`
	DueDate     null.Time   `db:"due_date" json:"due_date"`
	Completed   bool        `db:"completed" json:"completed"`
	UserID      int64       `db:"user_id" json:"user_id"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// Due formats the due date for display, or returns an empty string.
func (t Task) Due() string {
	if !t.DueDate.Valid {
		return ""
	}
	return t.DueDate.Time.Format(DateLayout)
}
