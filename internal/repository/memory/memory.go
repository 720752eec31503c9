// Package memory provides in-process stand-ins for the postgres repositories.
// They follow the same ordering, uniqueness and ownership rules and are used
// by handler and use case tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/entity"
)

type Users struct {
	mu     sync.Mutex
	nextID int64
	rows   []entity.User
}

func NewUsers() *Users {
	return &Users{}
}

func (s *Users) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.Username == u.Username || row.Email == u.Email {
			return apperror.ErrConflict
		}
	}
	if u.Role == "" {
		u.Role = entity.RoleStudent
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	s.rows = append(s.rows, *u)
	return nil
}

func (s *Users) FindByID(_ context.Context, id int64) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return entity.User{}, apperror.ErrNotFound
}

func (s *Users) FindByUsername(_ context.Context, username string) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.Username == username {
			return row, nil
		}
	}
	return entity.User{}, apperror.ErrNotFound
}

func (s *Users) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.Username == username || row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Users) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows), nil
}

type Lessons struct {
	mu     sync.Mutex
	nextID int64
	rows   []entity.Lesson
}

func NewLessons() *Lessons {
	return &Lessons{}
}

func (s *Lessons) Create(_ context.Context, l *entity.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	l.ID = s.nextID
	l.CreatedAt = time.Now()
	s.rows = append(s.rows, *l)
	return nil
}

func (s *Lessons) FindByID(_ context.Context, id int64) (entity.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return entity.Lesson{}, apperror.ErrNotFound
}

func (s *Lessons) List(_ context.Context) ([]entity.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]entity.Lesson(nil), s.rows...)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dayIndex(out[i].DayOfWeek), dayIndex(out[j].DayOfWeek)
		if di != dj {
			return di < dj
		}
		if out[i].TimeStart != out[j].TimeStart {
			return out[i].TimeStart < out[j].TimeStart
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Lessons) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range s.rows {
		if row.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func dayIndex(day string) int {
	for i, d := range entity.Weekdays {
		if d == day {
			return i
		}
	}
	return len(entity.Weekdays)
}

type Tasks struct {
	mu     sync.Mutex
	nextID int64
	rows   []entity.Task
}

func NewTasks() *Tasks {
	return &Tasks{}
}

func (s *Tasks) Create(_ context.Context, t *entity.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t.ID = s.nextID
	t.Completed = false
	t.CreatedAt = time.Now()
	s.rows = append(s.rows, *t)
	return nil
}

// ListByUser orders by due date with undated tasks last.
func (s *Tasks) ListByUser(_ context.Context, userID int64) ([]entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Task, 0)
	for _, row := range s.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a.Valid && b.Valid && !a.Time.Equal(b.Time):
			return a.Time.Before(b.Time)
		case a.Valid != b.Valid:
			return a.Valid
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Tasks) DeleteByIDAndOwner(_ context.Context, id, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range s.rows {
		if row.ID == id && row.UserID == userID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type Results struct {
	mu     sync.Mutex
	nextID int64
	rows   []entity.TestResult
}

func NewResults() *Results {
	return &Results{}
}

func (s *Results) Create(_ context.Context, r *entity.TestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	r.ID = s.nextID
	r.CompletedAt = time.Now()
	s.rows = append(s.rows, *r)
	return nil
}

func (s *Results) ListByUser(_ context.Context, userID int64) ([]entity.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// newest first
	out := make([]entity.TestResult, 0)
	for i := len(s.rows) - 1; i >= 0; i-- {
		if row := s.rows[i]; row.UserID.Valid && row.UserID.Int64 == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *Results) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows), nil
}
