// Package seed fills an empty database with demo accounts, a weekly timetable,
// homework and test results.
package seed

import (
	"context"
	"log/slog"
	"time"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/entity"
	"schoolplanner/internal/password"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

type UserStore interface {
	Create(ctx context.Context, u *entity.User) error
	FindByUsername(ctx context.Context, username string) (entity.User, error)
}

type LessonStore interface {
	Create(ctx context.Context, l *entity.Lesson) error
	List(ctx context.Context) ([]entity.Lesson, error)
}

type TaskStore interface {
	Create(ctx context.Context, t *entity.Task) error
}

type ResultStore interface {
	Create(ctx context.Context, r *entity.TestResult) error
}

type Stores struct {
	Users   UserStore
	Lessons LessonStore
	Tasks   TaskStore
	Results ResultStore
}

// Summary counts what a run actually inserted.
type Summary struct {
	Users   int
	Lessons int
	Tasks   int
	Results int
}

type demoUser struct {
	username string
	email    string
	password string
	role     entity.Role
}

var demoUsers = []demoUser{
	{"admin", "admin@school.com", "admin123", entity.RoleAdmin},
	{"teacher", "teacher@school.com", "teacher123", entity.RoleTeacher},
	{"student", "student@school.com", "student123", entity.RoleStudent},
	{"ivan_petrov", "ivan@school.com", "password123", entity.RoleStudent},
	{"maria_kovalenko", "maria@school.com", "password123", entity.RoleStudent},
}

var demoLessons = []entity.Lesson{
	{Subject: "Mathematics", Teacher: "O. Ivanova", Classroom: "201", DayOfWeek: entity.Monday, TimeStart: "08:00", TimeEnd: "09:35"},
	{Subject: "Ukrainian", Teacher: "M. Petrenko", Classroom: "105", DayOfWeek: entity.Monday, TimeStart: "09:50", TimeEnd: "11:25"},
	{Subject: "Physics", Teacher: "V. Sydorov", Classroom: "301", DayOfWeek: entity.Monday, TimeStart: "11:40", TimeEnd: "13:15"},
	{Subject: "English", Teacher: "J. Brown", Classroom: "108", DayOfWeek: entity.Monday, TimeStart: "14:00", TimeEnd: "15:35"},

	{Subject: "Chemistry", Teacher: "N. Kovalchuk", Classroom: "302", DayOfWeek: entity.Tuesday, TimeStart: "08:00", TimeEnd: "09:35"},
	{Subject: "History", Teacher: "T. Melnyk", Classroom: "203", DayOfWeek: entity.Tuesday, TimeStart: "09:50", TimeEnd: "11:25"},
	{Subject: "Geography", Teacher: "A. Shevchenko", Classroom: "204", DayOfWeek: entity.Tuesday, TimeStart: "11:40", TimeEnd: "13:15"},
	{Subject: "Physical education", Teacher: "S. Rudenko", Classroom: "Gym", DayOfWeek: entity.Tuesday, TimeStart: "14:00", TimeEnd: "15:35"},

	{Subject: "Mathematics", Teacher: "O. Ivanova", Classroom: "201", DayOfWeek: entity.Wednesday, TimeStart: "08:00", TimeEnd: "09:35"},
	{Subject: "Biology", Teacher: "L. Kovalenko", Classroom: "303", DayOfWeek: entity.Wednesday, TimeStart: "09:50", TimeEnd: "11:25"},
	{Subject: "Computer science", Teacher: "D. Tarasenko", Classroom: "401", DayOfWeek: entity.Wednesday, TimeStart: "11:40", TimeEnd: "13:15"},
	{Subject: "Art", Teacher: "K. Volkova", Classroom: "110", DayOfWeek: entity.Wednesday, TimeStart: "14:00", TimeEnd: "15:35"},

	{Subject: "Ukrainian literature", Teacher: "M. Petrenko", Classroom: "105", DayOfWeek: entity.Thursday, TimeStart: "08:00", TimeEnd: "09:35"},
	{Subject: "Physics", Teacher: "V. Sydorov", Classroom: "301", DayOfWeek: entity.Thursday, TimeStart: "09:50", TimeEnd: "11:25"},
	{Subject: "English", Teacher: "J. Brown", Classroom: "108", DayOfWeek: entity.Thursday, TimeStart: "11:40", TimeEnd: "13:15"},
	{Subject: "Chemistry", Teacher: "N. Kovalchuk", Classroom: "302", DayOfWeek: entity.Thursday, TimeStart: "14:00", TimeEnd: "15:35"},

	{Subject: "Mathematics", Teacher: "O. Ivanova", Classroom: "201", DayOfWeek: entity.Friday, TimeStart: "08:00", TimeEnd: "09:35"},
	{Subject: "History", Teacher: "T. Melnyk", Classroom: "203", DayOfWeek: entity.Friday, TimeStart: "09:50", TimeEnd: "11:25"},
	{Subject: "Technology", Teacher: "V. Hrytsenko", Classroom: "501", DayOfWeek: entity.Friday, TimeStart: "11:40", TimeEnd: "13:15"},
	{Subject: "Form period", Teacher: "M. Petrenko", Classroom: "105", DayOfWeek: entity.Friday, TimeStart: "14:00", TimeEnd: "15:35"},
}

type demoTask struct {
	title, description, subject, due string
}

var demoTasks = []demoTask{
	{"Solve equations 15-20", "Page 45, exercises 15-20", "Mathematics", "2025-08-10"},
	{"Summer essay", `Write an essay "My summer holidays" (200-300 words)`, "Ukrainian", "2025-08-12"},
	{"Lab work #3", "Study the oscillations of a simple pendulum", "Physics", "2025-08-15"},
	{"Country presentation", "Prepare 10 slides about an English-speaking country", "English", "2025-08-18"},
	{"Periodic table", "Learn the first 20 elements", "Chemistry", "2025-08-14"},
	{"WWII report", "Causes and consequences of the Second World War", "History", "2025-08-20"},
	{"Map of Ukraine", "Mark every regional centre on the outline map", "Geography", "2025-08-16"},
	{"Calculator program", "Write a calculator program in Python", "Computer science", "2025-08-25"},
}

type demoResult struct {
	username     string
	testName     string
	score, total int
}

var demoResults = []demoResult{
	{"ivan_petrov", entity.DefaultTestName, 8, 10},
	{"maria_kovalenko", entity.DefaultTestName, 7, 10},
	{"ivan_petrov", "Mathematics test", 9, 10},
	{"maria_kovalenko", "Mathematics test", 6, 10},
	{"ivan_petrov", "Ukrainian test", 10, 10},
}

// Seed is safe to run more than once. Existing accounts are kept, the timetable
// is only filled when it is empty, and tasks and results are only added for
// accounts created by this run.
func Seed(ctx context.Context, s Stores, log *slog.Logger) (Summary, error) {
	var sum Summary

	ids := make(map[string]int64, len(demoUsers))
	created := make(map[string]bool, len(demoUsers))
	for _, du := range demoUsers {
		id, isNew, err := ensureUser(ctx, s.Users, du)
		if err != nil {
			return sum, err
		}
		ids[du.username] = id
		created[du.username] = isNew
		if isNew {
			sum.Users++
			log.InfoContext(ctx, "demo user created", "username", du.username, "role", du.role)
		} else {
			log.InfoContext(ctx, "demo user already exists", "username", du.username)
		}
	}

	existing, err := s.Lessons.List(ctx)
	if err != nil {
		return sum, errors.Wrap(err, "listing lessons")
	}
	if len(existing) == 0 {
		for _, l := range demoLessons {
			l.CreatedBy = null.Int64From(ids["admin"])
			if err := s.Lessons.Create(ctx, &l); err != nil {
				return sum, errors.Wrapf(err, "creating lesson %s on %s", l.Subject, l.DayOfWeek)
			}
			sum.Lessons++
		}
	} else {
		log.InfoContext(ctx, "timetable not empty, skipping lessons", "lessons", len(existing))
	}

	if created["ivan_petrov"] {
		for _, dt := range demoTasks {
			due, err := time.Parse(entity.DateLayout, dt.due)
			if err != nil {
				return sum, errors.Wrapf(err, "parsing due date of %q", dt.title)
			}
			t := entity.Task{
				Title:       dt.title,
				Description: null.StringFrom(dt.description),
				Subject:     dt.subject,
				DueDate:     null.TimeFrom(due),
				UserID:      ids["ivan_petrov"],
			}
			if err := s.Tasks.Create(ctx, &t); err != nil {
				return sum, errors.Wrapf(err, "creating task %q", dt.title)
			}
			sum.Tasks++
		}
	}

	for _, dr := range demoResults {
		if !created[dr.username] {
			continue
		}
		r := entity.NewTestResult(ids[dr.username], dr.testName, dr.score, dr.total)
		if err := s.Results.Create(ctx, &r); err != nil {
			return sum, errors.Wrapf(err, "creating result for %s", dr.username)
		}
		sum.Results++
	}

	log.InfoContext(ctx, "demo data seeded",
		"users", sum.Users, "lessons", sum.Lessons, "tasks", sum.Tasks, "results", sum.Results)
	return sum, nil
}

func ensureUser(ctx context.Context, users UserStore, du demoUser) (int64, bool, error) {
	hash, err := password.Hash(du.password)
	if err != nil {
		return 0, false, errors.Wrapf(err, "hashing password of %s", du.username)
	}

	u := entity.User{Username: du.username, Email: du.email, PasswordHash: hash, Role: du.role}
	err = users.Create(ctx, &u)
	if err == nil {
		return u.ID, true, nil
	}
	if !errors.Is(err, apperror.ErrConflict) {
		return 0, false, errors.Wrapf(err, "creating user %s", du.username)
	}

	found, err := users.FindByUsername(ctx, du.username)
	if err != nil {
		return 0, false, errors.Wrapf(err, "looking up user %s", du.username)
	}
	return found.ID, false, nil
}
