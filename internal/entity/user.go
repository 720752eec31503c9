package entity

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Roles lists every role a user may register with.
var Roles = []Role{RoleAdmin, RoleTeacher, RoleStudent}

// LessonEditors may create and delete timetable lessons.
var LessonEditors = []Role{RoleAdmin, RoleTeacher}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) In(roles ...Role) bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
