package models

import (
	"time"
)

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func (r Role) String() string {
	return string(r)
}

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// User is a row of the users table. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	Name      string    `json:"name" db:"name"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StudentProgress is a roster line of the teacher's group view.
type StudentProgress struct {
	ID                   int64   `json:"id" db:"id"`
	Email                string  `json:"email" db:"email"`
	Username             string  `json:"username" db:"username"`
	Name                 string  `json:"name" db:"name"`
	CompletedAssignments int     `json:"completed_assignments" db:"completed_assignments"`
	TotalAssignments     int     `json:"total_assignments" db:"total_assignments"`
	CompletionRate       float64 `json:"completion_rate" db:"-"`
}
