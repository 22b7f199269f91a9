package models

import (
	"time"
)

type Assignment struct {
	ID          int64      `json:"id" db:"id"`
	GroupID     int64      `json:"group_id" db:"group_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// AssignmentView is an assignment annotated for the caller's role.
// The teacher view fills the counters and rate, the student view fills IsCompleted.
type AssignmentView struct {
	Assignment
	CompletedStudents *int     `json:"completed_students,omitempty" db:"completed_students"`
	TotalStudents     *int     `json:"total_students,omitempty" db:"total_students"`
	CompletionRate    *float64 `json:"completion_rate,omitempty" db:"-"`
	IsCompleted       *bool    `json:"is_completed,omitempty" db:"is_completed"`
}
