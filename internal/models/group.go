package models

import (
	"time"
)

type Group struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	TeacherID   int64     `json:"teacher_id" db:"teacher_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// GroupWithDetails carries the aggregate columns shared by list and detail queries.
// IsMember is only selected for the student listing.
type GroupWithDetails struct {
	Group
	TeacherName     string `json:"teacher_name" db:"teacher_name"`
	StudentCount    int    `json:"student_count" db:"student_count"`
	AssignmentCount int    `json:"assignment_count" db:"assignment_count"`
	IsMember        *bool  `json:"is_member,omitempty" db:"is_member"`
}

// MyGroup is a row of the "my groups" listing. Completion fields are set for students only.
type MyGroup struct {
	GroupWithDetails
	CompletedAssignments *int     `json:"completed_assignments,omitempty" db:"completed_assignments"`
	CompletionRate       *float64 `json:"completion_rate,omitempty" db:"-"`
}

// Percent returns part/whole*100, or 0 when whole is not positive.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
