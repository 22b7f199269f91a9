package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/models"
)

type AssignmentRepository interface {
	ListByGroup(ctx context.Context, groupID int64) ([]models.AssignmentView, error)
	ListWithProgress(ctx context.Context, groupID int64) ([]models.AssignmentView, error)
	ListForStudent(ctx context.Context, groupID, studentID int64) ([]models.AssignmentView, error)
}

type assignmentRepository struct {
	*PostgresRepository
}

func NewAssignmentRepository(db *sqlx.DB, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *assignmentRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.AssignmentView, error) {
	query := `
		SELECT id, group_id, title, description, due_date, created_at
		FROM assignments
		WHERE group_id = $1
		ORDER BY created_at DESC
	`

	assignments := []models.AssignmentView{}
	if err := r.db.SelectContext(ctx, &assignments, query, groupID); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListWithProgress adds per-assignment completion counters for the group owner.
func (r *assignmentRepository) ListWithProgress(ctx context.Context, groupID int64) ([]models.AssignmentView, error) {
	query := `
		SELECT
			a.id, a.group_id, a.title, a.description, a.due_date, a.created_at,
			COUNT(DISTINCT ac.student_id) AS completed_students,
			(SELECT COUNT(*) FROM group_students gs WHERE gs.group_id = a.group_id) AS total_students
		FROM assignments a
		LEFT JOIN assignment_completions ac ON ac.assignment_id = a.id
		WHERE a.group_id = $1
		GROUP BY a.id
		ORDER BY a.created_at DESC
	`

	assignments := []models.AssignmentView{}
	if err := r.db.SelectContext(ctx, &assignments, query, groupID); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) ListForStudent(ctx context.Context, groupID, studentID int64) ([]models.AssignmentView, error) {
	query := `
		SELECT
			a.id, a.group_id, a.title, a.description, a.due_date, a.created_at,
			EXISTS (
				SELECT 1 FROM assignment_completions ac
				WHERE ac.assignment_id = a.id AND ac.student_id = $2
			) AS is_completed
		FROM assignments a
		WHERE a.group_id = $1
		ORDER BY a.created_at DESC
	`

	assignments := []models.AssignmentView{}
	if err := r.db.SelectContext(ctx, &assignments, query, groupID, studentID); err != nil {
		return nil, err
	}
	return assignments, nil
}
