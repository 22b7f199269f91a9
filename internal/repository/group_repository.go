package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/models"
)

// GroupFilter narrows a group listing. ViewerID adds an is_member column for that student.
type GroupFilter struct {
	TeacherID *int64
	ViewerID  *int64
	Search    string
	Limit     int
	Offset    int
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetWithDetails(ctx context.Context, id int64) (*models.GroupWithDetails, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter GroupFilter) ([]models.GroupWithDetails, int, error)
	ListTaught(ctx context.Context, teacherID int64) ([]models.MyGroup, error)
	ListJoined(ctx context.Context, studentID int64) ([]models.MyGroup, error)
	IsMember(ctx context.Context, groupID, studentID int64) (bool, error)
	AddStudent(ctx context.Context, groupID, studentID int64) (bool, error)
	ListRoster(ctx context.Context, groupID int64) ([]models.StudentProgress, error)
}

type groupRepository struct {
	*PostgresRepository
}

func NewGroupRepository(db *sqlx.DB, logger zerolog.Logger) GroupRepository {
	return &groupRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO tutoring_groups (name, description, teacher_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		group.Name,
		group.Description,
		group.TeacherID,
	).Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}

	return nil
}

func (r *groupRepository) GetWithDetails(ctx context.Context, id int64) (*models.GroupWithDetails, error) {
	query := `
		SELECT
			g.id, g.name, g.description, g.teacher_id, g.created_at, g.updated_at,
			u.name AS teacher_name,
			(SELECT COUNT(*) FROM group_students gs WHERE gs.group_id = g.id) AS student_count,
			(SELECT COUNT(*) FROM assignments a WHERE a.group_id = g.id) AS assignment_count
		FROM tutoring_groups g
		JOIN users u ON u.id = g.teacher_id
		WHERE g.id = $1
	`

	group := &models.GroupWithDetails{}
	err := r.db.GetContext(ctx, group, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return group, nil
}

func (r *groupRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tutoring_groups WHERE id = $1)`
	var exists bool
	err := r.db.QueryRowxContext(ctx, query, id).Scan(&exists)
	return exists, err
}

// List returns one page of groups and the total number of groups matching the same filter.
func (r *groupRepository) List(ctx context.Context, filter GroupFilter) ([]models.GroupWithDetails, int, error) {
	rowsQuery := psql.
		Select(
			"g.id", "g.name", "g.description", "g.teacher_id", "g.created_at", "g.updated_at",
			"u.name AS teacher_name",
			"COUNT(DISTINCT gs.student_id) AS student_count",
			"COUNT(DISTINCT a.id) AS assignment_count",
		).
		From("tutoring_groups g").
		Join("users u ON u.id = g.teacher_id").
		LeftJoin("group_students gs ON gs.group_id = g.id").
		LeftJoin("assignments a ON a.group_id = g.id")

	if filter.ViewerID != nil {
		rowsQuery = rowsQuery.Column(sq.Expr(
			"EXISTS (SELECT 1 FROM group_students m WHERE m.group_id = g.id AND m.student_id = ?) AS is_member",
			*filter.ViewerID,
		))
	}

	rowsQuery = applyGroupFilter(rowsQuery, filter).
		GroupBy("g.id", "u.name").
		OrderBy("g.created_at DESC", "g.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query, args, err := rowsQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build group list query: %w", err)
	}

	groups := []models.GroupWithDetails{}
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("Group list query failed")
		return nil, 0, err
	}

	countQuery, countArgs, err := applyGroupFilter(psql.Select("COUNT(*)").From("tutoring_groups g"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build group count query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		r.logger.Error().Err(err).Str("query", countQuery).Msg("Group count query failed")
		return nil, 0, err
	}

	return groups, total, nil
}

func applyGroupFilter(b sq.SelectBuilder, filter GroupFilter) sq.SelectBuilder {
	if filter.TeacherID != nil {
		b = b.Where(sq.Eq{"g.teacher_id": *filter.TeacherID})
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		b = b.Where(sq.Or{
			sq.ILike{"g.name": pattern},
			sq.ILike{"g.description": pattern},
		})
	}
	return b
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *groupRepository) ListTaught(ctx context.Context, teacherID int64) ([]models.MyGroup, error) {
	query := `
		SELECT
			g.id, g.name, g.description, g.teacher_id, g.created_at, g.updated_at,
			u.name AS teacher_name,
			COUNT(DISTINCT gs.student_id) AS student_count,
			COUNT(DISTINCT a.id) AS assignment_count
		FROM tutoring_groups g
		JOIN users u ON u.id = g.teacher_id
		LEFT JOIN group_students gs ON gs.group_id = g.id
		LEFT JOIN assignments a ON a.group_id = g.id
		WHERE g.teacher_id = $1
		GROUP BY g.id, u.name
		ORDER BY g.created_at DESC
	`

	groups := []models.MyGroup{}
	if err := r.db.SelectContext(ctx, &groups, query, teacherID); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) ListJoined(ctx context.Context, studentID int64) ([]models.MyGroup, error) {
	query := `
		SELECT
			g.id, g.name, g.description, g.teacher_id, g.created_at, g.updated_at,
			u.name AS teacher_name,
			(SELECT COUNT(*) FROM group_students gs WHERE gs.group_id = g.id) AS student_count,
			(SELECT COUNT(*) FROM assignments a WHERE a.group_id = g.id) AS assignment_count,
			(
				SELECT COUNT(*)
				FROM assignment_completions ac
				JOIN assignments a ON a.id = ac.assignment_id
				WHERE a.group_id = g.id AND ac.student_id = $1
			) AS completed_assignments
		FROM group_students m
		JOIN tutoring_groups g ON g.id = m.group_id
		JOIN users u ON u.id = g.teacher_id
		WHERE m.student_id = $1
		ORDER BY m.joined_at DESC
	`

	groups := []models.MyGroup{}
	if err := r.db.SelectContext(ctx, &groups, query, studentID); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, studentID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM group_students WHERE group_id = $1 AND student_id = $2)`
	var member bool
	err := r.db.QueryRowxContext(ctx, query, groupID, studentID).Scan(&member)
	return member, err
}

// AddStudent inserts the membership and reports false when it already existed.
func (r *groupRepository) AddStudent(ctx context.Context, groupID, studentID int64) (bool, error) {
	query := `
		INSERT INTO group_students (group_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, student_id) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query, groupID, studentID)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("group_id", groupID).
			Int64("student_id", studentID).
			Msg("Membership insert failed")
		return false, fmt.Errorf("insert membership: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// ListRoster returns the members of a group with their progress on this group's assignments.
func (r *groupRepository) ListRoster(ctx context.Context, groupID int64) ([]models.StudentProgress, error) {
	query := `
		SELECT
			u.id, u.email, u.username, u.name,
			COUNT(ac.id) AS completed_assignments,
			(SELECT COUNT(*) FROM assignments WHERE group_id = $1) AS total_assignments
		FROM group_students gs
		JOIN users u ON u.id = gs.student_id
		LEFT JOIN assignment_completions ac
			ON ac.student_id = u.id
			AND ac.assignment_id IN (SELECT id FROM assignments WHERE group_id = $1)
		WHERE gs.group_id = $1
		GROUP BY u.id, u.email, u.username, u.name, gs.joined_at
		ORDER BY gs.joined_at ASC
	`

	students := []models.StudentProgress{}
	if err := r.db.SelectContext(ctx, &students, query, groupID); err != nil {
		return nil, err
	}
	return students, nil
}
