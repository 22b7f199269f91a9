package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/models"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/repository"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/service/integration"
)

type GroupService interface {
	CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (*models.Group, error)
	ListGroups(ctx context.Context, req *models.ListGroupsRequest) (*models.GroupListResponse, error)
	ListMyGroups(ctx context.Context, userID int64) (*models.MyGroupsResponse, error)
	GetGroupDetail(ctx context.Context, groupID int64, userID *int64) (*models.GroupDetailResponse, error)
	JoinGroup(ctx context.Context, groupID, userID int64) error
}

type groupService struct {
	groupRepo      repository.GroupRepository
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
	publisher      integration.EventPublisher
	logger         zerolog.Logger
}

func NewGroupService(
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	assignmentRepo repository.AssignmentRepository,
	publisher integration.EventPublisher,
	logger zerolog.Logger,
) GroupService {
	return &groupService{
		groupRepo:      groupRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// resolveActor loads the user behind id. Unknown ids resolve to an anonymous actor.
func (s *groupService) resolveActor(ctx context.Context, id int64) (Actor, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return Actor{}, nil
	}
	return Actor{UserID: user.ID, Role: user.Role}, nil
}

func (s *groupService) CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (*models.Group, error) {
	actor, err := s.resolveActor(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, ActionCreateGroup, Resource{}); err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		TeacherID:   actor.UserID,
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.logger.Info().
		Int64("group_id", group.ID).
		Int64("teacher_id", group.TeacherID).
		Msg("Group created")

	publish(ctx, s.publisher, s.logger, models.EventGroupCreated, &models.GroupCreatedEvent{
		GroupID:   group.ID,
		TeacherID: group.TeacherID,
		Name:      group.Name,
		Timestamp: time.Now().Unix(),
	})

	return group, nil
}

// ListGroups picks the listing by caller: a teacher sees only their own groups,
// any other caller id gets every group annotated with is_member.
func (s *groupService) ListGroups(ctx context.Context, req *models.ListGroupsRequest) (*models.GroupListResponse, error) {
	filter := repository.GroupFilter{
		Search: strings.TrimSpace(req.Search),
		Limit:  req.Limit,
		Offset: req.Page * req.Limit,
	}

	if req.UserID != nil {
		actor, err := s.resolveActor(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		if actor.Role == models.RoleTeacher {
			filter.TeacherID = &actor.UserID
		} else {
			viewer := *req.UserID
			filter.ViewerID = &viewer
		}
	}

	groups, total, err := s.groupRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	return &models.GroupListResponse{
		Groups: groups,
		Total:  total,
	}, nil
}

func (s *groupService) ListMyGroups(ctx context.Context, userID int64) (*models.MyGroupsResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errUserNotFound
	}

	var groups []models.MyGroup
	switch user.Role {
	case models.RoleTeacher:
		groups, err = s.groupRepo.ListTaught(ctx, user.ID)
	default:
		groups, err = s.groupRepo.ListJoined(ctx, user.ID)
		for i := range groups {
			completed := 0
			if groups[i].CompletedAssignments != nil {
				completed = *groups[i].CompletedAssignments
			}
			rate := models.Percent(completed, groups[i].AssignmentCount)
			groups[i].CompletionRate = &rate
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list groups of user %d: %w", user.ID, err)
	}

	return &models.MyGroupsResponse{Groups: groups}, nil
}

func (s *groupService) GetGroupDetail(ctx context.Context, groupID int64, userID *int64) (*models.GroupDetailResponse, error) {
	group, err := s.groupRepo.GetWithDetails(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, errGroupNotFound
	}

	var actor Actor
	if userID != nil {
		if actor, err = s.resolveActor(ctx, *userID); err != nil {
			return nil, err
		}
	}

	res := Resource{OwnerID: group.TeacherID}
	if actor.Role == models.RoleStudent {
		if res.IsMember, err = s.groupRepo.IsMember(ctx, groupID, actor.UserID); err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
	}
	if err := Authorize(actor, ActionViewGroup, res); err != nil {
		return nil, err
	}

	resp := &models.GroupDetailResponse{Group: group}

	switch {
	case actor.IsAnonymous():
		resp.Assignments, err = s.assignmentRepo.ListByGroup(ctx, groupID)
	case actor.Role == models.RoleTeacher:
		if resp.Assignments, err = s.assignmentRepo.ListWithProgress(ctx, groupID); err != nil {
			break
		}
		for i := range resp.Assignments {
			a := &resp.Assignments[i]
			rate := models.Percent(intValue(a.CompletedStudents), intValue(a.TotalStudents))
			a.CompletionRate = &rate
		}

		if resp.Students, err = s.groupRepo.ListRoster(ctx, groupID); err != nil {
			break
		}
		for i := range resp.Students {
			st := &resp.Students[i]
			st.CompletionRate = models.Percent(st.CompletedAssignments, st.TotalAssignments)
		}
	default:
		resp.Assignments, err = s.assignmentRepo.ListForStudent(ctx, groupID, actor.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load group %d details: %w", groupID, err)
	}

	return resp, nil
}

// JoinGroup adds the student to the group. The unique membership constraint decides a concurrent double join.
func (s *groupService) JoinGroup(ctx context.Context, groupID, userID int64) error {
	actor, err := s.resolveActor(ctx, userID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionJoinGroup, Resource{}); err != nil {
		return err
	}

	exists, err := s.groupRepo.Exists(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to check group: %w", err)
	}
	if !exists {
		return errGroupNotFound
	}

	added, err := s.groupRepo.AddStudent(ctx, groupID, actor.UserID)
	if err != nil {
		return fmt.Errorf("failed to join group: %w", err)
	}
	if !added {
		return errAlreadyMember
	}

	s.logger.Info().
		Int64("group_id", groupID).
		Int64("student_id", actor.UserID).
		Msg("Student joined group")

	publish(ctx, s.publisher, s.logger, models.EventGroupJoined, &models.GroupJoinedEvent{
		GroupID:   groupID,
		StudentID: actor.UserID,
		Timestamp: time.Now().Unix(),
	})

	return nil
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
