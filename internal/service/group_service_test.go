package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/models"
)

var (
	teacherUser = &models.User{ID: 1, Name: "Kim", Role: models.RoleTeacher}
	otherUser   = &models.User{ID: 4, Name: "Park", Role: models.RoleTeacher}
	studentUser = &models.User{ID: 2, Name: "Lee", Role: models.RoleStudent}
)

type groupFixture struct {
	users       *fakeUserRepo
	groups      *fakeGroupRepo
	assignments *fakeAssignmentRepo
	publisher   *fakePublisher
	svc         GroupService
}

func newGroupFixture() *groupFixture {
	f := &groupFixture{
		users: newFakeUserRepo(teacherUser, otherUser, studentUser),
		groups: newFakeGroupRepo(&models.GroupWithDetails{
			Group:           models.Group{ID: 10, Name: "Algebra", TeacherID: teacherUser.ID},
			TeacherName:     "Kim",
			StudentCount:    1,
			AssignmentCount: 4,
		}),
		assignments: &fakeAssignmentRepo{},
		publisher:   &fakePublisher{},
	}
	f.svc = NewGroupService(f.groups, f.users, f.assignments, f.publisher, zerolog.Nop())
	return f
}

func TestCreateGroup(t *testing.T) {
	f := newGroupFixture()

	group, err := f.svc.CreateGroup(context.Background(), &models.CreateGroupRequest{
		Name:        " Geometry ",
		Description: "shapes",
		UserID:      teacherUser.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Geometry", group.Name)
	assert.Equal(t, teacherUser.ID, group.TeacherID)
	assert.Equal(t, []string{models.EventGroupCreated}, f.publisher.keys)
}

func TestCreateGroupForbiddenDoesNotInsert(t *testing.T) {
	for _, userID := range []int64{studentUser.ID, 404} {
		f := newGroupFixture()

		_, err := f.svc.CreateGroup(context.Background(), &models.CreateGroupRequest{Name: "X", UserID: userID})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.EqualError(t, err, "Only teachers can create groups")
		assert.Empty(t, f.groups.created)
		assert.Empty(t, f.publisher.keys)
	}
}

func TestListGroupsBranches(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		f := newGroupFixture()
		_, err := f.svc.ListGroups(ctx, &models.ListGroupsRequest{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Nil(t, f.groups.lastFilter.TeacherID)
		assert.Nil(t, f.groups.lastFilter.ViewerID)
		assert.Equal(t, 10, f.groups.lastFilter.Offset)
		assert.Equal(t, 10, f.groups.lastFilter.Limit)
	})

	t.Run("teacher", func(t *testing.T) {
		f := newGroupFixture()
		id := teacherUser.ID
		_, err := f.svc.ListGroups(ctx, &models.ListGroupsRequest{Limit: 5, UserID: &id})
		require.NoError(t, err)
		require.NotNil(t, f.groups.lastFilter.TeacherID)
		assert.Equal(t, teacherUser.ID, *f.groups.lastFilter.TeacherID)
		assert.Nil(t, f.groups.lastFilter.ViewerID)
		assert.Zero(t, f.groups.lastFilter.Offset)
	})

	t.Run("student", func(t *testing.T) {
		f := newGroupFixture()
		id := studentUser.ID
		_, err := f.svc.ListGroups(ctx, &models.ListGroupsRequest{Limit: 10, Search: " alg ", UserID: &id})
		require.NoError(t, err)
		assert.Nil(t, f.groups.lastFilter.TeacherID)
		require.NotNil(t, f.groups.lastFilter.ViewerID)
		assert.Equal(t, studentUser.ID, *f.groups.lastFilter.ViewerID)
		assert.Equal(t, "alg", f.groups.lastFilter.Search)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newGroupFixture()
		id := int64(404)
		_, err := f.svc.ListGroups(ctx, &models.ListGroupsRequest{Limit: 10, UserID: &id})
		require.NoError(t, err)
		assert.Nil(t, f.groups.lastFilter.TeacherID)
		require.NotNil(t, f.groups.lastFilter.ViewerID)
		assert.Equal(t, int64(404), *f.groups.lastFilter.ViewerID)
	})
}

func TestListMyGroups(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		f := newGroupFixture()
		_, err := f.svc.ListMyGroups(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "User not found")
	})

	t.Run("teacher", func(t *testing.T) {
		f := newGroupFixture()
		f.groups.taught = []models.MyGroup{{GroupWithDetails: *f.groups.groups[10]}}
		resp, err := f.svc.ListMyGroups(ctx, teacherUser.ID)
		require.NoError(t, err)
		require.Len(t, resp.Groups, 1)
		assert.Nil(t, resp.Groups[0].CompletionRate)
	})

	t.Run("student rates guard zero assignments", func(t *testing.T) {
		f := newGroupFixture()
		f.groups.joined = []models.MyGroup{
			{
				GroupWithDetails:     models.GroupWithDetails{Group: models.Group{ID: 10}, AssignmentCount: 4},
				CompletedAssignments: intPtr(3),
			},
			{
				GroupWithDetails:     models.GroupWithDetails{Group: models.Group{ID: 11}, AssignmentCount: 0},
				CompletedAssignments: intPtr(0),
			},
		}
		resp, err := f.svc.ListMyGroups(ctx, studentUser.ID)
		require.NoError(t, err)
		require.Len(t, resp.Groups, 2)
		require.NotNil(t, resp.Groups[0].CompletionRate)
		assert.Equal(t, 75.0, *resp.Groups[0].CompletionRate)
		require.NotNil(t, resp.Groups[1].CompletionRate)
		assert.Equal(t, 0.0, *resp.Groups[1].CompletionRate)
	})
}

func TestGetGroupDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		f := newGroupFixture()
		_, err := f.svc.GetGroupDetail(ctx, 99, nil)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "Group not found")
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newGroupFixture()
		f.assignments.plain = []models.AssignmentView{{Assignment: models.Assignment{ID: 1}}}
		resp, err := f.svc.GetGroupDetail(ctx, 10, nil)
		require.NoError(t, err)
		assert.Len(t, resp.Assignments, 1)
		assert.Nil(t, resp.Students)
	})

	t.Run("unknown user sees the anonymous view", func(t *testing.T) {
		f := newGroupFixture()
		f.assignments.plain = []models.AssignmentView{{Assignment: models.Assignment{ID: 1}}}
		id := int64(404)
		resp, err := f.svc.GetGroupDetail(ctx, 10, &id)
		require.NoError(t, err)
		assert.Len(t, resp.Assignments, 1)
	})

	t.Run("owner sees progress", func(t *testing.T) {
		f := newGroupFixture()
		f.assignments.withProgress = []models.AssignmentView{
			{Assignment: models.Assignment{ID: 1}, CompletedStudents: intPtr(3), TotalStudents: intPtr(4)},
			{Assignment: models.Assignment{ID: 2}, CompletedStudents: intPtr(1), TotalStudents: intPtr(2)},
			{Assignment: models.Assignment{ID: 3}, CompletedStudents: intPtr(0), TotalStudents: intPtr(0)},
		}
		f.groups.roster = []models.StudentProgress{
			{ID: studentUser.ID, CompletedAssignments: 3, TotalAssignments: 4},
		}
		id := teacherUser.ID
		resp, err := f.svc.GetGroupDetail(ctx, 10, &id)
		require.NoError(t, err)

		require.Len(t, resp.Students, 1)
		assert.Equal(t, 75.0, resp.Students[0].CompletionRate)
		require.Len(t, resp.Assignments, 3)
		assert.Equal(t, 3, *resp.Assignments[0].CompletedStudents)
		assert.Equal(t, 4, *resp.Assignments[0].TotalStudents)
		assert.Equal(t, 75.0, *resp.Assignments[0].CompletionRate)
		assert.Equal(t, 50.0, *resp.Assignments[1].CompletionRate)
		assert.Equal(t, 0.0, *resp.Assignments[2].CompletionRate)
	})

	t.Run("other teacher denied", func(t *testing.T) {
		f := newGroupFixture()
		id := otherUser.ID
		_, err := f.svc.GetGroupDetail(ctx, 10, &id)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.EqualError(t, err, "Access denied")
	})

	t.Run("non-member student denied", func(t *testing.T) {
		f := newGroupFixture()
		id := studentUser.ID
		_, err := f.svc.GetGroupDetail(ctx, 10, &id)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("member sees completion flags", func(t *testing.T) {
		f := newGroupFixture()
		f.groups.addMember(10, studentUser.ID)
		done := true
		f.assignments.forStudent = []models.AssignmentView{{Assignment: models.Assignment{ID: 1}, IsCompleted: &done}}
		id := studentUser.ID
		resp, err := f.svc.GetGroupDetail(ctx, 10, &id)
		require.NoError(t, err)
		require.Len(t, resp.Assignments, 1)
		assert.True(t, *resp.Assignments[0].IsCompleted)
		assert.Nil(t, resp.Students)
	})
}

func TestJoinGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("joins once", func(t *testing.T) {
		f := newGroupFixture()
		require.NoError(t, f.svc.JoinGroup(ctx, 10, studentUser.ID))
		assert.True(t, f.groups.members[10][studentUser.ID])
		assert.Equal(t, []string{models.EventGroupJoined}, f.publisher.keys)

		err := f.svc.JoinGroup(ctx, 10, studentUser.ID)
		assert.ErrorIs(t, err, ErrConflict)
		assert.EqualError(t, err, "Already a member of this group")
		assert.Len(t, f.publisher.keys, 1)
	})

	t.Run("teacher cannot join", func(t *testing.T) {
		f := newGroupFixture()
		err := f.svc.JoinGroup(ctx, 10, teacherUser.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.EqualError(t, err, "Only students can join groups")
	})

	t.Run("missing group", func(t *testing.T) {
		f := newGroupFixture()
		err := f.svc.JoinGroup(ctx, 99, studentUser.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
