package service

import (
	"context"
	"errors"
	"time"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/models"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/repository"
)

type fakeUserRepo struct {
	users     map[int64]*models.User
	createErr error
	created   []*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	user.ID = int64(len(r.users) + 1)
	r.users[user.ID] = user
	r.created = append(r.created, user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeGroupRepo struct {
	groups  map[int64]*models.GroupWithDetails
	members map[int64]map[int64]bool
	created []*models.Group

	lastFilter repository.GroupFilter
	taught     []models.MyGroup
	joined     []models.MyGroup
	roster     []models.StudentProgress
}

func newFakeGroupRepo(groups ...*models.GroupWithDetails) *fakeGroupRepo {
	r := &fakeGroupRepo{
		groups:  map[int64]*models.GroupWithDetails{},
		members: map[int64]map[int64]bool{},
	}
	for _, g := range groups {
		r.groups[g.ID] = g
	}
	return r
}

func (r *fakeGroupRepo) addMember(groupID, studentID int64) {
	if r.members[groupID] == nil {
		r.members[groupID] = map[int64]bool{}
	}
	r.members[groupID][studentID] = true
}

func (r *fakeGroupRepo) Create(_ context.Context, group *models.Group) error {
	group.ID = int64(len(r.groups) + 1)
	group.CreatedAt = time.Now()
	r.groups[group.ID] = &models.GroupWithDetails{Group: *group}
	r.created = append(r.created, group)
	return nil
}

func (r *fakeGroupRepo) GetWithDetails(_ context.Context, id int64) (*models.GroupWithDetails, error) {
	return r.groups[id], nil
}

func (r *fakeGroupRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.groups[id]
	return ok, nil
}

func (r *fakeGroupRepo) List(_ context.Context, filter repository.GroupFilter) ([]models.GroupWithDetails, int, error) {
	r.lastFilter = filter
	return []models.GroupWithDetails{}, 0, nil
}

func (r *fakeGroupRepo) ListTaught(context.Context, int64) ([]models.MyGroup, error) {
	return r.taught, nil
}

func (r *fakeGroupRepo) ListJoined(context.Context, int64) ([]models.MyGroup, error) {
	return r.joined, nil
}

func (r *fakeGroupRepo) IsMember(_ context.Context, groupID, studentID int64) (bool, error) {
	return r.members[groupID][studentID], nil
}

func (r *fakeGroupRepo) AddStudent(_ context.Context, groupID, studentID int64) (bool, error) {
	if r.members[groupID][studentID] {
		return false, nil
	}
	r.addMember(groupID, studentID)
	return true, nil
}

func (r *fakeGroupRepo) ListRoster(context.Context, int64) ([]models.StudentProgress, error) {
	return r.roster, nil
}

type fakeAssignmentRepo struct {
	withProgress []models.AssignmentView
	forStudent   []models.AssignmentView
	plain        []models.AssignmentView
}

func (r *fakeAssignmentRepo) ListByGroup(context.Context, int64) ([]models.AssignmentView, error) {
	return r.plain, nil
}

func (r *fakeAssignmentRepo) ListWithProgress(context.Context, int64) ([]models.AssignmentView, error) {
	return r.withProgress, nil
}

func (r *fakeAssignmentRepo) ListForStudent(context.Context, int64, int64) ([]models.AssignmentView, error) {
	return r.forStudent, nil
}

type fakePublisher struct {
	keys []string
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	p.keys = append(p.keys, routingKey)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

type fakeTokens struct{}

func (fakeTokens) Generate(user *models.User) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, errors.New("nil user")
	}
	return "token", time.Unix(1700000000, 0), nil
}

func intPtr(v int) *int { return &v }
