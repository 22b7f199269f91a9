package models

const (
	EventUserRegistered = "user.registered"
	EventGroupCreated   = "group.created"
	EventGroupJoined    = "group.joined"
)

type UserRegisteredEvent struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	Timestamp int64  `json:"timestamp"`
}

type GroupCreatedEvent struct {
	GroupID   int64  `json:"group_id"`
	TeacherID int64  `json:"teacher_id"`
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
}

type GroupJoinedEvent struct {
	GroupID   int64 `json:"group_id"`
	StudentID int64 `json:"student_id"`
	Timestamp int64 `json:"timestamp"`
}
