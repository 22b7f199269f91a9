package models

import "time"

// Data Transfer Objects

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Name     string `json:"name" validate:"max=100"`
	Role     string `json:"role" validate:"required,oneof=teacher student"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User      *User     `json:"user"`
	UserID    int64     `json:"user_id"`
	Role      Role      `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=1000"`
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
}

// ListGroupsRequest is filled from the query string.
type ListGroupsRequest struct {
	Page   int    `json:"page" validate:"gte=0,lte=1000000"`
	Limit  int    `json:"limit" validate:"gte=1,lte=100"`
	Search string `json:"search" validate:"max=100"`
	UserID *int64 `json:"user_id" validate:"omitempty,gt=0"`
}

type GroupListResponse struct {
	Groups []GroupWithDetails `json:"groups"`
	Total  int                `json:"total"`
}

type MyGroupsResponse struct {
	Groups []MyGroup `json:"groups"`
}

type GroupDetailResponse struct {
	Group       *GroupWithDetails `json:"group"`
	Students    []StudentProgress `json:"students,omitempty"`
	Assignments []AssignmentView  `json:"assignments"`
}
