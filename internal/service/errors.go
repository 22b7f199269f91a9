package service

import "errors"

// Error kinds. Handlers switch on these with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrConflict           = errors.New("conflict")
)

// Error is a client-facing failure: Error() is safe to return to the caller.
type Error struct {
	kind error
	msg  string
}

func NewError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

var (
	errUserExists         = NewError(ErrDuplicateKey, "Email or username already exists")
	errInvalidCredentials = NewError(ErrInvalidCredentials, "Invalid credentials")
	errUserNotFound       = NewError(ErrNotFound, "User not found")
	errGroupNotFound      = NewError(ErrNotFound, "Group not found")
	errAlreadyMember      = NewError(ErrConflict, "Already a member of this group")

	errTeachersOnly = NewError(ErrForbidden, "Only teachers can create groups")
	errStudentsOnly = NewError(ErrForbidden, "Only students can join groups")
	errAccessDenied = NewError(ErrForbidden, "Access denied")
)
