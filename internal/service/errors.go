package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP statuses and error codes; everything else is treated as an internal
// store failure.
var (
	ErrNotFound           = errors.New("record not found")
	ErrUnauthorized       = errors.New("record is owned by another user")
	ErrValidation         = errors.New("validation failed")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadySynced      = errors.New("todo is already synced to an event")
	ErrNotSynced          = errors.New("todo is not synced to an event")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfRequest        = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends     = errors.New("users are already friends")
	ErrDuplicateRequest   = errors.New("a friend request between these users is already pending")
	ErrNotFriends         = errors.New("users are not friends")
)
