package services

import "errors"

// Sentinel errors surfaced by the service layer. Controllers and the
// socket handlers map these onto transport-level failures.
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrItemAlreadyExists = errors.New("item already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrChatNotFound      = errors.New("chat not found")
	ErrSelfSwipe         = errors.New("cannot swipe on yourself")
	ErrSameParticipant   = errors.New("chat requires two distinct participants")
	ErrInvalidDirection  = errors.New("invalid swipe direction")
	ErrInvalidAction     = errors.New("invalid action, use 'accept' or 'reject'")
	ErrEmptyContent      = errors.New("message content cannot be empty")
	ErrNotParticipant    = errors.New("sender is not a chat participant")
	ErrPreferenceNotSet  = errors.New("gender preference is not set")
)
