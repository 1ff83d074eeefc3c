package userservice

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidUserID = errors.New("user id is required")
	ErrNoGuild       = errors.New("no guild configured for member sync")
)
