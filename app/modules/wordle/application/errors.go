package wordleservice

import "errors"

var (
	// ErrNotAnnouncement rejects messages that are not the Wordle app's
	// daily results post.
	ErrNotAnnouncement = errors.New("message is not a wordle results announcement")
	ErrNoChannel       = errors.New("no results channel configured")
)
