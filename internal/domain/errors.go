package domain

import "errors"

var (
	ErrVideoNotFound         = errors.New("video not found")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionLimitReached   = errors.New("session limit reached")
	ErrInvalidContainerWidth = errors.New("container width must be positive")
	ErrInvalidPlaybackTime   = errors.New("playback time must be a finite non-negative number")
	ErrInvalidTimeWindow     = errors.New("time window must be a finite non-negative number")
	ErrInvalidCaption        = errors.New("invalid caption")
	ErrDuplicateCaptionID    = errors.New("duplicate caption id")
)
