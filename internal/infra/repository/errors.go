package repository

import "errors"

var (
	ErrRedisConnection    = errors.New("redis connection error")
	ErrInvalidCaptionData = errors.New("invalid caption data")
)
