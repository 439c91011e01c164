package config

import "errors"

var (
	ErrRedisAddrMissing       = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB         = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidMoveDuration    = errors.New("DANMAKU_MOVE_DURATION must be positive")
	ErrInvalidContainerWidth  = errors.New("DANMAKU_CONTAINER_WIDTH must be positive")
	ErrInvalidCharWidth       = errors.New("DANMAKU_CHAR_WIDTH must not be negative")
	ErrInvalidLookaheadWindow = errors.New("DANMAKU_LOOKAHEAD_WINDOW must not be negative")
)
