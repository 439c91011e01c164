package config

import (
	"os"
	"strconv"
)

const (
	laneCountEnv       = "DANMAKU_LANE_COUNT"
	moveDurationEnv    = "DANMAKU_MOVE_DURATION"
	lookaheadWindowEnv = "DANMAKU_LOOKAHEAD_WINDOW"
	seekLookBackEnv    = "DANMAKU_SEEK_LOOKBACK"
	charWidthEnv       = "DANMAKU_CHAR_WIDTH"
	widthMarginEnv     = "DANMAKU_WIDTH_MARGIN"
	containerWidthEnv  = "DANMAKU_CONTAINER_WIDTH"
	laneStrategyEnv    = "DANMAKU_LANE_STRATEGY"

	DefaultLaneCount       = 5
	DefaultMoveDuration    = 15.0
	DefaultLookaheadWindow = 2.0
	DefaultSeekLookBack    = 1.0
	DefaultCharWidth       = 28.0
	DefaultWidthMargin     = 60.0
	DefaultContainerWidth  = 1280.0

	defaultLaneStrategy = "linear"
)

type LaneStrategy string

const (
	LaneStrategyLinear LaneStrategy = "linear"
	LaneStrategyHeap   LaneStrategy = "heap"
)

type SchedulerConfig struct {
	LaneCount       int
	MoveDuration    float64 // Seconds a caption takes to cross the container, regardless of width
	LookaheadWindow float64 // Seconds ahead of playback that captions are admitted
	SeekLookBack    float64 // Seconds behind a seek target that captions are re-admitted
	CharWidth       float64 // Estimated pixels per character
	WidthMargin     float64 // Fixed pixels added to every width estimate
	ContainerWidth  float64 // Default container width when a session does not supply one
	Strategy        LaneStrategy
}

// DefaultSchedulerConfig returns the default configuration: five lanes,
// a 15 second traversal and a 2 second lookahead.
func DefaultSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		LaneCount:       DefaultLaneCount,
		MoveDuration:    DefaultMoveDuration,
		LookaheadWindow: DefaultLookaheadWindow,
		SeekLookBack:    DefaultSeekLookBack,
		CharWidth:       DefaultCharWidth,
		WidthMargin:     DefaultWidthMargin,
		ContainerWidth:  DefaultContainerWidth,
		Strategy:        LaneStrategy(defaultLaneStrategy),
	}
}

func LoadSchedulerConfig() *SchedulerConfig {
	cfg := DefaultSchedulerConfig()

	if v := os.Getenv(laneCountEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			cfg.LaneCount = parsed
		}
	}

	cfg.MoveDuration = floatFromEnv(moveDurationEnv, cfg.MoveDuration, func(f float64) bool { return f > 0 })
	cfg.LookaheadWindow = floatFromEnv(lookaheadWindowEnv, cfg.LookaheadWindow, func(f float64) bool { return f >= 0 })
	cfg.SeekLookBack = floatFromEnv(seekLookBackEnv, cfg.SeekLookBack, func(f float64) bool { return f >= 0 })
	cfg.CharWidth = floatFromEnv(charWidthEnv, cfg.CharWidth, func(f float64) bool { return f >= 0 })
	cfg.WidthMargin = floatFromEnv(widthMarginEnv, cfg.WidthMargin, func(f float64) bool { return f >= 0 })
	cfg.ContainerWidth = floatFromEnv(containerWidthEnv, cfg.ContainerWidth, func(f float64) bool { return f > 0 })

	strategy := LaneStrategy(os.Getenv(laneStrategyEnv))
	if strategy == LaneStrategyLinear || strategy == LaneStrategyHeap {
		cfg.Strategy = strategy
	}

	return cfg
}

func floatFromEnv(key string, fallback float64, valid func(float64) bool) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || !valid(parsed) {
		return fallback
	}
	return parsed
}
