package lane

import (
	"log/slog"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/config"
)

// NewScheduler creates a Scheduler based on the configuration.
// If cfg is nil, it defaults to the five-lane linear scheduler.
func NewScheduler(cfg *config.SchedulerConfig, containerWidth float64) Scheduler {
	if cfg == nil {
		slog.Debug("scheduler config is nil, using default linear scheduler")
		cfg = config.DefaultSchedulerConfig()
	}

	switch cfg.Strategy {
	case config.LaneStrategyHeap:
		slog.Debug("using heap lane scheduler", slog.Int("lanes", cfg.LaneCount))
		return NewHeapScheduler(cfg.LaneCount, containerWidth, cfg.MoveDuration)
	case config.LaneStrategyLinear:
		fallthrough
	default:
		slog.Debug("using linear lane scheduler", slog.Int("lanes", cfg.LaneCount))
		return NewLinearScheduler(cfg.LaneCount, containerWidth, cfg.MoveDuration)
	}
}
