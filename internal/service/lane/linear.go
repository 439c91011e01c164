package lane

import (
	"math"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/config"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

var _ Scheduler = (*LinearScheduler)(nil)

// LinearScheduler scans every lane on each assignment. At the lane counts
// used for overlays this is cheaper than maintaining an ordered structure.
type LinearScheduler struct {
	exitTimes      []float64
	containerWidth float64
	moveDuration   float64
}

func NewLinearScheduler(laneCount int, containerWidth, moveDuration float64) *LinearScheduler {
	if laneCount < 0 {
		laneCount = 0
	}
	if !(moveDuration > 0) || math.IsInf(moveDuration, 0) {
		moveDuration = config.DefaultMoveDuration
	}
	s := &LinearScheduler{
		exitTimes:      make([]float64, laneCount),
		containerWidth: containerWidth,
		moveDuration:   moveDuration,
	}
	s.Reset()
	return s
}

func (s *LinearScheduler) AssignTrack(caption domain.Caption, estimatedWidth float64) Assignment {
	bestTrack := UndisplayableTrack
	earliestExit := math.Inf(1)

	// Strict < keeps the lowest index among equal exit times.
	for i, exit := range s.exitTimes {
		if exit < earliestExit {
			earliestExit = exit
			bestTrack = i
		}
	}

	if bestTrack == UndisplayableTrack {
		return Assignment{Track: UndisplayableTrack, StartTime: caption.Time, Width: estimatedWidth}
	}

	start := startTime(caption.Time, earliestExit)
	s.exitTimes[bestTrack] = start + s.moveDuration

	return Assignment{Track: bestTrack, StartTime: start, Width: estimatedWidth}
}

func (s *LinearScheduler) Reset() {
	for i := range s.exitTimes {
		s.exitTimes[i] = IdleExitTime
	}
}

func (s *LinearScheduler) ExitTimes() []float64 {
	out := make([]float64, len(s.exitTimes))
	copy(out, s.exitTimes)
	return out
}

func (s *LinearScheduler) LaneCount() int {
	return len(s.exitTimes)
}

func (s *LinearScheduler) ContainerWidth() float64 {
	return s.containerWidth
}

func (s *LinearScheduler) MoveDuration() float64 {
	return s.moveDuration
}
