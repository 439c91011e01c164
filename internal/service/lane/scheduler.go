package lane

import (
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

const (
	// IdleExitTime marks a lane that has never been used. It is older than
	// any playback timestamp, so an idle lane is always available.
	IdleExitTime = -999.0

	// UndisplayableTrack is returned when no lane can be selected.
	// Callers must not render captions carrying this track.
	UndisplayableTrack = -1
)

// Assignment is the result of placing a caption on a lane.
type Assignment struct {
	Track     int
	StartTime float64
	Width     float64
}

// Displayable reports whether the assignment landed on a real lane.
func (a Assignment) Displayable() bool {
	return a.Track != UndisplayableTrack
}

// Scheduler assigns captions to lanes so that a lane's next caption
// enters exactly when the previous one has left.
type Scheduler interface {
	// AssignTrack picks the earliest-available lane (lowest index on ties)
	// and returns the caption's actual start time on it.
	AssignTrack(caption domain.Caption, estimatedWidth float64) Assignment

	// Reset returns every lane to IdleExitTime.
	Reset()

	// ExitTimes returns a copy of the exit time of each lane, by lane index.
	ExitTimes() []float64

	LaneCount() int
	ContainerWidth() float64
	MoveDuration() float64
}

func startTime(nominal, exit float64) float64 {
	if exit > nominal {
		return exit
	}
	return nominal
}
