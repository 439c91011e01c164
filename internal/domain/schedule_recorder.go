package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=schedule_recorder.go -destination=schedule_recorder_mock.go -package=domain

// AssignmentRecord describes one lane assignment made during admission.
type AssignmentRecord struct {
	SessionID   string
	VideoID     string
	CaptionID   string
	Track       int
	NominalTime float64
	StartTime   float64
	RecordedAt  time.Time
}

// Delay is how long the caption was held back by lane contention.
func (r AssignmentRecord) Delay() float64 {
	return r.StartTime - r.NominalTime
}

type ScheduleRecorder interface {
	RecordAssignments(ctx context.Context, records []AssignmentRecord) error
	Flush(ctx context.Context) error
	Close() error
}
