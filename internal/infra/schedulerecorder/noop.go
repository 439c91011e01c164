package schedulerecorder

import (
	"context"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

type noopRecorder struct{}

var _ domain.ScheduleRecorder = (*noopRecorder)(nil)

func NewNoopRecorder() domain.ScheduleRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordAssignments(_ context.Context, _ []domain.AssignmentRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
