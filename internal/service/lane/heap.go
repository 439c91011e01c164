package lane

import (
	"container/heap"
	"math"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/config"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

var _ Scheduler = (*HeapScheduler)(nil)

// HeapScheduler keeps lanes in a min-heap keyed by (exit time, lane index).
// Each assignment is O(log N), for configurations with many lanes.
type HeapScheduler struct {
	queue          *LaneQueue
	lanes          []*laneItem
	containerWidth float64
	moveDuration   float64
}

func NewHeapScheduler(laneCount int, containerWidth, moveDuration float64) *HeapScheduler {
	if laneCount < 0 {
		laneCount = 0
	}
	if !(moveDuration > 0) || math.IsInf(moveDuration, 0) {
		moveDuration = config.DefaultMoveDuration
	}
	s := &HeapScheduler{
		queue:          &LaneQueue{items: make([]*laneItem, 0, laneCount)},
		lanes:          make([]*laneItem, laneCount),
		containerWidth: containerWidth,
		moveDuration:   moveDuration,
	}
	for i := range s.lanes {
		s.lanes[i] = &laneItem{Track: i}
	}
	s.Reset()
	return s
}

func (s *HeapScheduler) AssignTrack(caption domain.Caption, estimatedWidth float64) Assignment {
	top := s.queue.peek()
	if top == nil {
		return Assignment{Track: UndisplayableTrack, StartTime: caption.Time, Width: estimatedWidth}
	}

	start := startTime(caption.Time, top.ExitTime)
	top.ExitTime = start + s.moveDuration
	heap.Fix(s.queue, top.Index)

	return Assignment{Track: top.Track, StartTime: start, Width: estimatedWidth}
}

func (s *HeapScheduler) Reset() {
	s.queue.items = s.queue.items[:0]
	for _, item := range s.lanes {
		item.ExitTime = IdleExitTime
		s.queue.items = append(s.queue.items, item)
	}
	for i, item := range s.queue.items {
		item.Index = i
	}
	heap.Init(s.queue)
}

func (s *HeapScheduler) ExitTimes() []float64 {
	out := make([]float64, len(s.lanes))
	for i, item := range s.lanes {
		out[i] = item.ExitTime
	}
	return out
}

func (s *HeapScheduler) LaneCount() int {
	return len(s.lanes)
}

func (s *HeapScheduler) ContainerWidth() float64 {
	return s.containerWidth
}

func (s *HeapScheduler) MoveDuration() float64 {
	return s.moveDuration
}
