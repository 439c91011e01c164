package lane

import (
	"container/heap"
	"testing"
)

func TestLaneQueue_TieBreakByTrack(t *testing.T) {
	q := &LaneQueue{}

	// Pushed in reverse so heap order cannot come from insertion order.
	for track := 4; track >= 0; track-- {
		heap.Push(q, &laneItem{Track: track, ExitTime: 10})
	}

	for want := 0; want < 5; want++ {
		item := heap.Pop(q).(*laneItem)
		if item.Track != want {
			t.Errorf("pop %d: track = %d, want %d", want, item.Track, want)
		}
	}
}

func TestLaneQueue_EarliestExitFirst(t *testing.T) {
	q := &LaneQueue{}

	heap.Push(q, &laneItem{Track: 0, ExitTime: 30})
	heap.Push(q, &laneItem{Track: 1, ExitTime: 15})
	heap.Push(q, &laneItem{Track: 2, ExitTime: 45})

	if top := q.peek(); top.Track != 1 {
		t.Errorf("peek track = %d, want 1", top.Track)
	}

	expectedOrder := []int{1, 0, 2}
	for i, want := range expectedOrder {
		item := heap.Pop(q).(*laneItem)
		if item.Track != want {
			t.Errorf("position %d: track = %d, want %d", i, item.Track, want)
		}
		if item.Index != -1 {
			t.Errorf("popped item index = %d, want -1", item.Index)
		}
	}

	if q.peek() != nil {
		t.Error("expected empty queue")
	}
}

func TestLaneQueue_FixAfterUpdate(t *testing.T) {
	q := &LaneQueue{}
	items := []*laneItem{
		{Track: 0, ExitTime: 0},
		{Track: 1, ExitTime: 0},
	}
	for _, item := range items {
		heap.Push(q, item)
	}

	items[0].ExitTime = 15
	heap.Fix(q, items[0].Index)

	if top := q.peek(); top.Track != 1 {
		t.Errorf("after fix, peek track = %d, want 1", top.Track)
	}
}
