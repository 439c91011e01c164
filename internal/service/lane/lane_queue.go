package lane

// laneItem is one lane inside a LaneQueue.
type laneItem struct {
	Track    int
	ExitTime float64
	Index    int
}

// LaneQueue is a container/heap implementation ordered by exit time.
// Equal exit times are ordered by lane index, which matches the lowest-index
// tie-break of a left-to-right scan. container/heap alone gives no such
// guarantee, so the index comparison in Less is required.
type LaneQueue struct {
	items []*laneItem
}

func (q *LaneQueue) Len() int {
	return len(q.items)
}

func (q *LaneQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]

	if a.ExitTime != b.ExitTime {
		return a.ExitTime < b.ExitTime
	}

	return a.Track < b.Track
}

func (q *LaneQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].Index = i
	q.items[j].Index = j
}

func (q *LaneQueue) Push(x any) {
	item := x.(*laneItem)
	item.Index = len(q.items)
	q.items = append(q.items, item)
}

func (q *LaneQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	q.items = old[0 : n-1]
	return item
}

// peek returns the earliest-available lane without removing it.
func (q *LaneQueue) peek() *laneItem {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}
