package lane

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/config"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

const testMoveDuration = 15.0

type schedulerFactory struct {
	name string
	new  func(laneCount int) Scheduler
}

func schedulerFactories() []schedulerFactory {
	return []schedulerFactory{
		{
			name: "linear",
			new: func(laneCount int) Scheduler {
				return NewLinearScheduler(laneCount, 1280, testMoveDuration)
			},
		},
		{
			name: "heap",
			new: func(laneCount int) Scheduler {
				return NewHeapScheduler(laneCount, 1280, testMoveDuration)
			},
		},
	}
}

func TestScheduler_SingleLaneDelaysSecondCaption(t *testing.T) {
	for _, f := range schedulerFactories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.new(1)

			a := s.AssignTrack(domain.Caption{ID: "a", Time: 0}, 144)
			if a.Track != 0 || a.StartTime != 0 {
				t.Errorf("a: got track %d start %v, want track 0 start 0", a.Track, a.StartTime)
			}
			if got := s.ExitTimes()[0]; got != 15 {
				t.Errorf("exit after a = %v, want 15", got)
			}

			b := s.AssignTrack(domain.Caption{ID: "b", Time: 5}, 144)
			if b.Track != 0 || b.StartTime != 15 {
				t.Errorf("b: got track %d start %v, want track 0 start 15", b.Track, b.StartTime)
			}
			if got := s.ExitTimes()[0]; got != 30 {
				t.Errorf("exit after b = %v, want 30", got)
			}
		})
	}
}

func TestScheduler_FiveLanesSixSimultaneousCaptions(t *testing.T) {
	for _, f := range schedulerFactories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.new(5)

			for i := 0; i < 5; i++ {
				got := s.AssignTrack(domain.Caption{ID: fmt.Sprintf("dm-%d", i), Time: 0}, 100)
				if got.Track != i {
					t.Errorf("caption %d: track = %d, want %d", i, got.Track, i)
				}
				if got.StartTime != 0 {
					t.Errorf("caption %d: start = %v, want 0", i, got.StartTime)
				}
			}

			sixth := s.AssignTrack(domain.Caption{ID: "dm-5", Time: 0}, 100)
			if sixth.Track != 0 {
				t.Errorf("sixth caption track = %d, want 0", sixth.Track)
			}
			if sixth.StartTime != 15 {
				t.Errorf("sixth caption start = %v, want 15", sixth.StartTime)
			}
		})
	}
}

func TestScheduler_NoLanes(t *testing.T) {
	for _, f := range schedulerFactories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.new(0)

			got := s.AssignTrack(domain.Caption{ID: "a", Time: 7.5}, 88)
			if got.Track != UndisplayableTrack {
				t.Errorf("track = %d, want %d", got.Track, UndisplayableTrack)
			}
			if got.StartTime != 7.5 {
				t.Errorf("start = %v, want nominal time 7.5", got.StartTime)
			}
			if got.Displayable() {
				t.Error("expected assignment to be undisplayable")
			}
			if len(s.ExitTimes()) != 0 {
				t.Errorf("expected no exit times, got %v", s.ExitTimes())
			}
		})
	}
}

func TestScheduler_IdleLaneStartsAtNominalTime(t *testing.T) {
	for _, f := range schedulerFactories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.new(1)

			s.AssignTrack(domain.Caption{ID: "a", Time: 0}, 100)
			got := s.AssignTrack(domain.Caption{ID: "b", Time: 40}, 100)

			if got.StartTime != 40 {
				t.Errorf("start = %v, want 40 (lane already free)", got.StartTime)
			}
		})
	}
}

func TestScheduler_WidthIsCarriedThrough(t *testing.T) {
	for _, f := range schedulerFactories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.new(2)

			narrow := s.AssignTrack(domain.Caption{ID: "a", Time: 0}, 10)
			wide := s.AssignTrack(domain.Caption{ID: "b", Time: 0}, 10000)

			if narrow.Width != 10 || wide.Width != 10000 {
				t.Errorf("widths = %v, %v; want 10, 10000", narrow.Width, wide.Width)
			}
			if wide.StartTime != 0 {
				t.Errorf("wide caption start = %v, want 0 (width does not affect packing)", wide.StartTime)
			}
			if got := s.ExitTimes(); got[0] != got[1] {
				t.Errorf("exit times differ by width: %v", got)
			}
		})
	}
}

func TestScheduler_NonPositiveMoveDurationFallsBack(t *testing.T) {
	constructors := []struct {
		name string
		new  func(moveDuration float64) Scheduler
	}{
		{"linear", func(d float64) Scheduler { return NewLinearScheduler(1, 1280, d) }},
		{"heap", func(d float64) Scheduler { return NewHeapScheduler(1, 1280, d) }},
	}

	for _, c := range constructors {
		for _, d := range []float64{0, -5, math.NaN(), math.Inf(1)} {
			t.Run(fmt.Sprintf("%s/%v", c.name, d), func(t *testing.T) {
				s := c.new(d)
				if s.MoveDuration() != config.DefaultMoveDuration {
					t.Fatalf("MoveDuration() = %v, want %v", s.MoveDuration(), config.DefaultMoveDuration)
				}

				s.AssignTrack(domain.Caption{ID: "a", Time: 0}, 100)
				got := s.AssignTrack(domain.Caption{ID: "b", Time: 1}, 100)
				if got.StartTime != config.DefaultMoveDuration {
					t.Errorf("second start = %v, want %v", got.StartTime, config.DefaultMoveDuration)
				}
			})
		}
	}
}

func TestScheduler_Reset(t *testing.T) {
	for _, f := range schedulerFactories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.new(3)

			for i := 0; i < 7; i++ {
				s.AssignTrack(domain.Caption{ID: fmt.Sprintf("dm-%d", i), Time: float64(i)}, 100)
			}

			s.Reset()

			for i, exit := range s.ExitTimes() {
				if exit != IdleExitTime {
					t.Errorf("lane %d exit = %v, want %v", i, exit, IdleExitTime)
				}
			}

			got := s.AssignTrack(domain.Caption{ID: "after", Time: 3}, 100)
			if got.Track != 0 || got.StartTime != 3 {
				t.Errorf("after reset: track %d start %v, want track 0 start 3", got.Track, got.StartTime)
			}
		})
	}
}

func TestScheduler_ExitTimesIsACopy(t *testing.T) {
	for _, f := range schedulerFactories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.new(2)

			exits := s.ExitTimes()
			exits[0] = 1000

			if s.ExitTimes()[0] != IdleExitTime {
				t.Error("mutating ExitTimes result changed scheduler state")
			}
		})
	}
}

// TestScheduler_PackingInvariant replays a random sorted caption stream and
// checks every lane's history.
func TestScheduler_PackingInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	captions := make([]domain.Caption, 500)
	for i := range captions {
		captions[i] = domain.Caption{ID: fmt.Sprintf("dm-%d", i), Time: rng.Float64() * 120}
	}
	sort.SliceStable(captions, func(i, j int) bool { return captions[i].Time < captions[j].Time })

	for _, f := range schedulerFactories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.new(5)

			type placed struct {
				nominal float64
				start   float64
			}
			history := make(map[int][]placed)

			for _, c := range captions {
				a := s.AssignTrack(c, 100)
				if a.StartTime < c.Time {
					t.Fatalf("%s starts at %v before nominal %v", c.ID, a.StartTime, c.Time)
				}
				history[a.Track] = append(history[a.Track], placed{nominal: c.Time, start: a.StartTime})
			}

			for track, entries := range history {
				for i := 1; i < len(entries); i++ {
					prevExit := entries[i-1].start + testMoveDuration
					cur := entries[i]
					if cur.start < prevExit {
						t.Fatalf("lane %d: entry %d starts at %v before previous exit %v", track, i, cur.start, prevExit)
					}
					if cur.nominal <= prevExit && cur.start != prevExit {
						t.Fatalf("lane %d: entry %d has gap, start %v, previous exit %v", track, i, cur.start, prevExit)
					}
				}
			}
		})
	}
}

func TestScheduler_StrategiesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, laneCount := range []int{1, 2, 5, 16} {
		t.Run(fmt.Sprintf("lanes=%d", laneCount), func(t *testing.T) {
			linear := NewLinearScheduler(laneCount, 1280, testMoveDuration)
			heapScheduler := NewHeapScheduler(laneCount, 1280, testMoveDuration)

			now := 0.0
			for i := 0; i < 1000; i++ {
				// Whole-second steps produce plenty of exact exit-time ties.
				now += float64(rng.Intn(3))
				c := domain.Caption{ID: fmt.Sprintf("dm-%d", i), Time: now}

				a := linear.AssignTrack(c, 100)
				b := heapScheduler.AssignTrack(c, 100)
				if a != b {
					t.Fatalf("caption %d: linear %+v, heap %+v", i, a, b)
				}
			}
		})
	}
}

func TestNewScheduler(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.SchedulerConfig
		wantType string
		wantLane int
	}{
		{
			name:     "nil config uses linear defaults",
			cfg:      nil,
			wantType: "*lane.LinearScheduler",
			wantLane: 5,
		},
		{
			name:     "linear",
			cfg:      &config.SchedulerConfig{LaneCount: 3, MoveDuration: 10, Strategy: config.LaneStrategyLinear},
			wantType: "*lane.LinearScheduler",
			wantLane: 3,
		},
		{
			name:     "heap",
			cfg:      &config.SchedulerConfig{LaneCount: 64, MoveDuration: 10, Strategy: config.LaneStrategyHeap},
			wantType: "*lane.HeapScheduler",
			wantLane: 64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(tt.cfg, 1920)

			if got := fmt.Sprintf("%T", s); got != tt.wantType {
				t.Errorf("type = %s, want %s", got, tt.wantType)
			}
			if s.LaneCount() != tt.wantLane {
				t.Errorf("LaneCount() = %d, want %d", s.LaneCount(), tt.wantLane)
			}
			if s.ContainerWidth() != 1920 {
				t.Errorf("ContainerWidth() = %v, want 1920", s.ContainerWidth())
			}
		})
	}
}
