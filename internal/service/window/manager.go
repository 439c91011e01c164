package window

import (
	"sort"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/config"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/service/lane"
)

// Options control admission and width estimation. A nil Estimator falls back
// to the default 28px-per-character estimate.
type Options struct {
	DefaultWindow float64
	SeekLookBack  float64
	Estimator     WidthEstimator
}

// OptionsFromConfig builds Options from the scheduler configuration.
func OptionsFromConfig(cfg *config.SchedulerConfig) Options {
	if cfg == nil {
		cfg = config.DefaultSchedulerConfig()
	}
	return Options{
		DefaultWindow: cfg.LookaheadWindow,
		SeekLookBack:  cfg.SeekLookBack,
		Estimator: FixedWidthEstimator{
			CharWidth: cfg.CharWidth,
			Margin:    cfg.WidthMargin,
		},
	}
}

// Frame is the outcome of advancing the manager to a playback time.
type Frame struct {
	Visible  []domain.VisibleCaption
	Admitted []domain.ScheduledCaption
	Evicted  int
}

// Manager tracks which captions are in flight for one playback clock.
//
// captions must be sorted ascending by Time and ids must be unique: the
// cursor only moves forward, and a repeated id is never admitted twice.
// Manager is not safe for concurrent use.
type Manager struct {
	captions  []domain.Caption
	cursor    int
	scheduler lane.Scheduler
	opts      Options

	positions map[string]domain.ScheduledCaption
	// order holds cached ids in admission order so iteration is stable.
	order []string
}

func NewManager(captions []domain.Caption, scheduler lane.Scheduler, opts Options) *Manager {
	if opts.Estimator == nil {
		opts.Estimator = FixedWidthEstimator{
			CharWidth: config.DefaultCharWidth,
			Margin:    config.DefaultWidthMargin,
		}
	}
	if opts.DefaultWindow < 0 {
		opts.DefaultWindow = config.DefaultLookaheadWindow
	}
	if opts.SeekLookBack < 0 {
		opts.SeekLookBack = config.DefaultSeekLookBack
	}

	return &Manager{
		captions:  captions,
		scheduler: scheduler,
		opts:      opts,
		positions: make(map[string]domain.ScheduledCaption),
	}
}

// Visible returns the captions on screen at currentTime, admitting every
// caption due by currentTime+timeWindow. The result order is not meaningful.
func (m *Manager) Visible(currentTime, timeWindow float64) []domain.VisibleCaption {
	return m.Advance(currentTime, timeWindow).Visible
}

// VisibleDefault is Visible with the configured lookahead window.
func (m *Manager) VisibleDefault(currentTime float64) []domain.VisibleCaption {
	return m.Visible(currentTime, m.opts.DefaultWindow)
}

// DefaultWindow reports the configured lookahead window.
func (m *Manager) DefaultWindow() float64 {
	return m.opts.DefaultWindow
}

// Advance admits due captions, evicts finished ones and computes positions.
func (m *Manager) Advance(currentTime, timeWindow float64) Frame {
	frame := Frame{
		Admitted: m.admit(currentTime + timeWindow),
	}

	moveDuration := m.scheduler.MoveDuration()
	containerWidth := m.scheduler.ContainerWidth()

	kept := m.order[:0]
	for _, id := range m.order {
		pos := m.positions[id]
		elapsed := currentTime - pos.StartTime

		if elapsed > moveDuration {
			delete(m.positions, id)
			frame.Evicted++
			continue
		}
		kept = append(kept, id)

		// Admitted early but held back by lane contention.
		if elapsed < 0 {
			continue
		}

		progress := elapsed / moveDuration
		startX := containerWidth
		endX := -pos.Width

		frame.Visible = append(frame.Visible, domain.VisibleCaption{
			ID:         pos.ID,
			Text:       pos.Text,
			Color:      pos.Color,
			Track:      pos.Track,
			TranslateX: startX + (endX-startX)*progress,
			Opacity:    1,
		})
	}
	clear(m.order[len(kept):])
	m.order = kept

	return frame
}

func (m *Manager) admit(targetTime float64) []domain.ScheduledCaption {
	var admitted []domain.ScheduledCaption

	for m.cursor < len(m.captions) && m.captions[m.cursor].Time <= targetTime {
		c := m.captions[m.cursor]
		m.cursor++

		if _, ok := m.positions[c.ID]; ok {
			continue
		}

		width := m.opts.Estimator.Estimate(c.Text)
		assignment := m.scheduler.AssignTrack(c, width)

		scheduled := domain.ScheduledCaption{
			ID:          c.ID,
			Text:        c.Text,
			Color:       c.Color,
			Track:       assignment.Track,
			Width:       width,
			NominalTime: c.Time,
			StartTime:   assignment.StartTime,
		}
		m.positions[c.ID] = scheduled
		m.order = append(m.order, c.ID)
		admitted = append(admitted, scheduled)
	}

	return admitted
}

// Seek discards all scheduling state and moves the cursor to the first
// caption at or after t minus the look-back margin.
func (m *Manager) Seek(t float64) {
	m.scheduler.Reset()
	clear(m.positions)
	m.order = m.order[:0]

	threshold := t - m.opts.SeekLookBack
	// Lands on len(m.captions) when every caption is before the threshold.
	m.cursor = sort.Search(len(m.captions), func(i int) bool {
		return m.captions[i].Time >= threshold
	})
}

// CacheSize reports the number of scheduled captions not yet evicted.
func (m *Manager) CacheSize() int {
	return len(m.positions)
}

// Cursor reports the index of the next caption awaiting admission.
func (m *Manager) Cursor() int {
	return m.cursor
}

// Len reports the number of captions in the master list.
func (m *Manager) Len() int {
	return len(m.captions)
}

// Scheduled returns the cached entry for id, if any.
func (m *Manager) Scheduled(id string) (domain.ScheduledCaption, bool) {
	pos, ok := m.positions[id]
	return pos, ok
}

// ExitTimes exposes the scheduler's lane exit times.
func (m *Manager) ExitTimes() []float64 {
	return m.scheduler.ExitTimes()
}
