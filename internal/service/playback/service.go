package playback

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/config"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/service/lane"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/service/window"
)

// session pairs a window manager with the lock that serialises its use.
type session struct {
	mu sync.Mutex

	id             string
	videoID        string
	containerWidth float64
	createdAt      time.Time
	manager        *window.Manager
	lastTime       float64

	// lastSeen is read by the idle sweeper without taking mu.
	lastSeen atomic.Int64
}

func (s *session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *session) lastSeenAt() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

type Service struct {
	captionRepo     domain.CaptionRepository
	recorder        domain.ScheduleRecorder
	schedulerCfg    *config.SchedulerConfig
	sessionCfg      *config.SessionConfig
	playbackMetrics *metrics.PlaybackMetrics

	now   func() time.Time
	newID func() string

	mu       sync.Mutex
	sessions map[string]*session
}

func NewService(
	captionRepo domain.CaptionRepository,
	recorder domain.ScheduleRecorder,
	schedulerCfg *config.SchedulerConfig,
	sessionCfg *config.SessionConfig,
	playbackMetrics *metrics.PlaybackMetrics,
) *Service {
	if schedulerCfg == nil {
		schedulerCfg = config.DefaultSchedulerConfig()
	}
	if sessionCfg == nil {
		sessionCfg = config.LoadSessionConfig()
	}

	return &Service{
		captionRepo:     captionRepo,
		recorder:        recorder,
		schedulerCfg:    schedulerCfg,
		sessionCfg:      sessionCfg,
		playbackMetrics: playbackMetrics,
		now:             time.Now,
		newID:           uuid.NewString,
		sessions:        make(map[string]*session),
	}
}

func validTime(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// DefaultContainerWidth is used when a client opens a session without a width.
func (s *Service) DefaultContainerWidth() float64 {
	return s.schedulerCfg.ContainerWidth
}

// Open loads the video's captions and starts a new playback session at time 0.
func (s *Service) Open(ctx context.Context, videoID string, containerWidth float64) (*SessionInfo, error) {
	ctx, span := tracing.StartSessionOpenSpan(ctx, videoID, containerWidth)
	defer span.End()

	if math.IsNaN(containerWidth) || math.IsInf(containerWidth, 0) || containerWidth <= 0 {
		tracing.RecordError(span, domain.ErrInvalidContainerWidth)
		return nil, domain.ErrInvalidContainerWidth
	}

	if s.SessionCount() >= s.sessionCfg.MaxSessions {
		tracing.RecordError(span, domain.ErrSessionLimitReached)
		return nil, domain.ErrSessionLimitReached
	}

	captions, err := s.captionRepo.GetCaptions(ctx, videoID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	scheduler := lane.NewScheduler(s.schedulerCfg, containerWidth)
	manager := window.NewManager(captions, scheduler, window.OptionsFromConfig(s.schedulerCfg))

	now := s.now()
	sess := &session{
		id:             s.newID(),
		videoID:        videoID,
		containerWidth: containerWidth,
		createdAt:      now,
		manager:        manager,
	}
	sess.touch(now)

	s.mu.Lock()
	// Re-check under the lock; the caption load above is not serialised.
	if len(s.sessions) >= s.sessionCfg.MaxSessions {
		s.mu.Unlock()
		tracing.RecordError(span, domain.ErrSessionLimitReached)
		return nil, domain.ErrSessionLimitReached
	}
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	if s.playbackMetrics != nil {
		s.playbackMetrics.SessionOpened(ctx)
	}

	slog.InfoContext(ctx, "playback session opened",
		slog.String("event", "session.open"),
		slog.String("session_id", sess.id),
		slog.String("video_id", videoID),
		slog.Float64("container_width", containerWidth),
		slog.Int("captions", len(captions)),
		slog.Int("lanes", scheduler.LaneCount()),
	)

	return &SessionInfo{
		SessionID:      sess.id,
		VideoID:        videoID,
		ContainerWidth: containerWidth,
		LaneCount:      scheduler.LaneCount(),
		CaptionCount:   len(captions),
		CreatedAt:      now,
	}, nil
}

func (s *Service) lookup(sessionID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Frame advances the session to currentTime and returns the captions on
// screen. A nil timeWindow uses the configured lookahead.
func (s *Service) Frame(ctx context.Context, sessionID string, currentTime float64, timeWindow *float64) (*FrameResult, error) {
	if !validTime(currentTime) {
		return nil, domain.ErrInvalidPlaybackTime
	}
	if timeWindow != nil && !validTime(*timeWindow) {
		return nil, domain.ErrInvalidTimeWindow
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	started := s.now()

	sess.mu.Lock()
	w := sess.manager.DefaultWindow()
	if timeWindow != nil {
		w = *timeWindow
	}

	ctx, span := tracing.StartFrameSpan(ctx, sessionID, currentTime, w)
	defer span.End()

	frame := sess.manager.Advance(currentTime, w)
	sess.lastTime = currentTime
	cacheSize := sess.manager.CacheSize()
	cursor := sess.manager.Cursor()
	sess.mu.Unlock()

	sess.touch(started)

	visible := make([]domain.VisibleCaption, 0, len(frame.Visible))
	for _, v := range frame.Visible {
		if v.Track == lane.UndisplayableTrack {
			continue
		}
		visible = append(visible, v)
	}

	s.recordAdmissions(ctx, sess, frame.Admitted, started)

	if s.playbackMetrics != nil {
		s.playbackMetrics.RecordEvicted(ctx, frame.Evicted)
		s.playbackMetrics.RecordFrame(ctx, string(s.schedulerCfg.Strategy), len(visible), s.now().Sub(started))
	}

	tracing.RecordFrameResult(span, len(visible), len(frame.Admitted), frame.Evicted, cacheSize, cursor)

	return &FrameResult{
		SessionID:   sessionID,
		CurrentTime: currentTime,
		Clock:       domain.FormatTime(currentTime),
		TimeWindow:  w,
		Captions:    visible,
		Admitted:    len(frame.Admitted),
		Evicted:     frame.Evicted,
	}, nil
}

func (s *Service) recordAdmissions(ctx context.Context, sess *session, admitted []domain.ScheduledCaption, at time.Time) {
	if len(admitted) == 0 {
		return
	}

	records := make([]domain.AssignmentRecord, 0, len(admitted))
	undisplayable := 0
	for _, sc := range admitted {
		if sc.Track == lane.UndisplayableTrack {
			undisplayable++
			continue
		}

		record := domain.AssignmentRecord{
			SessionID:   sess.id,
			VideoID:     sess.videoID,
			CaptionID:   sc.ID,
			Track:       sc.Track,
			NominalTime: sc.NominalTime,
			StartTime:   sc.StartTime,
			RecordedAt:  at,
		}
		records = append(records, record)

		if s.playbackMetrics != nil {
			s.playbackMetrics.RecordAdmission(ctx, sc.Track, record.Delay())
		}
	}

	if undisplayable > 0 {
		if s.playbackMetrics != nil {
			s.playbackMetrics.RecordUndisplayable(ctx, undisplayable)
		}
		slog.WarnContext(ctx, "captions admitted without a lane",
			slog.String("event", "frame.undisplayable"),
			slog.String("session_id", sess.id),
			slog.Int("count", undisplayable),
		)
	}

	if s.recorder == nil || len(records) == 0 {
		return
	}

	if err := s.recorder.RecordAssignments(ctx, records); err != nil {
		slog.WarnContext(ctx, "failed to record lane assignments",
			slog.String("session_id", sess.id),
			slog.Int("count", len(records)),
			slog.String("error", err.Error()),
		)
	}
}

// Seek repositions the session after a discontinuous jump in playback.
func (s *Service) Seek(ctx context.Context, sessionID string, t float64) error {
	if !validTime(t) {
		return domain.ErrInvalidPlaybackTime
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	ctx, span := tracing.StartSeekSpan(ctx, sessionID, t)
	defer span.End()

	sess.mu.Lock()
	from := sess.lastTime
	sess.manager.Seek(t)
	sess.lastTime = t
	cursor := sess.manager.Cursor()
	sess.mu.Unlock()

	sess.touch(s.now())

	if s.playbackMetrics != nil {
		s.playbackMetrics.RecordSeek(ctx)
	}

	slog.DebugContext(ctx, "playback session seeked",
		slog.String("event", "session.seek"),
		slog.String("session_id", sessionID),
		slog.String("from", domain.FormatTime(from)),
		slog.String("to", domain.FormatTime(t)),
		slog.Int("cursor", cursor),
	)

	return nil
}

func (s *Service) Close(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}

	if s.playbackMetrics != nil {
		s.playbackMetrics.SessionClosed(ctx, CloseReasonClient)
	}

	slog.InfoContext(ctx, "playback session closed",
		slog.String("event", "session.close"),
		slog.String("session_id", sessionID),
	)

	return nil
}

func (s *Service) Stats(sessionID string) (*Stats, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return &Stats{
		SessionID:      sess.id,
		VideoID:        sess.videoID,
		ContainerWidth: sess.containerWidth,
		Cursor:         sess.manager.Cursor(),
		CaptionCount:   sess.manager.Len(),
		CacheSize:      sess.manager.CacheSize(),
		LaneExitTimes:  sess.manager.ExitTimes(),
		LastTime:       sess.lastTime,
		LastSeenAt:     sess.lastSeenAt(),
	}, nil
}

func (s *Service) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// ExpireIdle closes sessions not used since now-maxIdle and returns how many
// were removed.
func (s *Service) ExpireIdle(ctx context.Context, now time.Time, maxIdle time.Duration) int {
	cutoff := now.Add(-maxIdle)

	s.mu.Lock()
	expired := make([]string, 0)
	for id, sess := range s.sessions {
		if sess.lastSeenAt().Before(cutoff) {
			delete(s.sessions, id)
			expired = append(expired, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		if s.playbackMetrics != nil {
			s.playbackMetrics.SessionClosed(ctx, CloseReasonIdle)
		}
		slog.InfoContext(ctx, "playback session expired",
			slog.String("event", "session.expire"),
			slog.String("session_id", id),
		)
	}

	return len(expired)
}

// RunSweeper expires idle sessions every SweepInterval until ctx is done,
// then flushes the schedule recorder.
func (s *Service) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.sessionCfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			s.flushRecorder(flushCtx)
			cancel()
			return
		case <-ticker.C:
			if n := s.ExpireIdle(ctx, s.now(), s.sessionCfg.IdleTimeout); n > 0 {
				slog.DebugContext(ctx, "idle sessions swept", slog.Int("expired", n))
			}
			s.flushRecorder(ctx)
		}
	}
}

func (s *Service) flushRecorder(ctx context.Context) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Flush(ctx); err != nil {
		slog.WarnContext(ctx, "failed to flush schedule recorder",
			slog.String("error", err.Error()),
		)
	}
}
