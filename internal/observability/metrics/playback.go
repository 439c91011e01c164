package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	playbackMeterName = "danmaku.playback"
)

type PlaybackMetrics struct {
	captionsAdmitted      metric.Int64Counter
	captionsDelayed       metric.Int64Counter
	captionsEvicted       metric.Int64Counter
	captionsUndisplayable metric.Int64Counter
	admissionDelay        metric.Float64Histogram
	frameDuration         metric.Float64Histogram
	visibleCaptions       metric.Int64Histogram
	seeks                 metric.Int64Counter
	activeSessions        metric.Int64UpDownCounter
}

func NewPlaybackMetrics() (*PlaybackMetrics, error) {
	meter := otel.Meter(playbackMeterName)

	captionsAdmitted, err := meter.Int64Counter(
		"danmaku_captions_admitted_total",
		metric.WithDescription("Total number of captions assigned to a lane"),
		metric.WithUnit("{caption}"),
	)
	if err != nil {
		return nil, err
	}

	captionsDelayed, err := meter.Int64Counter(
		"danmaku_captions_delayed_total",
		metric.WithDescription("Total number of captions started after their nominal time due to lane contention"),
		metric.WithUnit("{caption}"),
	)
	if err != nil {
		return nil, err
	}

	captionsEvicted, err := meter.Int64Counter(
		"danmaku_captions_evicted_total",
		metric.WithDescription("Total number of captions evicted after finishing their traversal"),
		metric.WithUnit("{caption}"),
	)
	if err != nil {
		return nil, err
	}

	captionsUndisplayable, err := meter.Int64Counter(
		"danmaku_captions_undisplayable_total",
		metric.WithDescription("Total number of captions that could not be assigned a lane"),
		metric.WithUnit("{caption}"),
	)
	if err != nil {
		return nil, err
	}

	admissionDelay, err := meter.Float64Histogram(
		"danmaku_admission_delay_seconds",
		metric.WithDescription("Delay between nominal and actual start time of admitted captions"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0, 0.5, 1, 2.5, 5, 10, 15, 30, 60, 120,
		),
	)
	if err != nil {
		return nil, err
	}

	frameDuration, err := meter.Float64Histogram(
		"danmaku_frame_duration_seconds",
		metric.WithDescription("Time spent computing a frame of visible captions"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05,
		),
	)
	if err != nil {
		return nil, err
	}

	visibleCaptions, err := meter.Int64Histogram(
		"danmaku_visible_captions",
		metric.WithDescription("Number of captions visible per frame"),
		metric.WithUnit("{caption}"),
		metric.WithExplicitBucketBoundaries(
			0, 1, 2, 5, 10, 20, 50, 100,
		),
	)
	if err != nil {
		return nil, err
	}

	seeks, err := meter.Int64Counter(
		"danmaku_seeks_total",
		metric.WithDescription("Total number of playback seeks"),
		metric.WithUnit("{seek}"),
	)
	if err != nil {
		return nil, err
	}

	activeSessions, err := meter.Int64UpDownCounter(
		"danmaku_active_sessions",
		metric.WithDescription("Number of open playback sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	return &PlaybackMetrics{
		captionsAdmitted:      captionsAdmitted,
		captionsDelayed:       captionsDelayed,
		captionsEvicted:       captionsEvicted,
		captionsUndisplayable: captionsUndisplayable,
		admissionDelay:        admissionDelay,
		frameDuration:         frameDuration,
		visibleCaptions:       visibleCaptions,
		seeks:                 seeks,
		activeSessions:        activeSessions,
	}, nil
}

func (m *PlaybackMetrics) RecordAdmission(ctx context.Context, track int, delay float64) {
	attrs := metric.WithAttributes(attribute.Int("track", track))
	m.captionsAdmitted.Add(ctx, 1, attrs)
	m.admissionDelay.Record(ctx, delay, attrs)
	if delay > 0 {
		m.captionsDelayed.Add(ctx, 1, attrs)
	}
}

func (m *PlaybackMetrics) RecordUndisplayable(ctx context.Context, count int) {
	m.captionsUndisplayable.Add(ctx, int64(count))
}

func (m *PlaybackMetrics) RecordEvicted(ctx context.Context, count int) {
	m.captionsEvicted.Add(ctx, int64(count))
}

func (m *PlaybackMetrics) RecordFrame(ctx context.Context, strategy string, visible int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("strategy", strategy))
	m.frameDuration.Record(ctx, duration.Seconds(), attrs)
	m.visibleCaptions.Record(ctx, int64(visible), attrs)
}

func (m *PlaybackMetrics) RecordSeek(ctx context.Context) {
	m.seeks.Add(ctx, 1)
}

func (m *PlaybackMetrics) SessionOpened(ctx context.Context) {
	m.activeSessions.Add(ctx, 1)
}

func (m *PlaybackMetrics) SessionClosed(ctx context.Context, reason string) {
	m.activeSessions.Add(ctx, -1, metric.WithAttributes(attribute.String("reason", reason)))
}
