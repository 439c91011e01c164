package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const playbackTracerName = "github.com/KasumiMercury/danmaku-lane-scheduler/internal/service/playback"

func PlaybackTracer() trace.Tracer {
	return otel.Tracer(playbackTracerName)
}

func StartSessionOpenSpan(ctx context.Context, videoID string, containerWidth float64) (context.Context, trace.Span) {
	return PlaybackTracer().Start(ctx, "danmaku.session_open",
		trace.WithAttributes(
			attribute.String("video_id", videoID),
			attribute.Float64("container_width", containerWidth),
		),
	)
}

func StartFrameSpan(ctx context.Context, sessionID string, currentTime, window float64) (context.Context, trace.Span) {
	return PlaybackTracer().Start(ctx, "danmaku.frame",
		trace.WithAttributes(
			attribute.String("session_id", sessionID),
			attribute.Float64("frame.current_time", currentTime),
			attribute.Float64("frame.window", window),
		),
	)
}

func StartSeekSpan(ctx context.Context, sessionID string, target float64) (context.Context, trace.Span) {
	return PlaybackTracer().Start(ctx, "danmaku.seek",
		trace.WithAttributes(
			attribute.String("session_id", sessionID),
			attribute.Float64("seek.target", target),
		),
	)
}

// StartCaptionStoreSpan wraps one caption repository call. The Redis commands
// it issues appear as children via redisotel.
func StartCaptionStoreSpan(ctx context.Context, operation, videoID string) (context.Context, trace.Span) {
	return PlaybackTracer().Start(ctx, "danmaku.captions."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("video_id", videoID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordFrameResult(span trace.Span, visible, admitted, evicted, cacheSize, cursor int) {
	span.SetAttributes(
		attribute.Int("frame.visible_count", visible),
		attribute.Int("frame.admitted_count", admitted),
		attribute.Int("frame.evicted_count", evicted),
		attribute.Int("frame.cache_size", cacheSize),
		attribute.Int("frame.cursor", cursor),
	)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

// ExtractFromHTTPRequest continues a trace started by the caller.
func ExtractFromHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(req.Header))
}
