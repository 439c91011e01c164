//go:build !gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

const assignmentMeasurement = "lane_assignment"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	done     sync.WaitGroup
}

// NewRecorder returns an InfluxDB recorder, or a noop recorder when recording
// is disabled or credentials are missing.
func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, schedule recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClientWithOptions(cfg.InfluxDBURL, cfg.InfluxDBToken,
		influxdb2.DefaultOptions().SetBatchSize(uint(cfg.BatchSize)),
	)

	r := newInfluxDBRecorder(client, client.WriteAPI(cfg.InfluxDBOrg, cfg.InfluxDBBucket))

	slog.InfoContext(ctx, "schedule recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
		slog.Int("batch_size", cfg.BatchSize),
	)

	return r, nil
}

func newInfluxDBRecorder(client influxdb2.Client, writeAPI api.WriteAPI) *influxDBRecorder {
	r := &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
	}

	// The async write API reports failures on a channel that must be drained.
	errs := writeAPI.Errors()
	r.done.Add(1)
	go func() {
		defer r.done.Done()
		for err := range errs {
			slog.Warn("failed to write lane assignments to InfluxDB",
				slog.String("error", err.Error()),
			)
		}
	}()

	return r
}

func assignmentPoint(record domain.AssignmentRecord) *write.Point {
	return influxdb2.NewPoint(
		assignmentMeasurement,
		map[string]string{
			"video_id": record.VideoID,
			"track":    strconv.Itoa(record.Track),
		},
		map[string]any{
			"session_id":   record.SessionID,
			"caption_id":   record.CaptionID,
			"nominal_time": record.NominalTime,
			"start_time":   record.StartTime,
			"delay":        record.Delay(),
		},
		record.RecordedAt,
	)
}

func (r *influxDBRecorder) RecordAssignments(_ context.Context, records []domain.AssignmentRecord) error {
	for _, record := range records {
		r.writeAPI.WritePoint(assignmentPoint(record))
	}

	return nil
}

func (r *influxDBRecorder) Flush(_ context.Context) error {
	r.writeAPI.Flush()
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		// Close flushes pending points and closes the error channel.
		r.client.Close()
		r.done.Wait()
	}
	return nil
}
