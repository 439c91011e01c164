//go:build gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt  time.Time `bigquery:"recorded_at"`
	SessionID   string    `bigquery:"session_id"`
	VideoID     string    `bigquery:"video_id"`
	CaptionID   string    `bigquery:"caption_id"`
	Track       int64     `bigquery:"track"`
	NominalTime float64   `bigquery:"nominal_time"`
	StartTime   float64   `bigquery:"start_time"`
	Delay       float64   `bigquery:"delay"`
}

type bigQueryRecorder struct {
	client    *bigquery.Client
	inserter  *bigquery.Inserter
	batchSize int

	mu      sync.Mutex
	pending []*bigQueryRecord
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, schedule recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, schedule recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "schedule recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
		slog.Int("batch_size", cfg.BatchSize),
	)

	return &bigQueryRecorder{
		client:    client,
		inserter:  inserter,
		batchSize: cfg.BatchSize,
	}, nil
}

func (r *bigQueryRecorder) RecordAssignments(ctx context.Context, records []domain.AssignmentRecord) error {
	if len(records) == 0 {
		return nil
	}

	r.mu.Lock()
	for _, record := range records {
		r.pending = append(r.pending, &bigQueryRecord{
			RecordedAt:  record.RecordedAt,
			SessionID:   record.SessionID,
			VideoID:     record.VideoID,
			CaptionID:   record.CaptionID,
			Track:       int64(record.Track),
			NominalTime: record.NominalTime,
			StartTime:   record.StartTime,
			Delay:       record.Delay(),
		})
	}
	full := len(r.pending) >= r.batchSize
	r.mu.Unlock()

	if full {
		return r.Flush(ctx)
	}
	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := r.inserter.Put(ctx, batch); err != nil {
		slog.WarnContext(ctx, "failed to insert lane assignments to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(batch)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = r.Flush(ctx)

	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
