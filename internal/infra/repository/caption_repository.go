package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/observability/tracing"
)

const (
	captionKeyPrefix = "danmaku:captions:"
)

// captionRecord is the sorted-set member. Seq keeps the submitted order of
// captions sharing a timestamp, since Redis orders equal scores by member.
type captionRecord struct {
	Seq   int     `json:"seq"`
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Time  float64 `json:"time"`
	Color string  `json:"color,omitempty"`
}

type captionRepository struct {
	client *redis.Client
}

var _ domain.CaptionRepository = (*captionRepository)(nil)

func NewCaptionRepository(client *redis.Client) domain.CaptionRepository {
	return &captionRepository{
		client: client,
	}
}

func captionKey(videoID string) string {
	return captionKeyPrefix + videoID
}

func (r *captionRepository) SaveCaptions(ctx context.Context, videoID string, captions []domain.Caption) (err error) {
	ctx, span := tracing.StartCaptionStoreSpan(ctx, "save", videoID)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if err := domain.ValidateCaptions(captions); err != nil {
		return err
	}

	members := make([]redis.Z, 0, len(captions))
	for i, c := range captions {
		data, err := json.Marshal(captionRecord{
			Seq:   i,
			ID:    c.ID,
			Text:  c.Text,
			Time:  c.Time,
			Color: c.Color,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCaptionData, err)
		}
		members = append(members, redis.Z{Score: c.Time, Member: data})
	}

	key := captionKey(videoID)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(members) > 0 {
		pipe.ZAdd(ctx, key, members...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}

	slog.DebugContext(ctx, "captions saved",
		slog.String("event", "captions.save"),
		slog.String("video_id", videoID),
		slog.Int("count", len(captions)),
	)

	return nil
}

func (r *captionRepository) GetCaptions(ctx context.Context, videoID string) (_ []domain.Caption, err error) {
	ctx, span := tracing.StartCaptionStoreSpan(ctx, "get", videoID)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	members, err := r.client.ZRangeWithScores(ctx, captionKey(videoID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}

	if len(members) == 0 {
		return nil, domain.ErrVideoNotFound
	}

	records := make([]captionRecord, 0, len(members))
	for _, m := range members {
		raw, ok := m.Member.(string)
		if !ok {
			return nil, ErrInvalidCaptionData
		}

		var record captionRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCaptionData, err)
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Time != records[j].Time {
			return records[i].Time < records[j].Time
		}
		return records[i].Seq < records[j].Seq
	})

	captions := make([]domain.Caption, 0, len(records))
	for _, record := range records {
		captions = append(captions, domain.Caption{
			ID:    record.ID,
			Text:  record.Text,
			Time:  record.Time,
			Color: record.Color,
		})
	}

	return captions, nil
}

func (r *captionRepository) CountCaptions(ctx context.Context, videoID string) (int, error) {
	n, err := r.client.ZCard(ctx, captionKey(videoID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}

	return int(n), nil
}

func (r *captionRepository) DeleteCaptions(ctx context.Context, videoID string) (err error) {
	ctx, span := tracing.StartCaptionStoreSpan(ctx, "delete", videoID)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	deleted, err := r.client.Del(ctx, captionKey(videoID)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}

	if deleted == 0 {
		return domain.ErrVideoNotFound
	}

	return nil
}
