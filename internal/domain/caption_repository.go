package domain

import "context"

//go:generate mockgen -source=caption_repository.go -destination=caption_repository_mock.go -package=domain

type CaptionRepository interface {
	SaveCaptions(ctx context.Context, videoID string, captions []Caption) error
	GetCaptions(ctx context.Context, videoID string) ([]Caption, error)
	CountCaptions(ctx context.Context, videoID string) (int, error)
	DeleteCaptions(ctx context.Context, videoID string) error
}
