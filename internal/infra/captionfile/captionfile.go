// Package captionfile reads caption seed documents from disk.
package captionfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

var (
	ErrMissingVideoID = errors.New("caption file has no video_id")
	ErrDuplicateVideo = errors.New("video_id defined in more than one caption file")
)

// maxConcurrentReads bounds LoadDir's file parallelism.
const maxConcurrentReads = 8

// Document is one caption file. JSON is a subset of YAML, so both formats
// decode through the same path.
type Document struct {
	VideoID  string           `yaml:"video_id"`
	Captions []domain.Caption `yaml:"captions"`
}

func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if doc.VideoID == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingVideoID)
	}

	sort.SliceStable(doc.Captions, func(i, j int) bool {
		return doc.Captions[i].Time < doc.Captions[j].Time
	})

	if err := domain.ValidateCaptions(doc.Captions); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &doc, nil
}

func isCaptionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// LoadDir loads every caption file directly under dir. The result is ordered
// by file name.
func LoadDir(ctx context.Context, dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isCaptionFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	docs := make([]*Document, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, err := LoadFile(path)
			if err != nil {
				return err
			}
			docs[i] = doc

			slog.DebugContext(ctx, "caption file loaded",
				slog.String("path", path),
				slog.String("video_id", doc.VideoID),
				slog.Int("captions", len(doc.Captions)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(docs))
	for i, doc := range docs {
		if prev, ok := seen[doc.VideoID]; ok {
			return nil, fmt.Errorf("%w: %s (%s, %s)", ErrDuplicateVideo, doc.VideoID, prev, paths[i])
		}
		seen[doc.VideoID] = paths[i]
	}

	return docs, nil
}

// Seed writes every document to repo.
func Seed(ctx context.Context, repo domain.CaptionRepository, docs []*Document) error {
	for _, doc := range docs {
		if err := repo.SaveCaptions(ctx, doc.VideoID, doc.Captions); err != nil {
			return fmt.Errorf("seed %s: %w", doc.VideoID, err)
		}

		slog.InfoContext(ctx, "captions seeded",
			slog.String("event", "captions.seed"),
			slog.String("video_id", doc.VideoID),
			slog.Int("count", len(doc.Captions)),
		)
	}

	return nil
}
