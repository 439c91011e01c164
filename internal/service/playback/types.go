package playback

import (
	"time"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

const (
	CloseReasonClient = "client"
	CloseReasonIdle   = "idle"
)

type SessionInfo struct {
	SessionID      string    `json:"session_id"`
	VideoID        string    `json:"video_id"`
	ContainerWidth float64   `json:"container_width"`
	LaneCount      int       `json:"lane_count"`
	CaptionCount   int       `json:"caption_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type FrameResult struct {
	SessionID   string                  `json:"session_id"`
	CurrentTime float64                 `json:"current_time"`
	Clock       string                  `json:"clock"`
	TimeWindow  float64                 `json:"time_window"`
	Captions    []domain.VisibleCaption `json:"captions"`
	Admitted    int                     `json:"admitted"`
	Evicted     int                     `json:"evicted"`
}

type Stats struct {
	SessionID      string    `json:"session_id"`
	VideoID        string    `json:"video_id"`
	ContainerWidth float64   `json:"container_width"`
	Cursor         int       `json:"cursor"`
	CaptionCount   int       `json:"caption_count"`
	CacheSize      int       `json:"cache_size"`
	LaneExitTimes  []float64 `json:"lane_exit_times"`
	LastTime       float64   `json:"last_time"`
	LastSeenAt     time.Time `json:"last_seen_at"`
}
