package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/config"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/service/playback"
)

func newTestRouter(repo domain.CaptionRepository, maxSessions int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := playback.NewService(repo, nil, config.DefaultSchedulerConfig(), &config.SessionConfig{
		IdleTimeout:   time.Minute,
		SweepInterval: time.Minute,
		MaxSessions:   maxSessions,
	}, nil)

	r := gin.New()
	Register(r.Group("/api/v1"), NewCaptionHandler(repo), NewSessionHandler(svc))
	return r
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCaptionRoutes(t *testing.T) {
	captions := []domain.Caption{{ID: "a", Text: "hello", Time: 1}}

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		setup      func(repo *domain.MockCaptionRepository)
		wantStatus int
		wantError  string
	}{
		{
			name:   "put captions",
			method: http.MethodPut,
			path:   "/api/v1/videos/v1/captions",
			body:   PutCaptionsRequest{Captions: captions},
			setup: func(repo *domain.MockCaptionRepository) {
				repo.EXPECT().SaveCaptions(gomock.Any(), "v1", captions).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "put without captions field",
			method:     http.MethodPut,
			path:       "/api/v1/videos/v1/captions",
			body:       map[string]any{},
			setup:      func(repo *domain.MockCaptionRepository) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "validation_error",
		},
		{
			name:   "put duplicate ids",
			method: http.MethodPut,
			path:   "/api/v1/videos/v1/captions",
			body:   PutCaptionsRequest{Captions: captions},
			setup: func(repo *domain.MockCaptionRepository) {
				repo.EXPECT().SaveCaptions(gomock.Any(), "v1", captions).Return(domain.ErrDuplicateCaptionID)
			},
			wantStatus: http.StatusConflict,
			wantError:  "conflict",
		},
		{
			name:   "get captions",
			method: http.MethodGet,
			path:   "/api/v1/videos/v1/captions",
			setup: func(repo *domain.MockCaptionRepository) {
				repo.EXPECT().GetCaptions(gomock.Any(), "v1").Return(captions, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "get unknown video",
			method: http.MethodGet,
			path:   "/api/v1/videos/nope/captions",
			setup: func(repo *domain.MockCaptionRepository) {
				repo.EXPECT().GetCaptions(gomock.Any(), "nope").Return(nil, domain.ErrVideoNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantError:  "not_found",
		},
		{
			name:   "delete captions",
			method: http.MethodDelete,
			path:   "/api/v1/videos/v1/captions",
			setup: func(repo *domain.MockCaptionRepository) {
				repo.EXPECT().DeleteCaptions(gomock.Any(), "v1").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "storage failure",
			method: http.MethodDelete,
			path:   "/api/v1/videos/v1/captions",
			setup: func(repo *domain.MockCaptionRepository) {
				repo.EXPECT().DeleteCaptions(gomock.Any(), "v1").Return(errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "processing_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := domain.NewMockCaptionRepository(ctrl)
			tt.setup(repo)

			w := doRequest(newTestRouter(repo, 10), tt.method, tt.path, tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantError != "" {
				var resp ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode error body: %v", err)
				}
				if resp.Error != tt.wantError {
					t.Errorf("error = %s, want %s", resp.Error, tt.wantError)
				}
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockCaptionRepository(ctrl)
	repo.EXPECT().GetCaptions(gomock.Any(), "v1").Return([]domain.Caption{
		{ID: "a", Text: "hello", Time: 0},
		{ID: "b", Text: "world", Time: 0.5},
	}, nil)

	r := newTestRouter(repo, 10)

	w := doRequest(r, http.MethodPost, "/api/v1/sessions", map[string]any{
		"video_id":        "v1",
		"container_width": 800,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("open status = %d, body %s", w.Code, w.Body.String())
	}

	var info playback.SessionInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if info.ContainerWidth != 800 || info.CaptionCount != 2 {
		t.Errorf("unexpected session info: %+v", info)
	}

	base := "/api/v1/sessions/" + info.SessionID

	w = doRequest(r, http.MethodGet, base+"/frame?t=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("frame status = %d, body %s", w.Code, w.Body.String())
	}
	var frame playback.FrameResult
	if err := json.Unmarshal(w.Body.Bytes(), &frame); err != nil {
		t.Fatalf("failed to decode frame: %v", err)
	}
	if len(frame.Captions) != 2 {
		t.Errorf("expected 2 visible captions, got %d", len(frame.Captions))
	}
	if frame.Captions[0].Track == frame.Captions[1].Track {
		t.Errorf("overlapping captions share track %d", frame.Captions[0].Track)
	}

	w = doRequest(r, http.MethodGet, base+"/frame?t=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad t status = %d, want 400", w.Code)
	}

	w = doRequest(r, http.MethodGet, base+"/frame?t=1&window=-2", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative window status = %d, want 400", w.Code)
	}

	w = doRequest(r, http.MethodPost, base+"/seek", map[string]any{"time": 100})
	if w.Code != http.StatusOK {
		t.Fatalf("seek status = %d, body %s", w.Code, w.Body.String())
	}
	var stats playback.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.Cursor != 2 || stats.CacheSize != 0 {
		t.Errorf("after seek past end cursor=%d cache=%d, want 2 and 0", stats.Cursor, stats.CacheSize)
	}

	w = doRequest(r, http.MethodPost, base+"/seek", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("seek without time status = %d, want 400", w.Code)
	}

	w = doRequest(r, http.MethodDelete, base, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("close status = %d, want 204", w.Code)
	}

	w = doRequest(r, http.MethodGet, base, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("stats after close status = %d, want 404", w.Code)
	}
}

func TestOpenSessionErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setup      func(repo *domain.MockCaptionRepository)
		wantStatus int
	}{
		{
			name:       "missing video id",
			body:       map[string]any{},
			setup:      func(repo *domain.MockCaptionRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative width",
			body:       map[string]any{"video_id": "v1", "container_width": -10},
			setup:      func(repo *domain.MockCaptionRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown video",
			body: map[string]any{"video_id": "v1"},
			setup: func(repo *domain.MockCaptionRepository) {
				repo.EXPECT().GetCaptions(gomock.Any(), "v1").Return(nil, domain.ErrVideoNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "session limit",
			body:       map[string]any{"video_id": "v1"},
			setup:      func(repo *domain.MockCaptionRepository) {},
			wantStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := domain.NewMockCaptionRepository(ctrl)
			tt.setup(repo)

			maxSessions := 10
			if tt.wantStatus == http.StatusTooManyRequests {
				maxSessions = 0
			}

			w := doRequest(newTestRouter(repo, maxSessions), http.MethodPost, "/api/v1/sessions", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
