package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/service/playback"
)

type SessionHandler struct {
	playbackService *playback.Service
}

func NewSessionHandler(playbackService *playback.Service) *SessionHandler {
	return &SessionHandler{
		playbackService: playbackService,
	}
}

type OpenSessionRequest struct {
	VideoID        string   `json:"video_id" binding:"required"`
	ContainerWidth *float64 `json:"container_width"`
}

type SeekRequest struct {
	Time *float64 `json:"time" binding:"required"`
}

func (h *SessionHandler) HandleOpen(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	width := h.playbackService.DefaultContainerWidth()
	if req.ContainerWidth != nil {
		width = *req.ContainerWidth
	}

	info, err := h.playbackService.Open(c.Request.Context(), req.VideoID, width)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, info)
}

func (h *SessionHandler) HandleStats(c *gin.Context) {
	stats, err := h.playbackService.Stats(c.Param("session_id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HandleFrame serves GET .../frame?t=<seconds>[&window=<seconds>].
func (h *SessionHandler) HandleFrame(c *gin.Context) {
	t, err := strconv.ParseFloat(c.Query("t"), 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "query parameter t must be a number of seconds")
		return
	}

	var window *float64
	if raw := c.Query("window"); raw != "" {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "query parameter window must be a number of seconds")
			return
		}
		window = &w
	}

	frame, err := h.playbackService.Frame(c.Request.Context(), c.Param("session_id"), t, window)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, frame)
}

func (h *SessionHandler) HandleSeek(c *gin.Context) {
	var req SeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	sessionID := c.Param("session_id")
	if err := h.playbackService.Seek(c.Request.Context(), sessionID, *req.Time); err != nil {
		respondDomainError(c, err)
		return
	}

	stats, err := h.playbackService.Stats(sessionID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *SessionHandler) HandleClose(c *gin.Context) {
	if err := h.playbackService.Close(c.Request.Context(), c.Param("session_id")); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
