package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

type CaptionHandler struct {
	captionRepo domain.CaptionRepository
}

func NewCaptionHandler(captionRepo domain.CaptionRepository) *CaptionHandler {
	return &CaptionHandler{
		captionRepo: captionRepo,
	}
}

type PutCaptionsRequest struct {
	Captions []domain.Caption `json:"captions" binding:"required"`
}

type CaptionsResponse struct {
	VideoID  string           `json:"video_id"`
	Count    int              `json:"count"`
	Captions []domain.Caption `json:"captions,omitempty"`
}

// HandlePutCaptions replaces every caption of a video. Captions may arrive in
// any order; they are stored sorted by time.
func (h *CaptionHandler) HandlePutCaptions(c *gin.Context) {
	ctx := c.Request.Context()
	videoID := c.Param("video_id")

	var req PutCaptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "request unmarshal failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.captionRepo.SaveCaptions(ctx, videoID, req.Captions); err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(ctx, "captions replaced",
		slog.String("event", "captions.put"),
		slog.String("video_id", videoID),
		slog.Int("count", len(req.Captions)),
	)

	c.JSON(http.StatusOK, CaptionsResponse{
		VideoID: videoID,
		Count:   len(req.Captions),
	})
}

func (h *CaptionHandler) HandleGetCaptions(c *gin.Context) {
	ctx := c.Request.Context()
	videoID := c.Param("video_id")

	captions, err := h.captionRepo.GetCaptions(ctx, videoID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, CaptionsResponse{
		VideoID:  videoID,
		Count:    len(captions),
		Captions: captions,
	})
}

func (h *CaptionHandler) HandleDeleteCaptions(c *gin.Context) {
	ctx := c.Request.Context()
	videoID := c.Param("video_id")

	if err := h.captionRepo.DeleteCaptions(ctx, videoID); err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(ctx, "captions deleted",
		slog.String("event", "captions.delete"),
		slog.String("video_id", videoID),
	)

	c.Status(http.StatusNoContent)
}
