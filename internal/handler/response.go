package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/danmaku-lane-scheduler/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, ErrorResponse{
		Error:   errType,
		Message: message,
	})
}

// respondDomainError maps service errors onto HTTP status codes.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrVideoNotFound), errors.Is(err, domain.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrDuplicateCaptionID):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrSessionLimitReached):
		respondError(c, http.StatusTooManyRequests, "session_limit", err.Error())
	case errors.Is(err, domain.ErrInvalidCaption),
		errors.Is(err, domain.ErrInvalidContainerWidth),
		errors.Is(err, domain.ErrInvalidPlaybackTime),
		errors.Is(err, domain.ErrInvalidTimeWindow):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "request processing failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "internal server error")
	}
}
