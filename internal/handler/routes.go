package handler

import "github.com/gin-gonic/gin"

// Register mounts the caption and session routes under rg.
func Register(rg *gin.RouterGroup, captions *CaptionHandler, sessions *SessionHandler) {
	videos := rg.Group("/videos/:video_id")
	{
		videos.PUT("/captions", captions.HandlePutCaptions)
		videos.GET("/captions", captions.HandleGetCaptions)
		videos.DELETE("/captions", captions.HandleDeleteCaptions)
	}

	s := rg.Group("/sessions")
	{
		s.POST("", sessions.HandleOpen)
		s.GET("/:session_id", sessions.HandleStats)
		s.GET("/:session_id/frame", sessions.HandleFrame)
		s.POST("/:session_id/seek", sessions.HandleSeek)
		s.DELETE("/:session_id", sessions.HandleClose)
	}
}
