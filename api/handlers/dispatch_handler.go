package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/mediagrab/internal/app"
	"github.com/yourusername/mediagrab/internal/domain"
	"go.uber.org/zap"
)

// DispatchHandler handles dispatch-related HTTP requests
type DispatchHandler struct {
	dispatcher *app.Dispatcher
	logger     *zap.Logger
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(dispatcher *app.Dispatcher, logger *zap.Logger) *DispatchHandler {
	return &DispatchHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// DispatchRequest represents a request to dispatch a URL
type DispatchRequest struct {
	URL      string            `json:"url" binding:"required"`
	Platform string            `json:"platform,omitempty"`
	Options  map[string]string `json:"options,omitempty"`
}

// DispatchResponse represents a completed dispatch
type DispatchResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
	MediaID  string `json:"media_id"`
	State    string `json:"state"`
	FilePath string `json:"file_path,omitempty"`
}

// Dispatch handles POST /api/v1/dispatch. The download runs synchronously
// within the request; this server fronts a one-shot tool, not a queue.
func (h *DispatchHandler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), req.URL, app.DispatchOptions{
		PlatformKey: req.Platform,
		Overrides:   req.Options,
	})
	if err != nil {
		h.logger.Warn("Dispatch request failed",
			zap.String("url", req.URL),
			zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, DispatchResponse{
		ID:       result.ID,
		URL:      result.SourceURL,
		Platform: result.Platform,
		MediaID:  result.MediaID,
		State:    string(result.State),
		FilePath: result.FilePath,
	})
}

// ListPlatforms handles GET /api/v1/platforms
func (h *DispatchHandler) ListPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"platforms": h.dispatcher.Platforms()})
}

// ListFormats handles GET /api/v1/formats?url=...&platform=...
func (h *DispatchHandler) ListFormats(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	formats, err := h.dispatcher.ListFormats(c.Request.Context(), rawURL, c.Query("platform"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.String(http.StatusOK, formats)
}

// statusFor maps the error taxonomy to HTTP status codes without
// altering the error kind.
func statusFor(err error) int {
	var (
		unknown     *domain.UnknownPlatformError
		unsupported *domain.UnsupportedURLError
		noMedia     *domain.NoMediaFoundError
		engine      *domain.EngineError
	)
	switch {
	case errors.As(err, &unknown), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &noMedia):
		return http.StatusNotFound
	case errors.As(err, &engine):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
