package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fridgeagent/internal/service/assistant"
)

// AssistantHandler handles the AI-backed endpoints: chat, photo scans and
// recipe suggestions.
type AssistantHandler struct {
	svc    *assistant.Service
	logger *zap.Logger
}

// NewAssistantHandler constructs the HTTP handler adapter.
func NewAssistantHandler(svc *assistant.Service, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{svc: svc, logger: logger}
}

type chatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type snapRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
	MimeType    string `json:"mime_type" binding:"required"`
}

// Chat runs one assistant turn for a session.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.svc.Chat(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		h.respondError(c, err, "chat request failed")
		return
	}

	c.JSON(http.StatusOK, reply)
}

// Snap parses a fridge photo and bulk-imports the recognized items.
func (h *AssistantHandler) Snap(c *gin.Context) {
	var req snapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid snap payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.ImportScan(c.Request.Context(), req.ImageBase64, req.MimeType)
	if err != nil {
		h.respondError(c, err, "fridge scan failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Recipes returns AI recipe suggestions for the current pantry.
func (h *AssistantHandler) Recipes(c *gin.Context) {
	recipes, err := h.svc.Recipes(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "recipe generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *AssistantHandler) respondError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, assistant.ErrDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai assistant is not configured"})
		return
	}
	h.logger.Error(fallback, zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
}
