package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dupefinder/backend/internal/domain"
	"github.com/dupefinder/backend/internal/infrastructure/openai"
	"github.com/dupefinder/backend/internal/usecase"
)

// Query parameter bounds, matching the provider's limits
const (
	minQueryLength = 2
	maxQueryLength = 256
	maxResultLimit = 20
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	dupeService *usecase.DupeService
	chatClient  *openai.Client
}

// NewHandler creates a new HTTP handler. chatClient may be nil, in which
// case the chat endpoint reports itself unconfigured.
func NewHandler(dupeService *usecase.DupeService, chatClient *openai.Client) *Handler {
	return &Handler{
		dupeService: dupeService,
		chatClient:  chatClient,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dupefinder-backend",
		"version": "1.0.0",
	})
}

// Search handles normalized shopping search requests
func (h *Handler) Search(c *gin.Context) {
	query, maxResults, ok := h.searchParams(c)
	if !ok {
		return
	}

	results, err := h.dupeService.SearchNormalized(c.Request.Context(), query, maxResults)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": results,
	})
}

// FindDupes handles ranked dupe search requests
func (h *Handler) FindDupes(c *gin.Context) {
	query, maxResults, ok := h.searchParams(c)
	if !ok {
		return
	}

	items, err := h.dupeService.FindDupes(c.Request.Context(), query, maxResults)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query": query,
		"items": items,
	})
}

// chatRequest is the chat demo request body
type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat handles the chat demo endpoint
func (h *Handler) Chat(c *gin.Context) {
	if h.chatClient == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "chat is not configured (set DUPEFINDER_OPENAI_API_KEY)",
		})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.chatClient.Chat(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "chat provider temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// searchParams validates the shared q / max_results query parameters.
// Writes the error response itself and returns ok=false on failure.
func (h *Handler) searchParams(c *gin.Context) (string, int, bool) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < minQueryLength || len(query) > maxQueryLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "q must be between 2 and 256 characters",
		})
		return "", 0, false
	}

	maxResults := 0
	if raw := c.Query("max_results"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxResultLimit {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "max_results must be between 1 and 20",
			})
			return "", 0, false
		}
		maxResults = parsed
	}

	return query, maxResults, true
}

// writeServiceError maps pipeline errors onto HTTP statuses
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})
	case errors.Is(err, domain.ErrMissingAPIKey):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search provider is not configured"})
	case errors.Is(err, domain.ErrProviderFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "search provider temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
