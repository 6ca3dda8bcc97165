package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceName is reported by the health check
const ServiceName = "beautyai-backend"

// ProductSearcher runs product searches
type ProductSearcher interface {
	Search(ctx context.Context, request domain.SearchRequest) (*domain.SearchResult, error)
}

// ChatResponder answers chat messages
type ChatResponder interface {
	Chat(ctx context.Context, request domain.ChatRequest) (*domain.ChatResponse, error)
}

// ProductGenerator produces synthetic products for a category
type ProductGenerator interface {
	Generate(ctx context.Context, request domain.GenerateRequest) (*domain.GenerateResult, error)
}

// CatalogInfo describes the local catalog
type CatalogInfo interface {
	Len() int
	Categories() []domain.CategoryCount
	Aliases() map[string][]string
}

// Services groups the use cases the handler serves. Nil entries answer 503.
type Services struct {
	Search   ProductSearcher
	Chat     ChatResponder
	Generate ProductGenerator
	Catalog  CatalogInfo
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	services Services
	version  string
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler creates a new HTTP handler
func NewHandler(services Services, version string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if version == "" {
		version = "1.0.0"
	}
	return &Handler{
		services: services,
		version:  version,
		logger:   logger,
		now:      time.Now,
	}
}

// chatRequestBody is the JSON body for chat requests
type chatRequestBody struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

// generateRequestBody is the JSON body for generate requests
type generateRequestBody struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Query    string `json:"query"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	count := 0
	if h.services.Catalog != nil {
		count = h.services.Catalog.Len()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       ServiceName,
		"version":       h.version,
		"productsCount": count,
		"timestamp":     h.now().UTC().Format(time.RFC3339),
	})
}

// SearchProducts handles GET /api/products/search?q=&category=&page=&limit=
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.services.Search == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody("product search not configured"))
		return
	}

	page, err := intQuery(c, "page")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("page must be an integer"))
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("limit must be an integer"))
		return
	}

	result, err := h.services.Search.Search(c.Request.Context(), domain.SearchRequest{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.handleError(c, "search", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"query":      result.Query,
		"products":   result.Products,
		"stats":      result.Stats,
		"pagination": result.Pagination,
	})
}

// Chat handles POST /api/chat
func (h *Handler) Chat(c *gin.Context) {
	if h.services.Chat == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody("chat not configured"))
		return
	}

	var body chatRequestBody
	if !h.bindJSON(c, &body) {
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		c.JSON(http.StatusBadRequest, errorBody("message is required"))
		return
	}

	resp, err := h.services.Chat.Chat(c.Request.Context(), domain.ChatRequest{
		Message: body.Message,
		Context: body.Context,
	})
	if err != nil {
		h.handleError(c, "chat", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": resp.Response,
		"provider": resp.Provider,
		"products": resp.Products,
	})
}

// GenerateProducts handles POST /api/products/generate
func (h *Handler) GenerateProducts(c *gin.Context) {
	if h.services.Generate == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody("product generation not configured"))
		return
	}

	var body generateRequestBody
	if !h.bindJSON(c, &body) {
		return
	}
	if strings.TrimSpace(body.Category) == "" {
		c.JSON(http.StatusBadRequest, errorBody("category is required"))
		return
	}

	result, err := h.services.Generate.Generate(c.Request.Context(), domain.GenerateRequest{
		Category: body.Category,
		Count:    body.Count,
		Query:    body.Query,
	})
	if err != nil {
		h.handleError(c, "generate", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": result.Products,
		"count":    len(result.Products),
		"category": result.Category,
		"source":   result.Source,
	})
}

// Categories handles GET /api/categories
func (h *Handler) Categories(c *gin.Context) {
	if h.services.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody("catalog not configured"))
		return
	}

	categories := h.services.Catalog.Categories()
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
		"aliases":    h.services.Catalog.Aliases(),
		"total":      h.services.Catalog.Len(),
	})
}

// bindJSON decodes the request body, answering 413 or 400 itself on failure
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, errorBody("request body too large"))
		return false
	}
	c.JSON(http.StatusBadRequest, errorBody("invalid JSON body"))
	return false
}

// handleError maps use case errors to HTTP responses. Unexpected errors are
// logged and answered with a generic message.
func (h *Handler) handleError(c *gin.Context, operation string, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, errorBody("too many requests, please try again later"))
	case errors.Is(err, domain.ErrRequestTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		h.logger.Warn("request timed out", zap.String("operation", operation), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, errorBody("request timed out, please try again"))
	default:
		h.logger.Error("request failed", zap.String("operation", operation), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody("internal server error"))
	}
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func errorBody(message string) gin.H {
	return gin.H{"success": false, "error": message}
}
