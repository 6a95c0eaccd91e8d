package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kanairy_backend/internal/api"
	"kanairy_backend/internal/feature/news/domain/entity"
)

// NewsUsecase is the news feed interface the handler depends on.
type NewsUsecase interface {
	List(ctx context.Context, category string, limit int) ([]entity.Article, error)
	Create(ctx context.Context, a *entity.Article) error
}

// CreateArticleRequest is the body of POST /api/news.
type CreateArticleRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Source   string `json:"source"`
	ImageURL string `json:"image_url"`
}

// ArticleResponse is one article in the news feed response.
type ArticleResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Source      string `json:"source"`
	ImageURL    string `json:"image_url,omitempty"`
	PublishedAt string `json:"published_at"`
}

// NewsListResponse is the response of GET /api/news.
type NewsListResponse struct {
	News  []ArticleResponse `json:"news"`
	Count int               `json:"count"`
}

// NewsHandler serves the market news feed.
type NewsHandler struct {
	uc NewsUsecase
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(uc NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// List handles GET /api/news.
func (h *NewsHandler) List(c *gin.Context) {
	category := c.Query("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	articles, err := h.uc.List(c.Request.Context(), category, limit)
	if err != nil {
		slog.Error("failed to list news", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch news"})
		return
	}

	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, ArticleResponse{
			ID:          a.ID,
			Title:       a.Title,
			Content:     a.Content,
			Category:    a.Category,
			Source:      a.Source,
			ImageURL:    a.ImageURL,
			PublishedAt: a.PublishedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, NewsListResponse{News: out, Count: len(out)})
}

// Create handles POST /api/news.
func (h *NewsHandler) Create(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	a := entity.Article{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Source:   req.Source,
		ImageURL: req.ImageURL,
	}
	if err := h.uc.Create(c.Request.Context(), &a); err != nil {
		slog.Error("failed to create article", "title", req.Title, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create article"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": a.ID, "success": true})
}
