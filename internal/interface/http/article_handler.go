package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/okisetiana/blog-api/internal/application"
	"github.com/okisetiana/blog-api/internal/domain/query"
	"github.com/okisetiana/blog-api/internal/interface/middleware"
	"github.com/okisetiana/blog-api/pkg/response"
	"github.com/okisetiana/blog-api/pkg/validation"
)

type ArticleHandler struct {
	Svc    *application.ArticleService
	Logger *logrus.Logger
}

func NewArticleHandler(svc *application.ArticleService, logger *logrus.Logger) *ArticleHandler {
	return &ArticleHandler{Svc: svc, Logger: logger}
}

type articleRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=500"`
	Content     string     `json:"content"`
	Category    *string    `json:"category"`
	Tags        *string    `json:"tags"`
	PublishedAt *time.Time `json:"published_at"` // null = draft; future = scheduled
	Featured    *bool      `json:"featured"`
	Pinned      *bool      `json:"pinned"`
}

func (r *articleRequest) toInput() application.ArticleInput {
	return application.ArticleInput{
		Title:       r.Title,
		Content:     r.Content,
		Category:    r.Category,
		Tags:        r.Tags,
		PublishedAt: r.PublishedAt,
		Featured:    r.Featured,
		Pinned:      r.Pinned,
	}
}

const dateLayout = "2006-01-02"

// List handles GET /articles. All filter parameters are optional; absent
// ones contribute nothing to the query.
func (h *ArticleHandler) List(c *gin.Context) {
	p := query.Params{
		Keyword:       c.Query("keyword"),
		Sort:          c.Query("sort"),
		Order:         c.DefaultQuery("order", "desc"),
		Category:      c.Query("category"),
		PublishedOnly: queryBool(c, "publishedOnly", true),
		Featured:      queryBool(c, "featured", false),
		Pinned:        queryBool(c, "pinned", false),
		Page:          queryInt(c, "page", 0),
		Size:          queryInt(c, "size", query.DefaultPageSize),
	}
	if v := c.Query("authorId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid authorId", nil)
			return
		}
		p.AuthorID = id
	}
	if tags := strings.TrimSpace(c.Query("tags")); tags != "" {
		p.Tags = strings.Split(tags, ",")
	}
	if v := c.Query("dateFrom"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid dateFrom", nil)
			return
		}
		p.DateFrom = &t
	}
	if v := c.Query("dateTo"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid dateTo", nil)
			return
		}
		// inclusive through the end of the given day
		end := t.Add(24*time.Hour - time.Nanosecond)
		p.DateTo = &end
	}

	items, total, err := h.Svc.List(c.Request.Context(), p)
	if err != nil {
		h.Logger.WithError(err).Error("article list failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list articles", nil)
		return
	}

	size := p.Size
	if size <= 0 {
		size = query.DefaultPageSize
	}
	totalPages := (total + int64(size) - 1) / int64(size)
	response.Success(c, http.StatusOK, items, "articles", gin.H{
		"page":           p.Page,
		"size":           size,
		"total_elements": total,
		"total_pages":    totalPages,
	})
}

// Categories handles GET /articles/categories.
func (h *ArticleHandler) Categories(c *gin.Context) {
	cats, err := h.Svc.Categories(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("category list failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list categories", nil)
		return
	}
	response.Success(c, http.StatusOK, cats, "categories", nil)
}

// Get handles GET /articles/:id. Hidden articles answer 404, never 403.
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.Svc.Get(c.Request.Context(), id, middleware.PrincipalFrom(c))
	if err != nil {
		h.writeArticleError(c, err, "fetch")
		return
	}
	response.Success(c, http.StatusOK, a, "article", nil)
}

// Create handles POST /articles.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), middleware.PrincipalFrom(c), req.toInput())
	if err != nil {
		h.writeArticleError(c, err, "create")
		return
	}
	response.Success(c, http.StatusCreated, a, "article created", nil)
}

// Update handles PUT /articles/:id.
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), id, middleware.PrincipalFrom(c), req.toInput())
	if err != nil {
		h.writeArticleError(c, err, "update")
		return
	}
	response.Success(c, http.StatusOK, a, "article updated", nil)
}

// Delete handles DELETE /articles/:id.
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, middleware.PrincipalFrom(c)); err != nil {
		h.writeArticleError(c, err, "delete")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "article deleted", nil)
}

func (h *ArticleHandler) writeArticleError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, application.ErrArticleNotFound):
		response.Error[any](c, http.StatusNotFound, "article not found", nil)
	case errors.Is(err, application.ErrPermissionDenied):
		response.Error[any](c, http.StatusForbidden, "insufficient permissions", nil)
	default:
		h.Logger.WithError(err).WithField("op", op).Error("article operation failed")
		response.Error[any](c, http.StatusInternalServerError, "unexpected error", nil)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid article id", nil)
		return 0, false
	}
	return id, true
}

func queryBool(c *gin.Context, name string, def bool) bool {
	v := c.Query(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
