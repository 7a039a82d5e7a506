package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookhive/internal/config"
	"bookhive/internal/repository"
	"bookhive/internal/service"
)

type CatalogHandler struct {
	Sync    *service.CatalogSyncService
	Query   *service.CatalogQueryService
	Sources []config.ScrapeSourceConfig
	Logger  *zap.Logger
}

func (h *CatalogHandler) Register(r *gin.Engine) {
	group := r.Group("/api/catalog")
	group.POST("/sync", h.runSync)
	group.GET("/sync-state", h.listSyncState)
	group.GET("/books", h.listBooks)
	group.GET("/books/:external_id", h.getBook)
	group.GET("/authors", h.listAuthors)
	group.GET("/genres", h.listGenres)
}

// @Summary Run catalog sync
// @Tags catalog
// @Param source query string false "scrape source name (all configured sources when omitted)"
// @Success 200 {object} apiResponse
// @Router /api/catalog/sync [post]
func (h *CatalogHandler) runSync(c *gin.Context) {
	if h.Sync == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	name := strings.TrimSpace(c.Query("source"))
	sources := h.Sources
	if name != "" {
		sources = nil
		for _, src := range h.Sources {
			if src.Name == name {
				sources = []config.ScrapeSourceConfig{src}
				break
			}
		}
		if len(sources) == 0 {
			Error(c, http.StatusNotFound, "unknown scrape source", nil)
			return
		}
	}

	results := make([]service.SyncOutcome, 0, len(sources))
	skipped := 0
	for _, src := range sources {
		outcome, err := h.Sync.Run(c.Request.Context(), src)
		if errors.Is(err, service.ErrClaimHeld) || errors.Is(err, service.ErrAttemptsExhausted) {
			skipped++
			continue
		}
		if err != nil {
			if h.Logger != nil {
				h.Logger.Warn("catalog sync failed", zap.String("source", src.Name), zap.Error(err))
			}
			Error(c, http.StatusBadGateway, err.Error(), map[string]any{"source": src.Name})
			return
		}
		results = append(results, outcome)
	}
	Ok(c, results, map[string]any{"claim_skipped": skipped})
}

// @Summary List sync states
// @Tags catalog
// @Success 200 {object} apiResponse
// @Router /api/catalog/sync-state [get]
func (h *CatalogHandler) listSyncState(c *gin.Context) {
	if h.Sync == nil || h.Sync.Store == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	states, err := h.Sync.Store.ListScrapeStates(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list sync state failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, states, nil)
}

// @Summary List books
// @Tags catalog
// @Param search query string false "title substring"
// @Param language query string false "language code"
// @Param genre query string false "genre key"
// @Param author query string false "author key"
// @Param min_year query int false "min publish year"
// @Param max_year query int false "max publish year"
// @Param order_by query string false "title|publish_year|rating|ratings_count|created_at"
// @Param ascending query bool false "ascending order"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/catalog/books [get]
func (h *CatalogHandler) listBooks(c *gin.Context) {
	if h.Query == nil || h.Query.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	params := repository.ListBooksParams{
		Search:    strings.TrimSpace(c.Query("search")),
		Language:  strQueryPtr(c, "language"),
		GenreKey:  strQueryPtr(c, "genre"),
		AuthorKey: strQueryPtr(c, "author"),
		MinYear:   intQueryPtr(c, "min_year"),
		MaxYear:   intQueryPtr(c, "max_year"),
		OrderBy: parseOrder(c.Query("order_by"), map[string]string{
			"title":         "title",
			"publish_year":  "publish_year",
			"rating":        "rating",
			"ratings_count": "ratings_count",
			"created_at":    "created_at",
		}),
		Asc:    boolQueryDefault(c, "ascending", false),
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
	}

	page, err := h.Query.ListBooks(c.Request.Context(), params)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list books failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, page.Items, paginationMeta(params.Limit, params.Offset, page.Total))
}

// @Summary Get a book by external id
// @Tags catalog
// @Param external_id path string true "upstream external id"
// @Success 200 {object} apiResponse
// @Router /api/catalog/books/{external_id} [get]
func (h *CatalogHandler) getBook(c *gin.Context) {
	if h.Query == nil || h.Query.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	book, err := h.Query.GetBook(c.Request.Context(), c.Param("external_id"))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if book == nil {
		Error(c, http.StatusNotFound, "book not found", nil)
		return
	}
	Ok(c, book, nil)
}

// @Summary List authors
// @Tags catalog
// @Param search query string false "name substring"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/catalog/authors [get]
func (h *CatalogHandler) listAuthors(c *gin.Context) {
	if h.Query == nil || h.Query.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	items, err := h.Query.ListAuthors(c.Request.Context(), repository.ListNamedParams{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  intQuery(c, "limit", 100),
		Offset: intQuery(c, "offset", 0),
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary List genres
// @Tags catalog
// @Param search query string false "name substring"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/catalog/genres [get]
func (h *CatalogHandler) listGenres(c *gin.Context) {
	if h.Query == nil || h.Query.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	items, err := h.Query.ListGenres(c.Request.Context(), repository.ListNamedParams{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  intQuery(c, "limit", 100),
		Offset: intQuery(c, "offset", 0),
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func intQueryPtr(c *gin.Context, key string) *int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return &i
		}
	}
	return nil
}

func boolQueryDefault(c *gin.Context, key string, def bool) bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func parseOrder(value string, allow map[string]string) string {
	key := strings.TrimSpace(strings.ToLower(value))
	if key == "" {
		return ""
	}
	if mapped, ok := allow[key]; ok {
		return mapped
	}
	return ""
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	hasNext := int64(offset+limit) < total
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": hasNext,
	}
}
