package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookhive/internal/identity"
	"bookhive/internal/recommend"
	"bookhive/internal/repository"
)

type RecommendationsHandler struct {
	Generator *recommend.Generator
	Store     repository.Repository
	Users     *identity.Resolver
	Logger    *zap.Logger
}

func (h *RecommendationsHandler) Register(r *gin.Engine) {
	r.GET("/api/recommendations", h.list)
	r.GET("/api/recommendations/latest", h.latest)
}

// @Summary Generate recommendations for the acting user
// @Tags recommendations
// @Param user query string false "acting user (falls back to X-User header)"
// @Param limit query int false "limit"
// @Success 200 {object} apiResponse
// @Router /api/recommendations [get]
func (h *RecommendationsHandler) list(c *gin.Context) {
	if h.Generator == nil || h.Users == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	user, err := h.Users.Resolve(c.Request.Context(), userIdent(c, ""))
	if err != nil {
		if errors.Is(err, identity.ErrUnknownUser) {
			Error(c, http.StatusNotFound, "unknown user", nil)
			return
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	limit := intQuery(c, "limit", 20)
	items, err := h.Generator.Generate(c.Request.Context(), user.ID, limit)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("recommendation generation failed",
				zap.String("user_id", user.ID),
				zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

// latest serves the last persisted batch without rescoring.
//
// @Summary Get the last persisted recommendation batch
// @Tags recommendations
// @Param user query string false "acting user (falls back to X-User header)"
// @Param limit query int false "limit"
// @Success 200 {object} apiResponse
// @Router /api/recommendations/latest [get]
func (h *RecommendationsHandler) latest(c *gin.Context) {
	if h.Store == nil || h.Users == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	user, err := h.Users.Resolve(c.Request.Context(), userIdent(c, ""))
	if err != nil {
		if errors.Is(err, identity.ErrUnknownUser) {
			Error(c, http.StatusNotFound, "unknown user", nil)
			return
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	items, err := h.Store.ListRecommendations(c.Request.Context(), user.ID, intQuery(c, "limit", 20))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}
