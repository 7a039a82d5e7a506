package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookhive/internal/identity"
	"bookhive/internal/service"
)

type RatingsHandler struct {
	Ratings *service.RatingService
	Users   *identity.Resolver
	Logger  *zap.Logger
}

func (h *RatingsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/rateables")
	group.PUT("/:kind/:id/rating", h.rate)
	group.DELETE("/:kind/:id/rating", h.unrate)
}

type rateRequest struct {
	User  string `json:"user"`
	Value int    `json:"value" binding:"required"`
}

// @Summary Rate a book or collection
// @Tags ratings
// @Accept json
// @Param kind path string true "rateable kind (book|collection)"
// @Param id path string true "entity id"
// @Param request body rateRequest true "rating"
// @Success 200 {object} apiResponse
// @Router /api/rateables/{kind}/{id}/rating [put]
func (h *RatingsHandler) rate(c *gin.Context) {
	if h.Ratings == nil || h.Users == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user, err := h.Users.Resolve(c.Request.Context(), userIdent(c, req.User))
	if err != nil {
		h.userError(c, err)
		return
	}
	kind, entityID := c.Param("kind"), c.Param("id")
	if err := h.Ratings.Rate(c.Request.Context(), user.ID, kind, entityID, req.Value); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("rate failed",
				zap.String("user_id", user.ID),
				zap.String("entity_id", entityID),
				zap.Error(err))
		}
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"user_id": user.ID, "entity_kind": kind, "entity_id": entityID, "value": req.Value}, nil)
}

// @Summary Remove a rating
// @Tags ratings
// @Param kind path string true "rateable kind (book|collection)"
// @Param id path string true "entity id"
// @Param user query string false "acting user (falls back to X-User header)"
// @Success 200 {object} apiResponse
// @Router /api/rateables/{kind}/{id}/rating [delete]
func (h *RatingsHandler) unrate(c *gin.Context) {
	if h.Ratings == nil || h.Users == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	user, err := h.Users.Resolve(c.Request.Context(), userIdent(c, ""))
	if err != nil {
		h.userError(c, err)
		return
	}
	kind, entityID := c.Param("kind"), c.Param("id")
	if err := h.Ratings.Unrate(c.Request.Context(), user.ID, kind, entityID); err != nil {
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"user_id": user.ID, "entity_kind": kind, "entity_id": entityID}, nil)
}

func (h *RatingsHandler) userError(c *gin.Context, err error) {
	if errors.Is(err, identity.ErrUnknownUser) {
		Error(c, http.StatusNotFound, "unknown user", nil)
		return
	}
	Error(c, http.StatusBadGateway, err.Error(), nil)
}

// userIdent picks the acting user's identifier: explicit body field first,
// then the user query param, then the X-User header.
func userIdent(c *gin.Context, explicit string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if v := strings.TrimSpace(c.Query("user")); v != "" {
		return v
	}
	return strings.TrimSpace(c.GetHeader("X-User"))
}
