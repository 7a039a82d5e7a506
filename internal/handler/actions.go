package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookhive/internal/identity"
	"bookhive/internal/service"
)

type ActionsHandler struct {
	Prefs  *service.PreferenceService
	Users  *identity.Resolver
	Logger *zap.Logger
}

func (h *ActionsHandler) Register(r *gin.Engine) {
	r.POST("/api/actions", h.record)
	r.GET("/api/preferences", h.listPreferences)
}

type actionRequest struct {
	User   string `json:"user"`
	BookID string `json:"book_id" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// @Summary Record a user action on a book
// @Tags preferences
// @Accept json
// @Param request body actionRequest true "action"
// @Success 200 {object} apiResponse
// @Router /api/actions [post]
func (h *ActionsHandler) record(c *gin.Context) {
	if h.Prefs == nil || h.Users == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user, err := h.Users.Resolve(c.Request.Context(), userIdent(c, req.User))
	if err != nil {
		if errors.Is(err, identity.ErrUnknownUser) {
			Error(c, http.StatusNotFound, "unknown user", nil)
			return
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if err := h.Prefs.RecordAction(c.Request.Context(), user.ID, req.BookID, req.Action); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("record action failed",
				zap.String("user_id", user.ID),
				zap.String("book_id", req.BookID),
				zap.String("action", req.Action),
				zap.Error(err))
		}
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"user_id": user.ID, "book_id": req.BookID, "action": req.Action}, nil)
}

// @Summary List the acting user's genre and author preferences
// @Tags preferences
// @Param user query string false "acting user (falls back to X-User header)"
// @Success 200 {object} apiResponse
// @Router /api/preferences [get]
func (h *ActionsHandler) listPreferences(c *gin.Context) {
	if h.Prefs == nil || h.Prefs.Store == nil || h.Users == nil {
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
	genres, err := h.Prefs.Store.ListGenrePreferences(c.Request.Context(), user.ID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	authors, err := h.Prefs.Store.ListAuthorPreferences(c.Request.Context(), user.ID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"genres": genres, "authors": authors}, nil)
}
