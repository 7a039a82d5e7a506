package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookhive/internal/identity"
	"bookhive/internal/service"
)

type CollectionsHandler struct {
	Collections *service.CollectionService
	Users       *identity.Resolver
	Logger      *zap.Logger
}

func (h *CollectionsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/collections")
	group.POST("", h.create)
	group.GET("/:id", h.get)
	group.POST("/:id/books", h.addBook)
}

type createCollectionRequest struct {
	User        string  `json:"user"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// @Summary Create a collection
// @Tags collections
// @Accept json
// @Param request body createCollectionRequest true "collection"
// @Success 201 {object} apiResponse
// @Router /api/collections [post]
func (h *CollectionsHandler) create(c *gin.Context) {
	if h.Collections == nil || h.Users == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req createCollectionRequest
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
	coll, err := h.Collections.Create(c.Request.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	Created(c, coll)
}

// @Summary Get a collection with its books
// @Tags collections
// @Param id path string true "collection id"
// @Success 200 {object} apiResponse
// @Router /api/collections/{id} [get]
func (h *CollectionsHandler) get(c *gin.Context) {
	if h.Collections == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	view, err := h.Collections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if view == nil {
		Error(c, http.StatusNotFound, "collection not found", nil)
		return
	}
	Ok(c, view, nil)
}

type addCollectionBookRequest struct {
	BookID string `json:"book_id" binding:"required"`
}

// @Summary Add a book to a collection
// @Tags collections
// @Accept json
// @Param id path string true "collection id"
// @Param request body addCollectionBookRequest true "book"
// @Success 200 {object} apiResponse
// @Router /api/collections/{id}/books [post]
func (h *CollectionsHandler) addBook(c *gin.Context) {
	if h.Collections == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req addCollectionBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Collections.AddBook(c.Request.Context(), c.Param("id"), req.BookID); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("add collection book failed",
				zap.String("collection_id", c.Param("id")),
				zap.String("book_id", req.BookID),
				zap.Error(err))
		}
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"collection_id": c.Param("id"), "book_id": req.BookID}, nil)
}
