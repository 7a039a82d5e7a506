package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookhive/internal/identity"
	"bookhive/internal/models"
	"bookhive/internal/repository"
)

type UsersHandler struct {
	Store repository.Repository
	Users *identity.Resolver
}

func (h *UsersHandler) Register(r *gin.Engine) {
	group := r.Group("/api/users")
	group.POST("", h.create)
	group.GET("/:ident", h.get)
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// @Summary Create a user
// @Tags users
// @Accept json
// @Param request body createUserRequest true "user"
// @Success 201 {object} apiResponse
// @Router /api/users [post]
func (h *UsersHandler) create(c *gin.Context) {
	if h.Store == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user := &models.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Username: strings.TrimSpace(req.Username),
	}
	if user.Email == "" || user.Username == "" {
		Error(c, http.StatusBadRequest, "email and username are required", nil)
		return
	}
	if err := h.Store.CreateUser(c.Request.Context(), user); err != nil {
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	Created(c, user)
}

// @Summary Look up a user by id, email or username
// @Tags users
// @Param ident path string true "user id, email or username"
// @Success 200 {object} apiResponse
// @Router /api/users/{ident} [get]
func (h *UsersHandler) get(c *gin.Context) {
	if h.Users == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	user, err := h.Users.Resolve(c.Request.Context(), c.Param("ident"))
	if err != nil {
		if errors.Is(err, identity.ErrUnknownUser) {
			Error(c, http.StatusNotFound, "unknown user", nil)
			return
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, user, nil)
}
