package handler

import (
	"errors"
	"net/http"

	"scholarshub/internal/domain/user/service"
	"scholarshub/internal/pkg/middleware"
	"scholarshub/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	Name     *string  `json:"name"`
	Bio      *string  `json:"bio"`
	School   *string  `json:"school"`
	Subjects []string `json:"subjects"`
	Avatar   *string  `json:"avatar"`
}

// Register creates an account and returns a signed token.
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body RegisterInput true "Registration payload"
// @Success 201 {object} response.Response
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	profile, token, err := h.service.Register(input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, response.ErrUserExists, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Created(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":    profile.ID,
			"name":  profile.Name,
			"email": profile.Email,
		},
	})
}

// Login exchanges credentials for a token.
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body LoginInput true "Login payload"
// @Success 200 {object} response.Response
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	token, err := h.service.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthFailed) {
			response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{"token": token})
}

// Me resolves the profile behind the bearer token.
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProfileView
// @Router /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	h.respondProfile(c, middleware.UserID(c))
}

// GetUser returns a public profile.
// @Summary Get a user's profile by ID
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} service.ProfileView
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	h.respondProfile(c, c.Param("id"))
}

func (h *UserHandler) respondProfile(c *gin.Context, id string) {
	view, err := h.service.GetProfile(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, view)
}

// UpdateUser applies a partial profile update. Owner only.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	view, err := h.service.UpdateProfile(middleware.UserID(c), c.Param("id"), service.ProfileUpdate{
		Name:     input.Name,
		Bio:      input.Bio,
		School:   input.School,
		Subjects: input.Subjects,
		Avatar:   input.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, view)
}

// ToggleFollow flips the follow edge toward the target user.
// @Summary Follow or unfollow a user
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path string true "Target user ID"
// @Success 200 {object} service.FollowResult
// @Router /users/{id}/follow [post]
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	result, err := h.service.ToggleFollow(middleware.UserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			response.Error(c, http.StatusBadRequest, response.ErrSelfFollow, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, result)
}

// ToggleBookmark flips a bookmark and returns the updated list.
func (h *UserHandler) ToggleBookmark(c *gin.Context) {
	result, err := h.service.ToggleBookmark(middleware.UserID(c), c.Param("postId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, result)
}

// SearchUsers matches on name or school.
// @Summary Search users by name or school
// @Tags User
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} service.UserSummary
// @Router /users/search/find [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	results, err := h.service.Search(c.Query("q"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, results)
}
