package handler

import (
	"errors"
	"net/http"

	"scholarshub/internal/domain/post/repository"
	"scholarshub/internal/domain/post/service"
	"scholarshub/internal/pkg/middleware"
	"scholarshub/pkg/response"
	"scholarshub/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts service.PostService
	feed  service.FeedService
}

func NewPostHandler(posts service.PostService, feed service.FeedService) *PostHandler {
	return &PostHandler{posts: posts, feed: feed}
}

type CommentInput struct {
	Text string `json:"text" binding:"required"`
}

type ReportInput struct {
	Reason string `json:"reason"`
}

// GetFeed returns the viewer's home feed page.
// @Summary Home feed
// @Tags Post
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} service.FeedResponse
// @Router /posts [get]
func (h *PostHandler) GetFeed(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)

	feed, err := h.feed.GetFeed(middleware.UserID(c), p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, feed)
}

// Explore returns a globally-scoped, filterable page of posts.
// @Summary Explore posts
// @Tags Post
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param subject query string false "Subject filter"
// @Param type query string false "Type filter"
// @Param search query string false "Free-text search"
// @Success 200 {object} service.ExploreResponse
// @Router /posts/explore [get]
func (h *PostHandler) Explore(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)

	result, err := h.feed.Explore(p.Page, p.Limit, repository.ExploreFilter{
		Subject: c.Query("subject"),
		Type:    c.Query("type"),
		Search:  c.Query("search"),
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, result)
}

// GetPost returns a single post with its full comment thread.
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.posts.GetPost(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, post)
}

// CreatePost publishes a new study material.
// @Summary Create a post
// @Tags Post
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.CreatePostInput true "Post payload"
// @Success 201 {object} service.ShapedPost
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input service.CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.posts.CreatePost(middleware.UserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPost), errors.Is(err, service.ErrInvalidYoutube):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		case errors.Is(err, service.ErrSchemaNotReady):
			response.Error(c, http.StatusServiceUnavailable, response.ErrSchemaNotReady, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Created(c, post)
}

// DeletePost removes an owned post and all rows referencing it.
func (h *PostHandler) DeletePost(c *gin.Context) {
	err := h.posts.DeletePost(middleware.UserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, gin.H{"message": "post deleted"})
}

// ToggleLike flips the like state for the current user.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	result, err := h.posts.ToggleLike(middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, result)
}

// AddComment appends a comment and returns it shaped.
func (h *PostHandler) AddComment(c *gin.Context) {
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrCommentEmpty, err.Error())
		return
	}

	comment, err := h.posts.AddComment(middleware.UserID(c), c.Param("id"), input.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyComment):
			response.Error(c, http.StatusBadRequest, response.ErrCommentEmpty, err.Error())
		case errors.Is(err, service.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, err.Error())
		case errors.Is(err, service.ErrSchemaNotReady):
			response.Error(c, http.StatusServiceUnavailable, response.ErrSchemaNotReady, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Created(c, comment)
}

// ReportPost files a moderation report, one per reporter per post.
func (h *PostHandler) ReportPost(c *gin.Context) {
	var input ReportInput
	_ = c.ShouldBindJSON(&input)

	err := h.posts.ReportPost(middleware.UserID(c), c.Param("id"), input.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, err.Error())
		case errors.Is(err, service.ErrDuplicateReport):
			response.Error(c, http.StatusConflict, response.ErrAlreadyReported, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, gin.H{"message": "report received"})
}

// GetUserPosts returns a user's shaped posts for their profile page.
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.posts.GetPostsByAuthor(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, posts)
}

// GetBookmarkedPosts returns the shaped posts behind a user's bookmarks.
func (h *PostHandler) GetBookmarkedPosts(c *gin.Context) {
	posts, err := h.posts.GetBookmarkedPosts(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, posts)
}
