package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gopherpost/internal/app"
	"gopherpost/internal/transport/http/middleware"
	"gopherpost/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
}

type PostRequest struct {
	Title     string `json:"title" binding:"required,max=255"`
	Content   string `json:"content" binding:"required"`
	Published *bool  `json:"published"`
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	post, err := h.postService.CreatePost(app.CreatePostInput{
		OwnerID:   user.ID,
		Title:     req.Title,
		Content:   req.Content,
		Published: published,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create post failed")
		return
	}

	c.JSON(http.StatusCreated, response.APIResponse{
		Code:    response.CodeOK,
		Message: "ok",
		Data:    post,
	})
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	posts, err := h.postService.ListPosts(app.ListPostsInput{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list posts failed")
		return
	}

	response.OK(c, posts)
}

func (h *PostHandler) LatestPosts(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid count")
		return
	}

	posts, err := h.postService.LatestPosts(count)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list latest posts failed")
		return
	}

	response.OK(c, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch post failed")
		return
	}

	response.OK(c, post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	id, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	post, err := h.postService.UpdatePost(user.ID, id, app.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: published,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		case errors.Is(err, app.ErrNotOwner):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "not authorized to update this post")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update post failed")
		}
		return
	}

	response.OK(c, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	id, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}

	if err := h.postService.DeletePost(user.ID, id); err != nil {
		switch {
		case errors.Is(err, app.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		case errors.Is(err, app.ErrNotOwner):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "not authorized to delete this post")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete post failed")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
