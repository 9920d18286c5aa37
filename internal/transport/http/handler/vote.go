package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherpost/internal/app"
	"gopherpost/internal/transport/http/middleware"
	"gopherpost/internal/transport/http/response"
)

type VoteHandler struct {
	voteService *app.VoteService
}

type VoteRequest struct {
	PostID    uint `json:"post_id" binding:"required"`
	Direction *int `json:"direction" binding:"required,min=0,max=1"`
}

func NewVoteHandler(voteService *app.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

func (h *VoteHandler) Toggle(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Direction == nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.voteService.Toggle(c.Request.Context(), app.ToggleVoteInput{
		PostID:    req.PostID,
		UserID:    user.ID,
		Direction: *req.Direction,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		case errors.Is(err, app.ErrAlreadyVoted):
			response.Error(c, http.StatusConflict, response.CodeConflict, err.Error())
		case errors.Is(err, app.ErrVoteNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "vote failed")
		}
		return
	}

	message := "successfully added vote"
	if *req.Direction == app.VoteRetract {
		message = "successfully removed vote"
	}
	c.JSON(http.StatusCreated, response.APIResponse{
		Code:    response.CodeOK,
		Message: message,
	})
}

func (h *VoteHandler) Count(c *gin.Context) {
	id, err := parseIDParam(c, "post_id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return
	}

	count, err := h.voteService.CountVotes(id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "count votes failed")
		}
		return
	}

	response.OK(c, gin.H{"post_id": id, "votes": count})
}
