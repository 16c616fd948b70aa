package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tubehub/catalog-api/internal/service"
)

type voteBody struct {
	UserID     uint   `json:"user_id" binding:"required"`
	TargetType string `json:"target_type" binding:"required"`
	TargetID   uint   `json:"target_id" binding:"required"`
	Like       bool   `json:"like"`
}

// VoteCast records a like or dislike on a video or comment. A repeated vote
// within the same UTC day is absorbed silently: the client gets the current
// state back, not an error.
func (a *API) VoteCast(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var body voteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid vote body",
			"requestID": requestID,
		})
		return
	}

	count, err := a.Deps.Votes.Cast(c.Request.Context(), body.UserID, body.TargetType, body.TargetID, body.Like)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyVoted):
			c.JSON(http.StatusOK, gin.H{
				"counted":   false,
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Vote target not found",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to cast vote", zap.String("requestID", requestID), zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counted":   true,
		"count":     count,
		"requestID": requestID,
	})
}
