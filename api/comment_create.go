package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tubehub/catalog-api/internal/service"
)

type commentBody struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (a *API) CommentCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid video ID provided",
			"requestID": requestID,
		})
		return
	}

	var body commentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid comment body",
			"requestID": requestID,
		})
		return
	}

	comment, err := a.Deps.Comments.Add(c.Request.Context(), uint(videoID), body.UserID, body.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Video not found",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to add comment", zap.String("requestID", requestID), zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}
