package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tubehub/catalog-api/internal/rank"
	"tubehub/catalog-api/internal/service"
)

func (a *API) CommentList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid video ID provided",
			"requestID": requestID,
		})
		return
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid offset provided",
			"requestID": requestID,
		})
		return
	}

	count, err := strconv.Atoi(c.DefaultQuery("count", "20"))
	if err != nil || count <= 0 || count > 250 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid count provided",
			"requestID": requestID,
		})
		return
	}

	mode := rank.Mode(c.DefaultQuery("order", string(rank.Newest)))

	comments, err := a.Deps.Comments.List(c.Request.Context(), uint(videoID), offset, count, mode)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list comments", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	total, err := a.Deps.Comments.Count(c.Request.Context(), uint(videoID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count comments", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
	})
}
