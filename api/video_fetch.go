package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tubehub/catalog-api/internal/service"
)

// VideoFetch returns one video. The optional name query parameter must
// match the stored slug when present.
func (a *API) VideoFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid video ID provided",
			"requestID": requestID,
		})
		return
	}

	video, err := a.Deps.Catalog.Get(c.Request.Context(), uint(id), c.Query("name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Video not found",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to fetch video", zap.String("requestID", requestID), zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, video)
}
