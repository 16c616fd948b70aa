package api

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tubehub/catalog-api/internal/model"
	"tubehub/catalog-api/internal/rank"
	"tubehub/catalog-api/internal/service"
)

var validLimits = []int{10, 20, 50, 100, 250}

// VideoList returns one page of the published catalog. Filters: category,
// user (numeric id or username), ordering mode.
func (a *API) VideoList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || !slices.Contains(validLimits, limit) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid limit provided",
			"requestID": requestID,
		})
		return
	}

	pageStr := c.DefaultQuery("page", "0")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid page provided",
			"requestID": requestID,
		})
		return
	}

	filter := service.VideoFilter{
		Order:  rank.Mode(c.DefaultQuery("order", string(rank.Hottest))),
		Offset: page * limit,
		Count:  limit,
	}

	if v := c.Query("category"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid category provided",
				"requestID": requestID,
			})
			return
		}

		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	// A numeric id and a username are distinct selectors, never guessed
	// from the value's shape
	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid user ID provided",
				"requestID": requestID,
			})
			return
		}

		filter.User = model.ByUserID(uint(id))
	} else if v := c.Query("username"); v != "" {
		filter.User = model.ByUsername(v)
	}

	videos, err := a.Deps.Catalog.List(c.Request.Context(), filter)
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

		zap.L().Error("Failed to list videos", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	total, err := a.Deps.Catalog.Count(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count videos", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
	})
}
