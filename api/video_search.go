package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tubehub/catalog-api/internal/search"
)

// VideoSearch runs a relevance-ranked search. The query path segment is
// codec-encoded so the boolean operators survive the URL. A query that
// can't be decoded degrades to an empty result set.
func (a *API) VideoSearch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	query, err := search.Decode(c.Param("query"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"results": []any{},
			"total":   0,
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

	var categoryID *uint
	if v := c.Query("category"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid category provided",
				"requestID": requestID,
			})
			return
		}

		cid := uint(id)
		categoryID = &cid
	}

	results, err := a.Deps.Search.Search(c.Request.Context(), query, categoryID, offset, count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Search failed", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	total, err := a.Deps.Search.CountResults(c.Request.Context(), query, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Search count failed", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   total,
	})
}
