package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tubehub/catalog-api/internal/model"
	"tubehub/catalog-api/internal/service"
)

type ingestCallbackBody struct {
	Code     string `json:"code" binding:"required"`
	Response int    `json:"response"`
}

// IngestCallback is the inbound half of the CIS protocol: the service
// reports how the transcoding of one activation code ended.
func (a *API) IngestCallback(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var body ingestCallbackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid callback body",
			"requestID": requestID,
		})
		return
	}

	err := a.Deps.Ingest.RecordResponse(c.Request.Context(), body.Code, model.CISResponse(body.Response))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Unknown activation code",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrResponseConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to record CIS response", zap.String("requestID", requestID), zap.Error(err))
		}
		return
	}

	c.Status(http.StatusNoContent)
}
