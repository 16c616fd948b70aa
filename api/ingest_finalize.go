package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tubehub/catalog-api/internal/service"
)

type ingestFinalizeBody struct {
	Code    string `json:"code"`
	VideoID uint   `json:"video_id"`
}

// IngestFinalize ends one pending ingestion: publication on completion,
// uploader notification on failure. Accepts either the activation code or
// the video id.
func (a *API) IngestFinalize(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var body ingestFinalizeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid finalize body",
			"requestID": requestID,
		})
		return
	}

	sel := service.ByCode(body.Code)
	if body.Code == "" {
		sel = service.ByVideoID(body.VideoID)
	}

	published, err := a.Deps.Ingest.Finalize(c.Request.Context(), sel)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "No matching pending ingestion",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to finalize ingestion", zap.String("requestID", requestID), zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"published": published,
		"requestID": requestID,
	})
}
