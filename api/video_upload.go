package api

import (
	"errors"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"tubehub/catalog-api/internal/service"
	"tubehub/catalog-api/validators"
)

// VideoUpload stages the raw file, creates the pending catalog entry and
// hands the transcoding job to the CIS. The video stays invisible until the
// ingestion is finalized.
func (a *API) VideoUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	userID, err := strconv.ParseUint(c.PostForm("user_id"), 10, 32)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid user ID provided",
			"requestID": requestID,
		})
		return
	}

	categoryID, _ := strconv.ParseUint(c.PostForm("category_id"), 10, 32)

	meta := service.UploadMeta{
		Name:        c.PostForm("name"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Tags:        c.PostForm("tags"),
		Duration:    c.PostForm("duration"),
		CategoryID:  uint(categoryID),
		UserID:      uint(userID),
	}

	err = validators.ValidateUploadMeta(&validators.UploadMeta{
		Name:        meta.Name,
		Title:       meta.Title,
		Description: meta.Description,
		Duration:    meta.Duration,
		CategoryID:  meta.CategoryID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	code, f, err := validators.FileValidator(fh)
	if err != nil {
		c.JSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	key, _ := gonanoid.New()
	key += path.Ext(fh.Filename)

	if err := a.Deps.Staging.Put(c.Request.Context(), key, f, fh.Size); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to stage upload", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	activationCode, videoID, err := a.Deps.Ingest.Begin(c.Request.Context(), meta, key)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to begin ingestion", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	err = a.Deps.Ingest.Dispatch(c.Request.Context(), activationCode, fh.Size, nil)
	if err != nil {
		// The pending record is in place, so a failed dispatch is
		// recoverable: the operator can re-dispatch with the same code.
		c.JSON(http.StatusAccepted, gin.H{
			"id":        videoID,
			"state":     "pending",
			"dispatch":  "failed",
			"requestID": requestID,
		})

		zap.L().Error("Failed to dispatch ingestion",
			zap.String("requestID", requestID), zap.Uint("video_id", videoID), zap.Error(err))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"id":        videoID,
		"state":     "pending",
		"requestID": requestID,
	})
}
