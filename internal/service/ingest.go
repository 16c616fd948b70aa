package service

import (
	"context"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	mrand "math/rand"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tubehub/catalog-api/internal/model"
	"tubehub/catalog-api/internal/storage"
)

// How often a colliding activation code is regenerated before giving up
const codeRetries = 5

// UploadMeta is the user-supplied metadata of a new upload, already
// validated by the API layer.
type UploadMeta struct {
	Name        string
	Title       string
	Description string
	// Comma separated tag list
	Tags       string
	Duration   string
	CategoryID uint
	UserID     uint
}

// PendingSelector addresses one pending ingestion either by activation code
// or by video id. Both resolve to the same unique row.
type PendingSelector struct {
	Code    string
	VideoID uint
}

func ByCode(code string) PendingSelector {
	return PendingSelector{Code: code}
}

func ByVideoID(id uint) PendingSelector {
	return PendingSelector{VideoID: id}
}

func (s PendingSelector) apply(db *gorm.DB) (*gorm.DB, error) {
	switch {
	case s.Code != "":
		return db.Where("activation_code = ?", s.Code), nil
	case s.VideoID != 0:
		return db.Where("video_id = ?", s.VideoID), nil
	default:
		return nil, fmt.Errorf("%w: empty pending selector", ErrValidation)
	}
}

// IngestService owns the pending → activated/failed state machine of every
// upload. All cross-request safety is delegated to the uniqueness
// constraints on the pending table.
type IngestService struct {
	db       *gorm.DB
	cis      *CISClient
	staging  storage.Staging
	notifier Notifier

	secret      string
	thumbsCount int
}

func NewIngestService(db *gorm.DB, cis *CISClient, staging storage.Staging, notifier Notifier) *IngestService {
	thumbs := viper.GetInt("cis.thumbs_count")
	if thumbs <= 0 {
		thumbs = 4
	}

	return &IngestService{
		db:          db,
		cis:         cis,
		staging:     staging,
		notifier:    notifier,
		secret:      viper.GetString("ingest.secret_key"),
		thumbsCount: thumbs,
	}
}

// Begin inserts the Video and its PendingIngestion sibling in one logical
// unit and returns the fresh activation code. A collision on the code's
// uniqueness constraint is retried with a new nonce; a collision on the
// video name surfaces as a validation error.
func (s *IngestService) Begin(ctx context.Context, meta UploadMeta, uploadedFile string) (string, uint, error) {
	video := model.Video{
		Name:         meta.Name,
		Title:        meta.Title,
		Description:  meta.Description,
		Duration:     meta.Duration,
		CategoryID:   meta.CategoryID,
		UserID:       meta.UserID,
		Tags:         parseTags(meta.Tags),
		Assets:       model.AssetList{},
		ThumbsCount:  s.thumbsCount,
		DefaultThumb: mrand.Intn(s.thumbsCount),
		CreatedAt:    time.Now().UTC(),
	}

	var code string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&video).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: video name %q is taken", ErrValidation, meta.Name)
			}
			return fmt.Errorf("failed to insert video, %w", err)
		}

		for range codeRetries {
			c, err := s.newActivationCode()
			if err != nil {
				return err
			}

			err = tx.Create(&model.PendingIngestion{
				VideoID:        video.ID,
				ActivationCode: c,
				UploadedFile:   uploadedFile,
				CISResponse:    model.CISPending,
			}).Error
			if err == nil {
				code = c
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("failed to insert pending ingestion, %w", err)
			}

			zap.L().Warn("Activation code collision, regenerating", zap.Uint("video_id", video.ID))
		}

		return ErrCodeConflict
	})
	if err != nil {
		// Nothing references the staged file anymore, so drop it instead
		// of leaving an orphan behind.
		if rmErr := s.staging.Remove(ctx, uploadedFile); rmErr != nil {
			zap.L().Warn("Failed to remove staged upload of aborted ingestion",
				zap.String("key", uploadedFile), zap.Error(rmErr))
		}

		return "", 0, err
	}

	return code, video.ID, nil
}

// Dispatch posts the transcoding job for one pending upload to the CIS. It
// mutates no state, so a failed dispatch is safe to repeat: the activation
// code doubles as the idempotency key and the CIS deduplicates by it.
func (s *IngestService) Dispatch(ctx context.Context, code string, weight int64, configs []TranscodeConfig) error {
	var pending model.PendingIngestion
	err := s.db.WithContext(ctx).
		Where("activation_code = ?", code).
		First(&pending).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no pending ingestion for code", ErrNotFound)
		}
		return fmt.Errorf("failed to look up pending ingestion, %w", err)
	}

	var video model.Video
	if err := s.db.WithContext(ctx).First(&video, pending.VideoID).Error; err != nil {
		return fmt.Errorf("failed to look up video, %w", err)
	}

	if len(configs) == 0 {
		configs = DefaultTranscodeConfigs
	}

	// The network round-trip runs outside any storage transaction
	return s.cis.Ingest(ctx, code, pending.UploadedFile, video.Name, weight, configs, s.thumbsCount)
}

// RecordResponse stores the outcome the CIS reported for one activation
// code. Duplicate callbacks with the same outcome are no-ops; an attempt to
// overwrite a different recorded outcome is a conflict.
func (s *IngestService) RecordResponse(ctx context.Context, code string, resp model.CISResponse) error {
	if !resp.Valid() {
		return fmt.Errorf("%w: response code %d is not part of the protocol", ErrValidation, resp)
	}

	res := s.db.WithContext(ctx).
		Model(&model.PendingIngestion{}).
		Where("activation_code = ? AND cis_response IN ?", code, []model.CISResponse{model.CISPending, resp}).
		Update("cis_response", resp)
	if res.Error != nil {
		return fmt.Errorf("failed to record CIS response, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		var n int64
		err := s.db.WithContext(ctx).
			Model(&model.PendingIngestion{}).
			Where("activation_code = ?", code).
			Count(&n).
			Error
		if err != nil {
			return fmt.Errorf("failed to check pending ingestion, %w", err)
		}

		if n == 0 {
			return fmt.Errorf("%w: no pending ingestion for code", ErrNotFound)
		}

		return ErrResponseConflict
	}

	return nil
}

// Finalize ends the lifecycle of one pending upload. On completion the
// pending row is deleted, which publishes the video, and the staged raw
// upload is removed. On a failed ingestion the uploader is notified and the
// row stays behind for manual retry or cleanup. The returned bool reports
// whether the video went live.
func (s *IngestService) Finalize(ctx context.Context, sel PendingSelector) (bool, error) {
	q, err := sel.apply(s.db.WithContext(ctx))
	if err != nil {
		return false, err
	}

	var pending model.PendingIngestion
	if err := q.First(&pending).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: no matching pending ingestion", ErrNotFound)
		}
		return false, fmt.Errorf("failed to look up pending ingestion, %w", err)
	}

	switch pending.CISResponse {
	case model.CISCompletion:
		err := s.db.WithContext(ctx).
			Delete(&model.PendingIngestion{}, pending.ID).
			Error
		if err != nil {
			return false, fmt.Errorf("failed to activate video, %w", err)
		}

		if err := s.staging.Remove(ctx, pending.UploadedFile); err != nil {
			// The video is already live at this point. Leave the orphaned
			// staged file to the cleanup job rather than failing.
			zap.L().Warn("Failed to remove staged upload",
				zap.String("key", pending.UploadedFile), zap.Error(err))
		}

		zap.L().Info("Video activated", zap.Uint("video_id", pending.VideoID))
		return true, nil

	case model.CISInternalError, model.CISUnreachable:
		if err := s.notifyUploadFailure(ctx, &pending); err != nil {
			return false, err
		}

		// The pending row and the staged upload stay behind on purpose so
		// an operator can retry the ingestion.
		return false, nil

	default:
		return false, fmt.Errorf("%w: ingestion still in progress", ErrValidation)
	}
}

func (s *IngestService) notifyUploadFailure(ctx context.Context, pending *model.PendingIngestion) error {
	var video model.Video
	if err := s.db.WithContext(ctx).First(&video, pending.VideoID).Error; err != nil {
		return fmt.Errorf("failed to look up video, %w", err)
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, video.UserID).Error; err != nil {
		return fmt.Errorf("failed to look up uploader, %w", err)
	}

	subject, body := uploadFailureMail(video.Title, pending.CISResponse)

	if err := s.notifier.Notify(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to notify uploader, %w", err)
	}

	zap.L().Info("Uploader notified of failed ingestion",
		zap.Uint("video_id", video.ID),
		zap.String("reason", pending.CISResponse.String()))
	return nil
}

// ListCompleted returns every pending ingestion whose transcoding finished
// but which hasn't been finalized yet. Consumed by the auto-publish job.
func (s *IngestService) ListCompleted(ctx context.Context) ([]model.PendingIngestion, error) {
	var rows []model.PendingIngestion

	err := s.db.WithContext(ctx).
		Where("cis_response = ?", model.CISCompletion).
		Find(&rows).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list completed ingestions, %w", err)
	}

	return rows, nil
}

func (s *IngestService) newActivationCode() (string, error) {
	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce, %w", err)
	}

	sum := sha1.Sum(append([]byte(s.secret), nonce...))

	// 16 hex characters, same length as the column
	return hex.EncodeToString(sum[:])[:16], nil
}

func parseTags(tags string) model.TagMap {
	out := model.TagMap{}

	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out[t] = 0
		}
	}

	return out
}
