package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// StartJobs attaches the periodic maintenance jobs and returns the running
// scheduler:
//
//   - auto-publish: finalizes every pending ingestion whose transcoding
//     completed but whose activation callback path never finished
//   - ledger archive: drops vote records that fell behind the day boundary
func StartJobs(ingest *IngestService, votes *VoteService) (*cron.Cron, error) {
	c := cron.New()

	publishSpec := viper.GetString("jobs.auto_publish")
	if publishSpec == "" {
		publishSpec = "@every 10m"
	}

	_, err := c.AddFunc(publishSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		pendings, err := ingest.ListCompleted(ctx)
		if err != nil {
			zap.L().Error("Auto-publish scan failed", zap.Error(err))
			return
		}

		for _, p := range pendings {
			if _, err := ingest.Finalize(ctx, ByVideoID(p.VideoID)); err != nil {
				zap.L().Error("Auto-publish failed",
					zap.Uint("video_id", p.VideoID), zap.Error(err))
			}
		}

		if len(pendings) > 0 {
			zap.L().Info("Auto-published completed ingestions", zap.Int("count", len(pendings)))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid jobs.auto_publish schedule %q, %w", publishSpec, err)
	}

	retention := viper.GetInt("votes.retention_days")
	if retention <= 0 {
		retention = 7
	}

	_, err = c.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := votes.Archive(ctx, retention); err != nil {
			zap.L().Error("Vote ledger archive failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to attach vote archive job, %w", err)
	}

	c.Start()

	zap.L().Debug("Maintenance jobs attached",
		zap.String("auto_publish", publishSpec),
		zap.Int("vote_retention_days", retention))

	return c, nil
}
