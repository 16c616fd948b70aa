// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tubehub/catalog-api/db"
	"tubehub/catalog-api/internal"
	"tubehub/catalog-api/internal/service"
	"tubehub/catalog-api/internal/storage"
	"tubehub/catalog-api/middleware"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	Router *gin.Engine
	Deps   *internal.Deps
}

func NewRouter() (*API, error) {
	makeLogger()

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	staging, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize staging store, %w", err)
	}

	d := &internal.Deps{
		DB:       database,
		Ingest:   service.NewIngestService(database, service.NewCISClient(), staging, service.NewMailNotifier()),
		Votes:    service.NewVoteService(database),
		Comments: service.NewCommentService(database),
		Catalog:  service.NewCatalogService(database),
		Search:   service.NewSearchService(database),
		Staging:  staging,
	}

	a := &API{Deps: d}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	videos := main.Group("/videos")
	{
		// GET /api/videos		-> Lists published videos
		videos.GET("", cacheFor(30), a.VideoList)

		// GET /api/videos/:id		-> Fetches one video
		videos.GET("/:id", a.VideoFetch)

		// POST /api/videos		-> Uploads a new video and starts its ingestion
		videos.POST("", middleware.BodySizeLimiter(maxUploadSize), a.VideoUpload)

		// POST /api/videos/:id/views	-> Counts one view
		videos.POST("/:id/views", a.VideoViews)

		// GET /api/videos/:id/comments	-> Lists comments of a video
		videos.GET("/:id/comments", a.CommentList)

		// POST /api/videos/:id/comments -> Adds a comment to a video
		videos.POST("/:id/comments", middleware.BodySizeLimiter(1<<20), a.CommentCreate)
	}

	ingest := main.Group("/ingest")
	{
		// POST /api/ingest/callback	-> CIS reports a transcoding outcome
		ingest.POST("/callback", middleware.BodySizeLimiter(1<<20), a.IngestCallback)

		// POST /api/ingest/finalize	-> Operator publishes or fails a pending upload
		ingest.POST("/finalize", middleware.BodySizeLimiter(1<<20), a.IngestFinalize)
	}

	// POST /api/votes			-> Casts a once-per-day vote
	main.POST("/votes", middleware.BodySizeLimiter(1<<20), a.VoteCast)

	// GET /api/search/:query		-> Searches published videos (query is codec-encoded)
	main.GET("/search/:query", cacheFor(30), a.VideoSearch)

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
