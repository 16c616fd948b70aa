package internal

import (
	"gorm.io/gorm"

	"tubehub/catalog-api/internal/service"
	"tubehub/catalog-api/internal/storage"
)

// Deps bundles everything the API layer needs. The storage handle is passed
// in explicitly; nothing in the tree keeps process-wide state.
type Deps struct {
	DB       *gorm.DB
	Ingest   *service.IngestService
	Votes    *service.VoteService
	Comments *service.CommentService
	Catalog  *service.CatalogService
	Search   *service.SearchService
	Staging  storage.Staging
}
