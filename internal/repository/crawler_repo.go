package repository

import (
	"context"

	"github.com/user/glue-crawler-service/internal/entity"
)

// CrawlerRepository defines the contract for the remote crawler-management API.
// Every method issues exactly one remote call. Service-level failures are
// returned as *entity.RemoteError; anything else is a transport or client fault.
type CrawlerRepository interface {
	// Create registers a new crawler definition.
	Create(ctx context.Context, def entity.CrawlerDefinition) (*entity.RemoteResult, error)
	// Update replaces an existing crawler definition.
	Update(ctx context.Context, def entity.CrawlerDefinition) (*entity.RemoteResult, error)
	// Get fetches one crawler definition by name.
	Get(ctx context.Context, name string) (*entity.RemoteResult, error)
	// GetAll fetches crawler definitions.
	GetAll(ctx context.Context, page entity.Page) (*entity.RemoteResult, error)
	// List fetches crawler names.
	List(ctx context.Context, page entity.Page) (*entity.RemoteResult, error)
	// Start triggers a crawl run.
	Start(ctx context.Context, name string) (*entity.RemoteResult, error)
	// Stop halts a running crawl.
	Stop(ctx context.Context, name string) (*entity.RemoteResult, error)
}
