package port

import (
	"context"

	"github.com/bnema/eve/internal/domain/entity"
)

// SchemaFetcher retrieves component schemas and board catalogs from the
// backend. Implementations apply their own transport timeout.
type SchemaFetcher interface {
	// FetchSchema returns the form schema of one domain/platform component.
	FetchSchema(ctx context.Context, domain, platform string) (*entity.SchemaResponse, error)

	// FetchCoreSchema returns the form schema of a core section such as wifi.
	FetchCoreSchema(ctx context.Context, name string) (*entity.CoreSchemaResponse, error)

	// FetchBoards returns the board catalog of a target (esp32 or esp8266).
	FetchBoards(ctx context.Context, target string) (*entity.BoardCatalog, error)
}

// SchemaSource is a SchemaFetcher that can also list its components.
type SchemaSource interface {
	SchemaFetcher

	// ListComponents returns every known domain/platform, sorted by domain
	// then platform.
	ListComponents(ctx context.Context) ([]entity.ComponentRef, error)
}
