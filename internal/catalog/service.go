// Package catalog caches component schemas, core-section schemas and board
// catalogs fetched through a port.SchemaFetcher.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/cache/generic"
	"github.com/bnema/eve/internal/domain/entity"
)

// Hooks let the UI react to completed fetches.
type Hooks struct {
	// Notify runs after every completed fetch, successful or not.
	Notify func()
	// ReportError receives a user-visible message for a failed fetch.
	ReportError func(msg string)
}

// Service is the schema and board catalog cache. Each key is fetched at most
// once while a fetch is in flight; successes are kept for the session and
// failures are kept until cleared.
type Service struct {
	schemas *generic.GenericCache[string, *entity.SchemaResponse]
	core    *generic.GenericCache[string, *entity.CoreSchemaResponse]
	boards  *generic.GenericCache[string, *entity.BoardCatalog]
	hooks   Hooks
	logger  zerolog.Logger
}

// NewService creates a catalog backed by fetcher.
func NewService(fetcher port.SchemaFetcher, hooks Hooks, logger zerolog.Logger) *Service {
	s := &Service{
		hooks:  hooks,
		logger: logger.With().Str("component", "catalog").Logger(),
	}

	s.schemas = generic.NewGenericCache[string, *entity.SchemaResponse](
		generic.LoaderFunc[string, *entity.SchemaResponse](func(ctx context.Context, key string) (*entity.SchemaResponse, error) {
			domain, platform, _ := strings.Cut(key, ":")
			return fetcher.FetchSchema(ctx, domain, platform)
		}),
	)
	s.schemas.OnLoad = s.onLoad("schema", "Schema load error")

	s.core = generic.NewGenericCache[string, *entity.CoreSchemaResponse](
		generic.LoaderFunc[string, *entity.CoreSchemaResponse](fetcher.FetchCoreSchema),
	)
	s.core.OnLoad = s.onLoad("core_schema", "Core schema load error")

	s.boards = generic.NewGenericCache[string, *entity.BoardCatalog](
		generic.LoaderFunc[string, *entity.BoardCatalog](fetcher.FetchBoards),
	)
	s.boards.OnLoad = s.onLoad("boards", "Board catalog load error")

	return s
}

func (s *Service) onLoad(kind, prefix string) func(string, error) {
	return func(key string, err error) {
		if err != nil {
			s.logger.Warn().Err(err).Str("kind", kind).Str("key", key).Msg("fetch failed")
			if s.hooks.ReportError != nil {
				s.hooks.ReportError(fmt.Sprintf("%s: %v", prefix, err))
			}
		} else {
			s.logger.Debug().Str("kind", kind).Str("key", key).Msg("fetched")
		}
		if s.hooks.Notify != nil {
			s.hooks.Notify()
		}
	}
}

// EnsureSchema returns the schema of domain/platform, fetching it once.
func (s *Service) EnsureSchema(ctx context.Context, domain, platform string) (*entity.SchemaResponse, error) {
	return s.schemas.Ensure(ctx, schemaKey(domain, platform))
}

// Schema returns the cached schema of domain/platform without fetching.
func (s *Service) Schema(domain, platform string) (*entity.SchemaResponse, bool) {
	return s.schemas.Get(schemaKey(domain, platform))
}

// SchemaErr returns the retained fetch error for domain/platform.
func (s *Service) SchemaErr(domain, platform string) error {
	return s.schemas.Err(schemaKey(domain, platform))
}

// ClearSchemaErr allows domain/platform to be fetched again.
func (s *Service) ClearSchemaErr(domain, platform string) {
	s.schemas.ClearErr(schemaKey(domain, platform))
}

// EnsureCoreSchema returns the schema of a core section, fetching it once.
func (s *Service) EnsureCoreSchema(ctx context.Context, name string) (*entity.CoreSchemaResponse, error) {
	return s.core.Ensure(ctx, name)
}

// CoreSchema returns the cached core-section schema.
func (s *Service) CoreSchema(name string) (*entity.CoreSchemaResponse, bool) {
	return s.core.Get(name)
}

// CoreSchemaErr returns the retained fetch error for a core section.
func (s *Service) CoreSchemaErr(name string) error {
	return s.core.Err(name)
}

// ClearCoreSchemaErr allows a core section schema to be fetched again.
func (s *Service) ClearCoreSchemaErr(name string) {
	s.core.ClearErr(name)
}

// EnsureBoards returns the board catalog of target, fetching it once.
func (s *Service) EnsureBoards(ctx context.Context, target string) (*entity.BoardCatalog, error) {
	return s.boards.Ensure(ctx, target)
}

// Boards returns the cached board catalog of target.
func (s *Service) Boards(target string) (*entity.BoardCatalog, bool) {
	return s.boards.Get(target)
}

// BoardsErr returns the retained fetch error for target.
func (s *Service) BoardsErr(target string) error {
	return s.boards.Err(target)
}

// ClearBoardsErr allows the board catalog of target to be fetched again.
func (s *Service) ClearBoardsErr(target string) {
	s.boards.ClearErr(target)
}

func schemaKey(domain, platform string) string {
	return entity.ComponentRef{Domain: domain, Platform: platform}.Key()
}
