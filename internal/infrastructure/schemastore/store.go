// Package schemastore serves component schemas, core-section schemas and
// board catalogs from JSON files on disk:
//
//	<dir>/components/<domain>/<platform>.json
//	<dir>/core/<name>.json
//	<dir>/boards/<target>.json
package schemastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/domain/entity"
)

// ErrNotFound is returned when no schema file exists for a key.
var ErrNotFound = errors.New("schema not found")

// Store implements port.SchemaFetcher over a directory tree.
type Store struct {
	fs      afero.Fs
	dir     string
	timeout time.Duration
}

// New creates a store rooted at dir. A zero timeout disables the per-read
// deadline.
func New(fsys afero.Fs, dir string, timeout time.Duration) *Store {
	return &Store{fs: fsys, dir: dir, timeout: timeout}
}

// FetchSchema reads components/<domain>/<platform>.json.
func (s *Store) FetchSchema(ctx context.Context, domain, platform string) (*entity.SchemaResponse, error) {
	var out entity.SchemaResponse
	if err := s.load(ctx, &out, "components", domain, platform+".json"); err != nil {
		return nil, err
	}
	if out.Domain == "" {
		out.Domain = domain
	}
	if out.Platform == "" {
		out.Platform = platform
	}
	return &out, nil
}

// FetchCoreSchema reads core/<name>.json.
func (s *Store) FetchCoreSchema(ctx context.Context, name string) (*entity.CoreSchemaResponse, error) {
	var out entity.CoreSchemaResponse
	if err := s.load(ctx, &out, "core", name+".json"); err != nil {
		return nil, err
	}
	if out.Name == "" {
		out.Name = name
	}
	return &out, nil
}

// FetchBoards reads boards/<target>.json.
func (s *Store) FetchBoards(ctx context.Context, target string) (*entity.BoardCatalog, error) {
	var out entity.BoardCatalog
	if err := s.load(ctx, &out, "boards", target+".json"); err != nil {
		return nil, err
	}
	if out.Target == "" {
		out.Target = target
	}
	return &out, nil
}

// ListComponents returns every domain/platform that has a schema file,
// sorted by domain then platform.
func (s *Store) ListComponents(ctx context.Context) ([]entity.ComponentRef, error) {
	root := filepath.Join(s.dir, "components")
	if ok, err := afero.DirExists(s.fs, root); err != nil || !ok {
		return nil, err
	}
	var refs []entity.ComponentRef
	err := afero.Walk(s.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 2 {
			return nil
		}
		refs = append(refs, entity.ComponentRef{Domain: parts[0], Platform: strings.TrimSuffix(parts[1], ".json")})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Domain != refs[j].Domain {
			return refs[i].Domain < refs[j].Domain
		}
		return refs[i].Platform < refs[j].Platform
	})
	return refs, nil
}

func (s *Store) load(ctx context.Context, out any, parts ...string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, `/\`) || p == ".." {
			return fmt.Errorf("invalid schema key %q: %w", strings.Join(parts, "/"), ErrNotFound)
		}
	}
	path := filepath.Join(append([]string{s.dir}, parts...)...)

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := afero.ReadFile(s.fs, path)
		ch <- result{data, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return fmt.Errorf("read %s: %w", path, ctx.Err())
	case res = <-ch:
	}
	if res.err != nil {
		if errors.Is(res.err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("read %s: %w", path, res.err)
	}
	if err := json.Unmarshal(res.data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

var _ port.SchemaSource = (*Store)(nil)
