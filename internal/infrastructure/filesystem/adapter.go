package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bnema/eve/internal/application/port"
)

const filePerm = 0644

// ErrNotFound is returned when the document does not exist.
var ErrNotFound = errors.New("document not found")

// Adapter implements port.DocumentRepository over an afero filesystem.
type Adapter struct {
	fs afero.Fs
}

// New creates a filesystem adapter backed by the OS filesystem.
func New() *Adapter {
	return NewWithFs(afero.NewOsFs())
}

// NewWithFs creates a filesystem adapter over fsys.
func NewWithFs(fsys afero.Fs) *Adapter {
	return &Adapter{fs: fsys}
}

// Read returns the document text at path.
func (a *Adapter) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces the document at path. The text goes to a temporary file in
// the same directory first and is renamed over the target, so readers never
// see a partial document.
func (a *Adapter) Write(ctx context.Context, path, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	perm := os.FileMode(filePerm)
	if info, err := a.fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(a.fs, dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = a.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = a.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := a.fs.Chmod(tmpName, perm); err != nil {
		_ = a.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := a.fs.Rename(tmpName, path); err != nil {
		_ = a.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists.
func (a *Adapter) Exists(_ context.Context, path string) (bool, error) {
	return afero.Exists(a.fs, path)
}

var _ port.DocumentRepository = (*Adapter)(nil)
