package port

import "context"

// DocumentRepository loads and stores configuration document text.
type DocumentRepository interface {
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, text string) error
}
