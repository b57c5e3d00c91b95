// Package schemahttp fetches component schemas, core-section schemas and
// board catalogs from a schema backend over HTTP:
//
//	GET api/components
//	GET api/schema/<domain>/<platform>
//	GET api/core-schema/<name>
//	GET api/espboards/<target>
package schemahttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/logging"
)

const (
	// Maximum number of attempts for retryable requests.
	maxRetryAttempts = 3

	// Base delay used for exponential backoff between retries.
	retryBaseDelay = 250 * time.Millisecond

	// Maximum delay cap for exponential backoff between retries.
	retryMaxDelay = 2 * time.Second

	// Max random jitter added to each retry backoff.
	retryJitterMax = 200 * time.Millisecond

	// Maximum response body size (16MB).
	maxResponseSize = 16 * 1024 * 1024

	// Maximum error body kept in an APIError.
	maxErrorBody = 512
)

var (
	// ErrNotFound is returned when the backend has no schema for a key.
	ErrNotFound = errors.New("schema not found")

	// ErrTransient marks failures that may succeed on a later attempt.
	ErrTransient = errors.New("schema backend unavailable")
)

// APIError is a non-2xx backend response.
type APIError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%d %s", e.Status, e.StatusText)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.StatusText, e.Body)
}

// Is matches ErrNotFound for 404 and ErrTransient for retryable statuses.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrTransient:
		return isRetryableStatus(e.Status)
	}
	return false
}

// Client implements port.SchemaSource against a schema backend.
type Client struct {
	base      *url.URL
	userAgent string
	client    *http.Client
	snapshots port.SchemaSnapshotStore
	randInt63 func(n int64) int64
	sleep     func(ctx context.Context, d time.Duration) error
}

// New creates a client for the backend at baseURL. A zero timeout disables
// the per-request deadline.
func New(baseURL, userAgent string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid schema backend URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("schema backend URL must use http or https, got %q", base.Scheme)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return &Client{
		base:      base,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		randInt63: rand.Int63n,
		sleep:     waitForBackoff,
	}, nil
}

// WithSnapshots stores every successful response in store and serves the
// stored copy when the backend is unavailable.
func (c *Client) WithSnapshots(store port.SchemaSnapshotStore) *Client {
	c.snapshots = store
	return c
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	return c.base.String()
}

type componentsResponse struct {
	AllowlistMode int                   `json:"allowlistMode"`
	Components    []entity.ComponentRef `json:"components"`
}

// ListComponents fetches api/components.
func (c *Client) ListComponents(ctx context.Context) ([]entity.ComponentRef, error) {
	var out componentsResponse
	if err := c.getJSON(ctx, &out, "api", "components"); err != nil {
		return nil, err
	}
	refs := out.Components
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Domain != refs[j].Domain {
			return refs[i].Domain < refs[j].Domain
		}
		return refs[i].Platform < refs[j].Platform
	})
	return refs, nil
}

// FetchSchema fetches api/schema/<domain>/<platform>.
func (c *Client) FetchSchema(ctx context.Context, domain, platform string) (*entity.SchemaResponse, error) {
	var out entity.SchemaResponse
	if err := c.getJSON(ctx, &out, "api", "schema", domain, platform); err != nil {
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

// FetchCoreSchema fetches api/core-schema/<name>.
func (c *Client) FetchCoreSchema(ctx context.Context, name string) (*entity.CoreSchemaResponse, error) {
	var out entity.CoreSchemaResponse
	if err := c.getJSON(ctx, &out, "api", "core-schema", name); err != nil {
		return nil, err
	}
	if out.Name == "" {
		out.Name = name
	}
	return &out, nil
}

// FetchBoards fetches api/espboards/<target>.
func (c *Client) FetchBoards(ctx context.Context, target string) (*entity.BoardCatalog, error) {
	var out entity.BoardCatalog
	if err := c.getJSON(ctx, &out, "api", "espboards", target); err != nil {
		return nil, err
	}
	if out.Target == "" {
		out.Target = target
	}
	return &out, nil
}

func (c *Client) endpoint(segments ...string) (string, error) {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		if s == "" {
			return "", fmt.Errorf("empty path segment in %q: %w", strings.Join(segments, "/"), ErrNotFound)
		}
		escaped[i] = url.PathEscape(s)
	}
	ref, err := url.Parse(strings.Join(escaped, "/"))
	if err != nil {
		return "", err
	}
	return c.base.ResolveReference(ref).String(), nil
}

func (c *Client) getJSON(ctx context.Context, out any, segments ...string) error {
	data, endpoint, err := c.get(ctx, segments...)
	if err != nil {
		if c.snapshots != nil && errors.Is(err, ErrTransient) && c.decodeSnapshot(ctx, strings.Join(segments, "/"), out) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	c.storeSnapshot(ctx, strings.Join(segments, "/"), data)
	return nil
}

// get performs the request and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, segments ...string) ([]byte, string, error) {
	log := logging.FromContext(ctx)

	endpoint, err := c.endpoint(segments...)
	if err != nil {
		return nil, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, endpoint, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.doRequestWithRetry(ctx, req)
	if err != nil {
		if isRetryableRequestError(err) {
			return nil, endpoint, fmt.Errorf("GET %s: %w: %w", endpoint, ErrTransient, err)
		}
		return nil, endpoint, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug().
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("schema backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, endpoint, fmt.Errorf("GET %s: %w", endpoint, &APIError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(body)),
		})
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, endpoint, fmt.Errorf("read %s: %w", endpoint, err)
	}
	if len(data) > maxResponseSize {
		return nil, endpoint, fmt.Errorf("read %s: response exceeds %d bytes", endpoint, maxResponseSize)
	}
	return data, endpoint, nil
}

func (c *Client) storeSnapshot(ctx context.Context, key string, data []byte) {
	if c.snapshots == nil {
		return
	}
	snap := &entity.SchemaSnapshot{Key: key, Data: data, FetchedAt: time.Now()}
	if err := c.snapshots.Put(ctx, snap); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to store schema snapshot")
	}
}

// decodeSnapshot fills out from the stored copy of key and reports whether
// one was usable.
func (c *Client) decodeSnapshot(ctx context.Context, key string, out any) bool {
	log := logging.FromContext(ctx)

	snap, err := c.snapshots.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read schema snapshot")
		return false
	}
	if snap == nil {
		return false
	}
	if err := json.Unmarshal(snap.Data, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stored schema snapshot is invalid")
		return false
	}
	log.Warn().
		Str("key", key).
		Time("fetched_at", snap.FetchedAt).
		Msg("schema backend unavailable, using stored copy")
	return true
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests || status == http.StatusRequestTimeout {
		return true
	}
	return status >= http.StatusInternalServerError
}

func isRetryableRequestError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && isTransientSyscallError(opErr.Err) {
		return true
	}
	return false
}

func isTransientSyscallError(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case syscall.ECONNRESET, syscall.ECONNREFUSED,
		syscall.EADDRNOTAVAIL, syscall.ENETUNREACH,
		syscall.EHOSTUNREACH:
		return true
	}
	return false
}

func waitForBackoff(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func retryDelayForAttempt(attempt int, randInt63 func(n int64) int64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := retryBaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= retryMaxDelay {
			delay = retryMaxDelay
			break
		}
	}

	if randInt63 != nil && retryJitterMax > 0 {
		delay += time.Duration(randInt63(int64(retryJitterMax)))
	}

	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}

// doRequestWithRetry retries the same GET request. Requests must not carry
// a body.
func (c *Client) doRequestWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	for attempt := 1; ; attempt++ {
		resp, err := c.client.Do(req)
		if err != nil {
			if !isRetryableRequestError(err) || attempt == maxRetryAttempts {
				return nil, err
			}
			if waitErr := c.sleep(ctx, retryDelayForAttempt(attempt, c.randInt63)); waitErr != nil {
				return nil, waitErr
			}
			continue
		}

		if !isRetryableStatus(resp.StatusCode) || attempt == maxRetryAttempts {
			return resp, nil
		}

		_ = resp.Body.Close()
		if waitErr := c.sleep(ctx, retryDelayForAttempt(attempt, c.randInt63)); waitErr != nil {
			return nil, waitErr
		}
	}
}

var _ port.SchemaSource = (*Client)(nil)
