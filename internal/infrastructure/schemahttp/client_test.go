package schemahttp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/eve/internal/application/port/mocks"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/schema"
)

func newTestClient(t *testing.T, routes map[string]string) (*Client, *[]string) {
	t.Helper()
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.EscapedPath())
		body, ok := routes[r.URL.EscapedPath()]
		if !ok {
			http.Error(w, "unknown component", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/addon", "eve/test", time.Second)
	require.NoError(t, err)
	c.sleep = func(context.Context, time.Duration) error { return nil }
	return c, &seen
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr string
	}{
		{name: "adds trailing slash", url: "http://ha.local:8099/eve", want: "http://ha.local:8099/eve/"},
		{name: "keeps trailing slash", url: "https://ha.local/", want: "https://ha.local/"},
		{name: "rejects other schemes", url: "ftp://ha.local", wantErr: "http or https"},
		{name: "rejects garbage", url: "http://[::1", wantErr: "invalid schema backend URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.url, "", 0)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.BaseURL())
		})
	}
}

func TestClient_FetchSchema(t *testing.T) {
	c, seen := newTestClient(t, map[string]string{
		"/addon/api/schema/sensor/dht": `{"displayName": "DHT", "schema": {"type": "object", "properties": {"pin": {"type": "pin"}}}}`,
	})

	resp, err := c.FetchSchema(context.Background(), "sensor", "dht")
	require.NoError(t, err)
	assert.Equal(t, "sensor", resp.Domain)
	assert.Equal(t, "dht", resp.Platform)
	assert.Equal(t, "DHT", resp.DisplayName)
	obj, ok := resp.Schema.(*schema.Object)
	require.True(t, ok)
	assert.Equal(t, 1, obj.Properties.Len())

	_, err = c.FetchSchema(context.Background(), "sensor", "bme280")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrTransient)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "unknown component", apiErr.Body)

	assert.Equal(t, []string{"/addon/api/schema/sensor/dht", "/addon/api/schema/sensor/bme280"}, *seen)
}

func TestClient_FetchCoreSchemaAndBoards(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/addon/api/core-schema/wifi": `{"schema": {"type": "object", "properties": {"ssid": {"type": "string"}}}}`,
		"/addon/api/espboards/esp32":  `{"boards": [{"slug": "esp32dev", "name": "ESP32 Dev Module"}]}`,
	})

	core, err := c.FetchCoreSchema(context.Background(), "wifi")
	require.NoError(t, err)
	assert.Equal(t, "wifi", core.Name)

	boards, err := c.FetchBoards(context.Background(), "esp32")
	require.NoError(t, err)
	assert.Equal(t, "esp32", boards.Target)
	require.Len(t, boards.Boards, 1)
	assert.Equal(t, "esp32dev", boards.Boards[0].Slug)
}

func TestClient_EscapesSegments(t *testing.T) {
	c, seen := newTestClient(t, nil)

	_, err := c.FetchSchema(context.Background(), "../etc", "passwd")
	require.Error(t, err)
	assert.Equal(t, []string{"/addon/api/schema/..%2Fetc/passwd"}, *seen)

	_, err = c.FetchCoreSchema(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, *seen, 1)
}

func TestClient_DecodeError(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{"/addon/api/core-schema/api": `{"schema": {"type": "bogus"}}`})
	_, err := c.FetchCoreSchema(context.Background(), "api")
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnknownKind)
}

func TestClient_ListComponents(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/addon/api/components": `{"allowlistMode": 0, "components": [
			{"domain": "switch", "platform": "gpio"},
			{"domain": "sensor", "platform": "dht"},
			{"domain": "sensor", "platform": "bme280"}
		]}`,
	})

	refs, err := c.ListComponents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.ComponentRef{
		{Domain: "sensor", Platform: "bme280"},
		{Domain: "sensor", Platform: "dht"},
		{Domain: "switch", Platform: "gpio"},
	}, refs)
}

func TestClient_SendsHeaders(t *testing.T) {
	var got http.Header
	c, err := New("http://ha.local", "eve/1.0.0", 0)
	require.NoError(t, err)
	c.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header
		return testResponse(http.StatusOK, `{"boards": []}`), nil
	})}

	_, err = c.FetchBoards(context.Background(), "esp8266")
	require.NoError(t, err)
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "eve/1.0.0", got.Get("User-Agent"))
}

func TestRetryDelayForAttempt(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: retryBaseDelay},
		{attempt: 1, want: retryBaseDelay},
		{attempt: 2, want: 2 * retryBaseDelay},
		{attempt: 3, want: 4 * retryBaseDelay},
		{attempt: 10, want: retryMaxDelay},
	}
	for _, tt := range tests {
		got := retryDelayForAttempt(tt.attempt, func(_ int64) int64 { return 0 })
		assert.Equal(t, tt.want, got, "attempt %d", tt.attempt)
	}

	jittered := retryDelayForAttempt(1, func(_ int64) int64 { return int64(50 * time.Millisecond) })
	assert.Equal(t, retryBaseDelay+50*time.Millisecond, jittered)
}

func TestClient_RetriesRetryableStatus(t *testing.T) {
	var calls int32
	c, err := New("http://ha.local", "", 0)
	require.NoError(t, err)
	c.client = &http.Client{Transport: roundTripFunc(func(_ *http.Request) (*http.Response, error) {
		if atomic.AddInt32(&calls, 1) < maxRetryAttempts {
			return testResponse(http.StatusServiceUnavailable, "starting"), nil
		}
		return testResponse(http.StatusOK, `{"boards": [{"slug": "d1_mini"}]}`), nil
	})}
	c.randInt63 = func(_ int64) int64 { return 0 }
	c.sleep = func(context.Context, time.Duration) error { return nil }

	boards, err := c.FetchBoards(context.Background(), "esp8266")
	require.NoError(t, err)
	require.Len(t, boards.Boards, 1)
	assert.Equal(t, int32(maxRetryAttempts), atomic.LoadInt32(&calls))
}

func TestClient_GivesUpAsTransient(t *testing.T) {
	var calls int32
	c, err := New("http://ha.local", "", 0)
	require.NoError(t, err)
	c.client = &http.Client{Transport: roundTripFunc(func(_ *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return testResponse(http.StatusBadGateway, ""), nil
	})}
	c.sleep = func(context.Context, time.Duration) error { return nil }

	_, err = c.FetchCoreSchema(context.Background(), "wifi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransient)
	assert.Contains(t, err.Error(), "502 Bad Gateway")
	assert.Equal(t, int32(maxRetryAttempts), atomic.LoadInt32(&calls))
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls int32
	c, err := New("http://ha.local", "", 0)
	require.NoError(t, err)
	c.client = &http.Client{Transport: roundTripFunc(func(_ *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return testResponse(http.StatusBadRequest, "bad target"), nil
	})}
	c.sleep = func(context.Context, time.Duration) error { return nil }

	_, err = c.FetchBoards(context.Background(), "esp31")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTransient)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_CanceledBackoffStops(t *testing.T) {
	c, err := New("http://ha.local", "", 0)
	require.NoError(t, err)
	c.client = &http.Client{Transport: roundTripFunc(func(_ *http.Request) (*http.Response, error) {
		return testResponse(http.StatusServiceUnavailable, ""), nil
	})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.FetchBoards(ctx, "esp32")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_StoresSnapshots(t *testing.T) {
	body := `{"schema": {"type": "object", "properties": {"ssid": {"type": "string"}}}}`
	snaps := mocks.NewMockSchemaSnapshotStore(t)
	snaps.EXPECT().Put(mock.Anything, mock.MatchedBy(func(s *entity.SchemaSnapshot) bool {
		return s.Key == "api/core-schema/wifi" && string(s.Data) == body && !s.FetchedAt.IsZero()
	})).Return(errors.New("disk full")).Once()

	c, _ := newTestClient(t, map[string]string{"/addon/api/core-schema/wifi": body})
	c.WithSnapshots(snaps)

	// A failed store does not fail the fetch.
	core, err := c.FetchCoreSchema(context.Background(), "wifi")
	require.NoError(t, err)
	assert.Equal(t, "wifi", core.Name)

	// 404 is not transient, so no snapshot lookup happens.
	_, err = c.FetchCoreSchema(context.Background(), "mqtt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ServesSnapshotWhenUnavailable(t *testing.T) {
	snaps := mocks.NewMockSchemaSnapshotStore(t)
	snaps.EXPECT().Get(mock.Anything, "api/espboards/esp32").Return(&entity.SchemaSnapshot{
		Key:       "api/espboards/esp32",
		Data:      []byte(`{"boards": [{"slug": "esp32dev"}]}`),
		FetchedAt: time.Unix(1_700_000_000, 0),
	}, nil).Once()
	snaps.EXPECT().Get(mock.Anything, "api/espboards/esp8266").Return(nil, nil).Once()

	c, err := New("http://ha.local", "", 0)
	require.NoError(t, err)
	c.client = &http.Client{Transport: roundTripFunc(func(_ *http.Request) (*http.Response, error) {
		return testResponse(http.StatusServiceUnavailable, ""), nil
	})}
	c.sleep = func(context.Context, time.Duration) error { return nil }
	c.WithSnapshots(snaps)

	boards, err := c.FetchBoards(context.Background(), "esp32")
	require.NoError(t, err)
	assert.Equal(t, "esp32", boards.Target)
	require.Len(t, boards.Boards, 1)
	assert.Equal(t, "esp32dev", boards.Boards[0].Slug)

	_, err = c.FetchBoards(context.Background(), "esp8266")
	assert.ErrorIs(t, err, ErrTransient)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func testResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}
