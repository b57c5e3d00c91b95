package schemastore

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/schema"
)

func newStore(t *testing.T, files map[string]string) *Store {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fsys, "/schemas/"+name, []byte(body), 0o644))
	}
	return New(fsys, "/schemas", time.Second)
}

func TestStore_FetchSchema(t *testing.T) {
	s := newStore(t, map[string]string{
		"components/sensor/dht.json": `{"displayName": "DHT", "schema": {"type": "object", "properties": {"pin": {"type": "pin"}}}}`,
	})

	resp, err := s.FetchSchema(context.Background(), "sensor", "dht")
	require.NoError(t, err)
	assert.Equal(t, "sensor", resp.Domain)
	assert.Equal(t, "dht", resp.Platform)
	assert.Equal(t, "DHT", resp.DisplayName)
	obj, ok := resp.Schema.(*schema.Object)
	require.True(t, ok)
	assert.Equal(t, 1, obj.Properties.Len())

	_, err = s.FetchSchema(context.Background(), "sensor", "bme280")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_FetchCoreSchemaAndBoards(t *testing.T) {
	s := newStore(t, map[string]string{
		"core/wifi.json":    `{"schema": {"type": "object", "properties": {"ssid": {"type": "string"}}}}`,
		"boards/esp32.json": `{"boards": [{"slug": "esp32dev", "name": "ESP32 Dev Module"}]}`,
	})

	core, err := s.FetchCoreSchema(context.Background(), "wifi")
	require.NoError(t, err)
	assert.Equal(t, "wifi", core.Name)

	boards, err := s.FetchBoards(context.Background(), "esp32")
	require.NoError(t, err)
	assert.Equal(t, "esp32", boards.Target)
	require.Len(t, boards.Boards, 1)
	assert.Equal(t, "esp32dev", boards.Boards[0].Slug)
}

func TestStore_RejectsPathTraversal(t *testing.T) {
	s := newStore(t, nil)
	_, err := s.FetchSchema(context.Background(), "..", "passwd")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FetchCoreSchema(context.Background(), "a/b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DecodeError(t *testing.T) {
	s := newStore(t, map[string]string{"core/api.json": `{"schema": {"type": "bogus"}}`})
	_, err := s.FetchCoreSchema(context.Background(), "api")
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnknownKind)
}

func TestStore_ListComponents(t *testing.T) {
	s := newStore(t, map[string]string{
		"components/switch/gpio.json":   `{}`,
		"components/sensor/dht.json":    `{}`,
		"components/sensor/bme280.json": `{}`,
		"components/README.md":          ``,
	})

	refs, err := s.ListComponents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.ComponentRef{
		{Domain: "sensor", Platform: "bme280"},
		{Domain: "sensor", Platform: "dht"},
		{Domain: "switch", Platform: "gpio"},
	}, refs)

	empty, err := New(afero.NewMemMapFs(), "/none", 0).ListComponents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
