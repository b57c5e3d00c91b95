package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/eve/internal/application/port/mocks"
	"github.com/bnema/eve/internal/application/usecase"
	"github.com/bnema/eve/internal/catalog"
	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/editor"
	"github.com/bnema/eve/internal/form"
	"github.com/bnema/eve/internal/schema"
)

const sensorDoc = `esphome:
  name: node

sensor:
  - platform: dht
    name: Outside
`

func dhtSchema() *entity.SchemaResponse {
	props := schema.NewProperties()
	props.Set("platform", &schema.String{})
	props.Set("name", &schema.String{})
	props.Set("update_interval", &schema.String{})
	url := "https://esphome.io/components/sensor/dht"
	return &entity.SchemaResponse{
		Domain:      "sensor",
		Platform:    "dht",
		DisplayName: "DHT Temperature+Humidity Sensor",
		Docs:        &entity.Docs{URL: &url},
		Schema:      &schema.Object{Properties: props, Required: []string{"name"}},
	}
}

func TestRenderFormUseCase_Execute(t *testing.T) {
	t.Run("component form edits through the store", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(sensorDoc, nil)

		fetcher := mocks.NewMockSchemaFetcher(t)
		fetcher.EXPECT().FetchSchema(mock.Anything, "sensor", "dht").Return(dhtSchema(), nil).Once()
		cat := catalog.NewService(fetcher, catalog.Hooks{}, zerolog.Nop())

		uc := usecase.NewRenderFormUseCase(repo, cat, editor.Options{})

		// Act
		out, err := uc.Execute(context.Background(), usecase.RenderFormInput{
			Path:   path,
			Target: usecase.Target{Domain: "sensor", Index: 0},
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "DHT Temperature+Humidity Sensor", out.Title)
		assert.Equal(t, "https://esphome.io/components/sensor/dht", out.DocsURL)
		assert.Equal(t, entity.SelectComponent, out.Selection.Kind)

		f, ok := out.Widget.(*form.Form)
		require.True(t, ok)
		require.Len(t, f.Fields, 2)
		name, ok := f.Fields[0].(*form.TextInput)
		require.True(t, ok)
		assert.Equal(t, "Outside", name.Value)

		name.Set("Kitchen")
		assert.Contains(t, out.Store.Text(), "name: Kitchen")
	})

	t.Run("core form", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(sensorDoc, nil)

		props := schema.NewProperties()
		props.Set("name", &schema.String{})
		fetcher := mocks.NewMockSchemaFetcher(t)
		fetcher.EXPECT().FetchCoreSchema(mock.Anything, "esphome").
			Return(&entity.CoreSchemaResponse{Name: "esphome", Schema: &schema.Object{Properties: props}}, nil)
		cat := catalog.NewService(fetcher, catalog.Hooks{}, zerolog.Nop())

		uc := usecase.NewRenderFormUseCase(repo, cat, editor.Options{})

		out, err := uc.Execute(context.Background(), usecase.RenderFormInput{Path: path, Target: usecase.Target{Core: "esphome"}})

		require.NoError(t, err)
		assert.Equal(t, "esphome", out.Title)
		f := out.Widget.(*form.Form)
		require.Len(t, f.Fields, 1)
		assert.Equal(t, "node", f.Fields[0].(*form.TextInput).Value)
	})

	t.Run("board lists the catalog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(editor.DefaultText, nil)

		fetcher := mocks.NewMockSchemaFetcher(t)
		fetcher.EXPECT().FetchBoards(mock.Anything, "esp32").Return(&entity.BoardCatalog{
			Target: "esp32",
			Boards: []entity.Board{{Target: "esp32", Slug: "esp32dev", Name: "ESP32 DevKit"}},
		}, nil)
		cat := catalog.NewService(fetcher, catalog.Hooks{}, zerolog.Nop())

		uc := usecase.NewRenderFormUseCase(repo, cat, editor.Options{})

		out, err := uc.Execute(context.Background(), usecase.RenderFormInput{Path: path, Target: usecase.Target{Core: "board"}})

		require.NoError(t, err)
		assert.Nil(t, out.Widget)
		assert.Equal(t, "esp32", out.BoardTarget)
		require.Len(t, out.Boards.Boards, 1)
	})

	t.Run("schema fetch error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(sensorDoc, nil)

		boom := errors.New("no schema")
		fetcher := mocks.NewMockSchemaFetcher(t)
		fetcher.EXPECT().FetchSchema(mock.Anything, "sensor", "dht").Return(nil, boom)
		cat := catalog.NewService(fetcher, catalog.Hooks{}, zerolog.Nop())

		uc := usecase.NewRenderFormUseCase(repo, cat, editor.Options{})

		_, err := uc.Execute(context.Background(), usecase.RenderFormInput{Path: path, Target: usecase.Target{Domain: "sensor"}})

		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, cat.SchemaErr("sensor", "dht"), boom)
	})

	t.Run("unknown component", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(sensorDoc, nil)
		cat := catalog.NewService(mocks.NewMockSchemaFetcher(t), catalog.Hooks{}, zerolog.Nop())

		uc := usecase.NewRenderFormUseCase(repo, cat, editor.Options{})

		_, err := uc.Execute(context.Background(), usecase.RenderFormInput{Path: path, Target: usecase.Target{Domain: "sensor", Index: 3}})

		assert.ErrorIs(t, err, editor.ErrNotFound)
	})
}

func TestSetFieldUseCase_Execute(t *testing.T) {
	t.Run("sets a nested core field", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(sensorDoc, nil)
		var written string
		repo.EXPECT().Write(gomock.Any(), path, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, text string) error {
			written = text
			return nil
		})

		uc := usecase.NewSetFieldUseCase(repo, editor.Options{})

		// Act
		out, err := uc.Execute(context.Background(), usecase.SetFieldInput{
			Path:   path,
			Target: usecase.Target{Core: "wifi"},
			Field:  "ap.password",
			Value:  "!secret ap_password",
		})

		// Assert
		require.NoError(t, err)
		assert.True(t, out.Changed)
		assert.Equal(t, out.Text, written)

		cfg, err := document.ParseConfig(written)
		require.NoError(t, err)
		wifi, _ := cfg.Get("wifi")
		ap, _ := wifi.(*document.Mapping).Get("ap")
		pw, _ := ap.(*document.Mapping).Get("password")
		assert.Equal(t, document.Secret{Key: "ap_password"}, pw)
	})

	t.Run("typed scalar on a component", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(sensorDoc, nil)

		uc := usecase.NewSetFieldUseCase(repo, editor.Options{})

		out, err := uc.Execute(context.Background(), usecase.SetFieldInput{
			Path:   path,
			Target: usecase.Target{Domain: "sensor"},
			Field:  "accuracy_decimals",
			Value:  "2",
			DryRun: true,
		})

		require.NoError(t, err)
		assert.Contains(t, out.Text, "    accuracy_decimals: 2\n")
	})

	t.Run("empty value removes the field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(sensorDoc, nil)

		uc := usecase.NewSetFieldUseCase(repo, editor.Options{})

		out, err := uc.Execute(context.Background(), usecase.SetFieldInput{
			Path:   path,
			Target: usecase.Target{Domain: "sensor"},
			Field:  "name",
			DryRun: true,
		})

		require.NoError(t, err)
		assert.NotContains(t, out.Text, "Outside")
		assert.Contains(t, out.Text, "platform: dht")
	})

	t.Run("invalid field path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)

		uc := usecase.NewSetFieldUseCase(repo, editor.Options{})

		_, err := uc.Execute(context.Background(), usecase.SetFieldInput{Path: path, Target: usecase.Target{Core: "wifi"}, Field: "ap..x", Value: "1"})

		assert.ErrorIs(t, err, editor.ErrInvalidArgument)
	})

	t.Run("no target", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(sensorDoc, nil)

		uc := usecase.NewSetFieldUseCase(repo, editor.Options{})

		_, err := uc.Execute(context.Background(), usecase.SetFieldInput{Path: path, Field: "name", Value: "x"})

		assert.ErrorIs(t, err, usecase.ErrNoTarget)
	})
}
