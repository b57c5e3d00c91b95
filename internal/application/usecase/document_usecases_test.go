package usecase_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/eve/internal/application/port/mocks"
	"github.com/bnema/eve/internal/application/usecase"
	"github.com/bnema/eve/internal/editor"
)

const path = "/configs/node.yaml"

func TestFormatDocumentUseCase_Execute(t *testing.T) {
	t.Run("reorders and writes", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return("wifi:\n  ssid: x\nesphome:\n  name: n\n", nil)
		repo.EXPECT().Write(gomock.Any(), path, "esphome:\n  name: n\n\nwifi:\n  ssid: x\n").Return(nil)

		uc := usecase.NewFormatDocumentUseCase(repo, editor.Options{})

		// Act
		out, err := uc.Execute(context.Background(), usecase.FormatDocumentInput{Path: path, Write: true})

		// Assert
		require.NoError(t, err)
		assert.True(t, out.Changed)
		assert.True(t, out.Written)
	})

	t.Run("canonical text is not rewritten", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return("esphome:\n  name: n\n", nil)

		uc := usecase.NewFormatDocumentUseCase(repo, editor.Options{})

		// Act
		out, err := uc.Execute(context.Background(), usecase.FormatDocumentInput{Path: path, Write: true})

		// Assert
		require.NoError(t, err)
		assert.False(t, out.Changed)
		assert.False(t, out.Written)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return("esphome: [\n", nil)

		uc := usecase.NewFormatDocumentUseCase(repo, editor.Options{})

		// Act
		_, err := uc.Execute(context.Background(), usecase.FormatDocumentInput{Path: path})

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse "+path)
	})

	t.Run("read error", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		boom := errors.New("boom")
		repo.EXPECT().Read(gomock.Any(), path).Return("", boom)

		uc := usecase.NewFormatDocumentUseCase(repo, editor.Options{})

		// Act
		_, err := uc.Execute(context.Background(), usecase.FormatDocumentInput{Path: path})

		// Assert
		assert.ErrorIs(t, err, boom)
	})
}

func TestToggleBlockUseCase_Execute(t *testing.T) {
	const live = "esphome:\n  name: n\n\nsensor:\n  - platform: dht\n    pin: GPIO4\n"

	t.Run("disable then enable component", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		var stored string
		repo.EXPECT().Read(gomock.Any(), path).Return(live, nil)
		repo.EXPECT().Write(gomock.Any(), path, gomock.Any()).DoAndReturn(func(_ context.Context, _, text string) error {
			stored = text
			return nil
		})

		uc := usecase.NewToggleBlockUseCase(repo, editor.Options{})

		// Act
		out, err := uc.Execute(context.Background(), usecase.ToggleBlockInput{Path: path, Domain: "sensor", Index: 0})

		// Assert
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^sensor:dht:[0-9a-f]{8}$`), out.Key)
		assert.Equal(t, stored, out.Text)
		assert.Contains(t, stored, "# eve:disabled_component:"+out.Key+"\n# sensor:\n#   - platform: dht\n#     pin: GPIO4")

		// Arrange
		repo.EXPECT().Read(gomock.Any(), path).Return(stored, nil)
		repo.EXPECT().Write(gomock.Any(), path, live).Return(nil)

		// Act
		back, err := uc.Execute(context.Background(), usecase.ToggleBlockInput{Path: path, Domain: "sensor", Key: out.Key, Enable: true})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, live, back.Text)
	})

	t.Run("dry run does not write", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return("esphome:\n  name: n\n\nlogger:\n  level: DEBUG\n", nil)

		uc := usecase.NewToggleBlockUseCase(repo, editor.Options{})

		// Act
		out, err := uc.Execute(context.Background(), usecase.ToggleBlockInput{Path: path, Core: "logger", DryRun: true})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "esphome:\n  name: n\n\n# eve:disabled_core:logger\n# logger:\n#   level: DEBUG\n", out.Text)
	})

	t.Run("required core section", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(live, nil)

		uc := usecase.NewToggleBlockUseCase(repo, editor.Options{})

		// Act
		_, err := uc.Execute(context.Background(), usecase.ToggleBlockInput{Path: path, Core: "esphome"})

		// Assert
		assert.ErrorIs(t, err, editor.ErrNotOptional)
	})

	t.Run("missing index", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(live, nil)

		uc := usecase.NewToggleBlockUseCase(repo, editor.Options{})

		// Act
		_, err := uc.Execute(context.Background(), usecase.ToggleBlockInput{Path: path, Domain: "sensor", Index: 3})

		// Assert
		assert.ErrorIs(t, err, editor.ErrNotFound)
	})

	t.Run("nothing selected", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDocumentRepository(ctrl)
		repo.EXPECT().Read(gomock.Any(), path).Return(live, nil)

		uc := usecase.NewToggleBlockUseCase(repo, editor.Options{})

		// Act
		_, err := uc.Execute(context.Background(), usecase.ToggleBlockInput{Path: path})

		// Assert
		assert.ErrorIs(t, err, usecase.ErrInvalidToggle)
	})
}

func TestListBlocksUseCase_Execute(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDocumentRepository(ctrl)
	text := "esphome:\n  name: n\n\n" +
		"# eve:disabled_core:logger\n# logger:\n#   level: DEBUG\n\n" +
		"# eve:disabled_component:switch:gpio:0badf00d\n# switch:\n#   - platform: gpio\n#     pin: GPIO5\n"
	repo.EXPECT().Read(gomock.Any(), path).Return(text, nil)

	uc := usecase.NewListBlocksUseCase(repo, editor.Options{})

	// Act
	out, err := uc.Execute(context.Background(), usecase.ListBlocksInput{Path: path})

	// Assert
	require.NoError(t, err)
	require.Len(t, out.Core, 1)
	assert.Equal(t, "logger", out.Core[0].Key)
	assert.Equal(t, 4, out.Core[0].Line)

	require.Len(t, out.Components, 1)
	c := out.Components[0]
	assert.Equal(t, "switch", c.Domain)
	assert.Equal(t, "gpio", c.Platform)
	assert.Equal(t, "0badf00d", c.Hash)
	assert.Equal(t, 8, c.Line)
	assert.Contains(t, c.Text, "#     pin: GPIO5")
}
