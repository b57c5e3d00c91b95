package filesystem

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_ReadWrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/cfg", 0o755))
	a := NewWithFs(fsys)
	ctx := context.Background()

	_, err := a.Read(ctx, "/cfg/node.yaml")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, a.Write(ctx, "/cfg/node.yaml", "esphome:\n  name: demo\n"))

	text, err := a.Read(ctx, "/cfg/node.yaml")
	require.NoError(t, err)
	assert.Equal(t, "esphome:\n  name: demo\n", text)

	ok, err := a.Exists(ctx, "/cfg/node.yaml")
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := afero.ReadDir(fsys, "/cfg")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestAdapter_WriteKeepsMode(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/node.yaml", []byte("a: 1\n"), 0o600))
	a := NewWithFs(fsys)

	require.NoError(t, a.Write(context.Background(), "/node.yaml", "a: 2\n"))

	info, err := fsys.Stat("/node.yaml")
	require.NoError(t, err)
	assert.EqualValues(t, 0o600, info.Mode().Perm())
}

func TestAdapter_CanceledContext(t *testing.T) {
	a := NewWithFs(afero.NewMemMapFs())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Read(ctx, "/x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, a.Write(ctx, "/x", ""), context.Canceled)
}
