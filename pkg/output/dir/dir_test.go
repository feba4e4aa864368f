package dir_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/wenku/pkg/output"
	"github.com/adrianliechti/wenku/pkg/output/dir"

	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	p, err := dir.New(base)
	require.NoError(t, err)

	location, err := p.Mkdir(ctx, "Sample")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "Sample"), location)

	// creating an existing directory is not an error
	_, err = p.Mkdir(ctx, "Sample")
	require.NoError(t, err)

	err = p.Write(ctx, "Sample", "page-1.jpg", []byte("data"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(base, "Sample", "page-1.jpg"))
	require.NoError(t, err)
	require.Equal(t, "data", string(data))
}

func TestProviderInvalidName(t *testing.T) {
	ctx := context.Background()

	p, err := dir.New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		_, err := p.Mkdir(ctx, name)
		require.ErrorIs(t, err, output.ErrInvalidName, name)
	}

	err = p.Write(ctx, "ok", "../escape.txt", nil)
	require.ErrorIs(t, err, output.ErrInvalidName)
}
