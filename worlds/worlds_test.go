package worlds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	data, err := Source("")
	require.NoError(t, err)
	assert.Equal(t, Pirate, data)

	path := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: tiny\n"), 0o644))
	data, err = Source(path)
	require.NoError(t, err)
	assert.Equal(t, "title: tiny\n", string(data))

	_, err = Source(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
