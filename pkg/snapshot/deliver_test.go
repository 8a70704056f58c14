package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcuci/catp/pkg/errors"
)

func TestDeliverWritesArtifact(t *testing.T) {
	fs := afero.NewMemMapFs()
	out := "/tmp/demo-llm.txt"

	require.NoError(t, Deliver(fs, []byte("artifact body\n"), out))

	content, err := afero.ReadFile(fs, out)
	require.NoError(t, err)
	assert.Equal(t, "artifact body\n", string(content))
}

func TestDeliverCreatesParents(t *testing.T) {
	fs := afero.NewMemMapFs()
	out := "/deep/nested/dir/out.txt"

	require.NoError(t, Deliver(fs, []byte("x"), out))

	exists, err := afero.Exists(fs, out)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeliverOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	out := "/tmp/out.txt"
	require.NoError(t, afero.WriteFile(fs, out, []byte("old"), 0644))

	require.NoError(t, Deliver(fs, []byte("new"), out))

	content, err := afero.ReadFile(fs, out)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestDeliverReadOnlyFilesystem(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := Deliver(fs, []byte("x"), "/tmp/out.txt")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrWrite))
}

func TestDeliverLeavesNoTempFileBehind(t *testing.T) {
	fs := afero.NewMemMapFs()
	out := "/tmp/out.txt"
	require.NoError(t, Deliver(fs, []byte("x"), out))

	infos, err := afero.ReadDir(fs, filepath.Dir(out))
	require.NoError(t, err)
	for _, info := range infos {
		assert.NotContains(t, info.Name(), ".catp-")
	}
}
