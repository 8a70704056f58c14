package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcuci/catp/pkg/errors"
)

// isolateEnv points the XDG directories at a temp dir so tests never
// touch the real user configuration or state.
func isolateEnv(t *testing.T) {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCmd(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "catp version dev")
	assert.Contains(t, out, "commit:")
}

func TestInvalidZoom(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "--zoom", "galaxy", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestAllowWithoutOnly(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "--allow", "*.lock", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidRules))
}

func TestMissingRoot(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathNotFound))
}

func TestSnapshotContents(t *testing.T) {
	isolateEnv(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("print('hi')\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "x.js"), []byte("junk"), 0644))

	outPath := filepath.Join(t.TempDir(), "snap.txt")
	out, _, err := execute(t, "--no-git", "-o", outPath, root)
	require.NoError(t, err)
	assert.Contains(t, out, outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a.py")
	assert.Contains(t, string(data), "print('hi')")
	assert.NotContains(t, string(data), "x.js")
}

func TestSnapshotFilesZoom(t *testing.T) {
	isolateEnv(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0644))

	outPath := filepath.Join(t.TempDir(), "files.txt")
	_, _, err := execute(t, "--no-git", "-z", "files", "-o", outPath, root)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "📄 FILES (count=1)")
	assert.Contains(t, string(data), "main.go")
	assert.NotContains(t, string(data), "package main")
}

func TestNoMatchingFiles(t *testing.T) {
	isolateEnv(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "photo.jpeg"), []byte{0xff, 0xd8}, 0644))

	_, _, err := execute(t, "--no-git", "-o", filepath.Join(t.TempDir(), "out.txt"), root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoFiles))
}

func TestSizeCapFlagOverride(t *testing.T) {
	isolateEnv(t)

	root := t.TempDir()
	big := bytes.Repeat([]byte("x"), 2048)
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.txt"), big, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "small.txt"), []byte("ok\n"), 0644))

	outPath := filepath.Join(t.TempDir(), "out.txt")
	_, _, err := execute(t, "--no-git", "-k", "1", "-o", outPath, root)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "small.txt")
	assert.NotContains(t, string(data), string(big[:64]))
	assert.Contains(t, string(data), "larger than 1 KB")
}

func TestClipboardFailureIsNonFatal(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PATH", "")
	t.Setenv("WSL_DISTRO_NAME", "")

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("ok\n"), 0644))

	outPath := filepath.Join(t.TempDir(), "out.txt")
	_, errOut, err := execute(t, "--no-git", "-c", "-o", outPath, root)
	require.NoError(t, err)
	assert.Contains(t, errOut, "clipboard copy failed")

	_, statErr := os.Stat(outPath)
	assert.NoError(t, statErr)
}

func TestQuietSuppressesStatus(t *testing.T) {
	isolateEnv(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("ok\n"), 0644))

	out, _, err := execute(t, "--no-git", "-q", "-o", filepath.Join(t.TempDir(), "out.txt"), root)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFlagDefaultsMirrorEmbeddedConfig(t *testing.T) {
	cmd := NewRootCmd()

	// Help output advertises the real built-in defaults, not zero.
	assert.Equal(t, "400", cmd.Flags().Lookup("max-kb").DefValue)
	assert.Equal(t, "0", cmd.Flags().Lookup("depth").DefValue)
	assert.Equal(t, "10", cmd.Flags().Lookup("clipboard-timeout").DefValue)
}

func TestRepoConfigBeatsUntouchedFlagDefault(t *testing.T) {
	isolateEnv(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".catp.toml"), []byte("max_kb = 1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.md"), bytes.Repeat([]byte("x"), 2048), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "small.md"), []byte("ok\n"), 0644))

	outPath := filepath.Join(t.TempDir(), "out.txt")
	_, _, err := execute(t, "--no-git", "-o", outPath, root)
	require.NoError(t, err)

	// The repo-local cap applies even though the flag carries a
	// non-zero default value.
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "small.md")
	assert.Contains(t, string(data), "larger than 1 KB")
}

func TestQuietAndVerboseAreExclusive(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "-q", "-v", t.TempDir())
	require.Error(t, err)
}
