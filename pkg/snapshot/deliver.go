package snapshot

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pcuci/catp/pkg/errors"
	"github.com/pcuci/catp/pkg/logging"
)

// Deliver writes the artifact to outPath, creating parent directories
// and overwriting any existing file. The write is all-or-nothing: the
// artifact lands in a temporary file in the destination directory and
// is renamed into place, so a failure never leaves a partial artifact
// at outPath.
func Deliver(fs afero.Fs, artifact []byte, outPath string) error {
	logger := logging.GetLogger("snapshot.deliver")

	dir := filepath.Dir(outPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "cannot create output directory %s", dir)
	}

	tmp, err := afero.TempFile(fs, dir, ".catp-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "cannot create temporary file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(artifact); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrWrite, "cannot write artifact to %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrWrite, "cannot finalize artifact at %s", tmpName)
	}

	if err := fs.Chmod(tmpName, 0644); err != nil {
		logger.Debug().Err(err).Str("path", tmpName).Msg("cannot chmod artifact, keeping temp-file mode")
	}

	if err := fs.Rename(tmpName, outPath); err != nil {
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrWrite, "cannot move artifact into place at %s", outPath)
	}

	logger.Info().Str("path", outPath).Int("bytes", len(artifact)).Msg("Artifact delivered")
	return nil
}
