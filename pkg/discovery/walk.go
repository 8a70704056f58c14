package discovery

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pcuci/catp/pkg/errors"
	"github.com/pcuci/catp/pkg/logging"
)

// walk recursively collects regular files under root, pruning
// deny-listed directory names and user-excluded subtrees before
// descent. Subtree pruning matches against the same display-base
// relative paths the filter stage sees, so pruning never drops a file
// the filter would accept. Unreadable entries are logged and skipped,
// not fatal.
func (d *Discoverer) walk(root, displayBase string) ([]string, error) {
	logger := logging.GetLogger("discovery.walk")

	var files []string
	err := afero.Walk(d.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("cannot access path")
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if path == root {
				return nil
			}
			if d.rules.IsExcludedDir(info.Name()) {
				return filepath.SkipDir
			}
			if d.isSymlink(path) {
				return filepath.SkipDir
			}
			if d.rules.ExcludesSubtree(displayPath(path, displayBase)) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "walk failed under %s", root)
	}
	return files, nil
}
