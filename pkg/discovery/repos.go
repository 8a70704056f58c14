package discovery

import (
	"context"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pcuci/catp/pkg/logging"
)

// findRepoRoots locates Git repository roots under start, breadth
// first, up to maxDepth levels below it (negative = unbounded, 0 =
// start only). Deny-listed directory names and user-excluded subtrees
// are pruned before descent; symlinked directories are never followed.
// Nested repositories are still filtered by the user's only/exclude
// patterns, matched against the same display-base relative paths the
// filter stage sees, so repo selection and file selection agree.
func (d *Discoverer) findRepoRoots(ctx context.Context, start, displayBase string, maxDepth int) []string {
	logger := logging.GetLogger("discovery.repos")

	if maxDepth < 0 {
		maxDepth = math.MaxInt
	}

	type entry struct {
		dir   string
		depth int
	}

	var found []string
	queue := []entry{{dir: start, depth: 0}}

	for len(queue) > 0 {
		if ctx.Err() != nil {
			return found
		}
		current := queue[0]
		queue = queue[1:]

		rel := displayPath(current.dir, displayBase)

		if d.isRepo(current.dir) {
			// The root repository is never filtered out.
			if current.dir != start && d.rules.ExcludesRepo(rel) {
				logger.Debug().Str("repo", rel).Msg("repository dropped by filter patterns")
				continue
			}
			found = append(found, current.dir)
		}

		if current.depth >= maxDepth {
			continue
		}

		entries, err := afero.ReadDir(d.fs, current.dir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", current.dir).Msg("cannot scan directory")
			continue
		}

		for _, info := range entries {
			if !info.IsDir() {
				continue
			}
			name := info.Name()
			if d.rules.IsExcludedDir(name) {
				continue
			}
			child := filepath.Join(current.dir, name)
			if d.isSymlink(child) {
				continue
			}
			childRel := displayPath(child, displayBase)
			if d.rules.ExcludesSubtree(childRel) {
				logger.Debug().Str("dir", childRel).Msg("subtree excluded, not descending")
				continue
			}
			queue = append(queue, entry{dir: child, depth: current.depth + 1})
		}
	}

	return found
}

// isRepo reports whether dir is the top of a Git working tree
func (d *Discoverer) isRepo(dir string) bool {
	info, err := d.fs.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// isSymlink reports whether path is a symbolic link, when the
// filesystem can tell. Filesystems without lstat (the in-memory test
// fs) report false.
func (d *Discoverer) isSymlink(path string) bool {
	lstater, ok := d.fs.(afero.Lstater)
	if !ok {
		return false
	}
	info, lstatCalled, err := lstater.LstatIfPossible(path)
	if err != nil || !lstatCalled {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}
