// Package discovery finds candidate files under one or more root
// paths. A root inside a Git working tree is enumerated through git
// (tracked plus untracked-but-not-ignored files), optionally descending
// into nested repositories up to a configured depth. Roots outside
// version control fall back to a plain recursive walk.
package discovery

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/pcuci/catp/pkg/errors"
	"github.com/pcuci/catp/pkg/logging"
	"github.com/pcuci/catp/pkg/rules"
)

// Candidate is a regular file surviving discovery, pending filter
// evaluation. Display is the slash-separated path used for rule
// matching and artifact headers.
type Candidate struct {
	AbsPath string
	Display string
}

// Options controls one discovery pass
type Options struct {
	// GitAware enables tracked-file enumeration for version-controlled roots
	GitAware bool

	// Depth bounds nested-repository recursion: 0 scans only the
	// root's own repository, N descends N levels, negative is unbounded
	Depth int
}

// Result holds everything one discovery pass produced
type Result struct {
	// Candidates is deduplicated across roots and sorted by display path
	Candidates []Candidate

	// RepoRoots lists the repositories that were enumerated, sorted;
	// empty when discovery fell back to a plain walk
	RepoRoots []string
}

// Discoverer runs discovery against a filesystem and a git lister
type Discoverer struct {
	fs    afero.Fs
	git   GitLister
	rules *rules.Ruleset
}

// New creates a Discoverer. git may be nil when Options.GitAware is
// always false.
func New(fs afero.Fs, git GitLister, rs *rules.Ruleset) *Discoverer {
	return &Discoverer{fs: fs, git: git, rules: rs}
}

// Discover validates the roots and collects candidate files from each,
// collapsing duplicates reachable through multiple roots. displayBase
// anchors the relative display paths; files outside it keep their
// absolute path.
func (d *Discoverer) Discover(ctx context.Context, roots []string, displayBase string, opts Options) (*Result, error) {
	logger := logging.GetLogger("discovery")

	absRoots := make([]string, 0, len(roots))
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPathNotFound, "cannot resolve root %q", root)
		}
		info, err := d.fs.Stat(abs)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Newf(errors.ErrPathNotFound, "root %q does not exist", root).
					WithDetail("root", abs)
			}
			return nil, errors.Wrapf(err, errors.ErrNotADirectory, "cannot read root %q", root)
		}
		if !info.IsDir() {
			return nil, errors.Newf(errors.ErrNotADirectory, "root %q is not a directory", root).
				WithDetail("root", abs)
		}
		absRoots = append(absRoots, abs)
	}

	seen := make(map[string]bool)
	seenRepos := make(map[string]bool)
	result := &Result{}

	for _, root := range absRoots {
		var (
			files []string
			repos []string
		)

		if opts.GitAware {
			repos = d.findRepoRoots(ctx, root, displayBase, opts.Depth)
		}

		if len(repos) > 0 {
			logger.Debug().Str("root", root).Int("repos", len(repos)).Msg("git-aware enumeration")
			for _, repo := range repos {
				listed, err := d.git.ListFiles(ctx, repo)
				if err != nil {
					logger.Warn().Err(err).Str("repo", repo).Msg("git enumeration failed, skipping repository")
					continue
				}
				for _, rel := range listed {
					files = append(files, filepath.Join(repo, rel))
				}
			}
			for _, repo := range repos {
				if !seenRepos[repo] {
					seenRepos[repo] = true
					result.RepoRoots = append(result.RepoRoots, repo)
				}
			}
		} else {
			logger.Debug().Str("root", root).Msg("plain recursive walk")
			walked, err := d.walk(root, displayBase)
			if err != nil {
				return nil, err
			}
			files = walked
		}

		for _, abs := range files {
			if seen[abs] {
				continue
			}
			info, err := d.fs.Stat(abs)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[abs] = true
			result.Candidates = append(result.Candidates, Candidate{
				AbsPath: abs,
				Display: displayPath(abs, displayBase),
			})
		}
	}

	sort.Slice(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].Display < result.Candidates[j].Display
	})
	sort.Strings(result.RepoRoots)

	logger.Info().
		Int("candidates", len(result.Candidates)).
		Int("repos", len(result.RepoRoots)).
		Msg("Discovery complete")

	return result, nil
}

// displayPath returns path relative to base in slash form, or the
// absolute path when it escapes base
func displayPath(abs, base string) string {
	rel, err := filepath.Rel(base, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
