// Package rules implements the glob rule sets that decide which
// discovered files make it into a snapshot. Matching is deterministic
// and free of side effects: the same rule set and the same path always
// produce the same answer.
package rules

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pcuci/catp/pkg/config"
	"github.com/pcuci/catp/pkg/errors"
)

// Ruleset is the compiled filter configuration for one invocation.
// Only/Allow/userExclude come from flags; the default groups come from
// config. The zero value matches nothing; use New.
type Ruleset struct {
	// Only is the user allow-list. When non-empty it replaces the
	// default include patterns.
	Only []string

	// Allow lists exceptions that re-enable paths denied by the
	// default exclude patterns. Valid only alongside Only.
	Allow []string

	includes     []string
	excludes     []string
	userExcludes []string
	excludeDirs  map[string]bool
}

// New validates the pattern groups and compiles a Ruleset.
// The active exclude set is the default excludes minus Allow plus the
// user excludes; the include set is Only∪Allow when Only is non-empty,
// otherwise the default includes.
func New(defaults config.Patterns, only, exclude, allow []string) (*Ruleset, error) {
	if len(allow) > 0 && len(only) == 0 {
		return nil, errors.New(errors.ErrInvalidRules,
			"--allow requires --only: allow patterns are exceptions to the defaults replaced by an allow-list")
	}

	for _, group := range [][]string{only, exclude, allow} {
		for _, p := range group {
			if !doublestar.ValidatePattern(p) {
				return nil, errors.Newf(errors.ErrInvalidRules, "invalid glob pattern %q", p)
			}
		}
	}

	allowed := make(map[string]bool, len(allow))
	for _, p := range allow {
		allowed[p] = true
	}

	excludes := make([]string, 0, len(defaults.ExcludeFiles)+len(exclude))
	for _, p := range defaults.ExcludeFiles {
		if !allowed[p] {
			excludes = append(excludes, p)
		}
	}
	excludes = append(excludes, exclude...)

	var includes []string
	if len(only) > 0 {
		includes = append(append([]string{}, only...), allow...)
	} else {
		includes = append([]string{}, defaults.Include...)
	}

	excludeDirs := make(map[string]bool, len(defaults.ExcludeDirs))
	for _, name := range defaults.ExcludeDirs {
		excludeDirs[name] = true
	}

	return &Ruleset{
		Only:         only,
		Allow:        allow,
		includes:     includes,
		excludes:     excludes,
		userExcludes: append([]string{}, exclude...),
		excludeDirs:  excludeDirs,
	}, nil
}

// IsExcludedDir reports whether a single directory name is on the
// deny-list of directories pruned before descent
func (r *Ruleset) IsExcludedDir(name string) bool {
	return r.excludeDirs[name]
}

// Excluded reports whether the relative path is rejected by the active
// exclude set or sits under a deny-listed directory
func (r *Ruleset) Excluded(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if r.excludeDirs[part] {
			return true
		}
	}
	return MatchesPath(rel, r.excludes)
}

// Included reports whether the relative path matches the active
// include set
func (r *Ruleset) Included(rel string) bool {
	return MatchesPath(rel, r.includes)
}

// ExcludesSubtree reports whether a directory at rel should be pruned
// from traversal entirely. Only user excludes prune subtrees; the
// default deny-list targets files and is applied per file instead.
// A pattern ending in /** denies the prefix directory itself; other
// patterns must match the directory path.
func (r *Ruleset) ExcludesSubtree(rel string) bool {
	for _, p := range r.userExcludes {
		if prefix, ok := strings.CutSuffix(p, "/**"); ok {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
		}
		if match(p, rel) || match(p, rel+"/") {
			return true
		}
	}
	return false
}

// ExcludesRepo reports whether a nested repository at rel is dropped by
// the user patterns: excluded paths are skipped, and when Only is
// non-empty a repository must match it to be scanned
func (r *Ruleset) ExcludesRepo(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	// Repo selection only honors user-supplied excludes; the default
	// file deny-list is about file contents, not repository paths.
	if MatchesPath(rel, r.userExcludes) {
		return true
	}
	if len(r.Only) > 0 && !MatchesPath(rel, r.Only) {
		return true
	}
	return false
}

// MatchesPath reports whether rel matches any of the patterns.
// Patterns containing a slash or ** are matched against the full
// slash-separated path; simple patterns match any single component.
func MatchesPath(rel string, patterns []string) bool {
	parts := strings.Split(rel, "/")
	for _, p := range patterns {
		if strings.Contains(p, "/") || strings.Contains(p, "**") {
			if match(p, rel) {
				return true
			}
			continue
		}
		for _, part := range parts {
			if match(p, part) {
				return true
			}
		}
	}
	return false
}

// match wraps doublestar, treating an invalid pattern as a non-match.
// New validates all user patterns, so this only guards defaults.
func match(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}
