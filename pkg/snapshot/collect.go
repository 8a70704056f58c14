// Package snapshot assembles the artifact: it filters discovered
// candidates through the glob rule sets and size cap, renders the
// survivors with path headers into one byte sequence, and delivers the
// result to its destination.
package snapshot

import (
	"sort"

	"github.com/spf13/afero"

	"github.com/pcuci/catp/pkg/discovery"
	"github.com/pcuci/catp/pkg/logging"
	"github.com/pcuci/catp/pkg/rules"
)

// SkippedFile records a candidate rejected for exceeding the size cap
type SkippedFile struct {
	Display string
	SizeKB  int64
}

// Collect applies the rule set and size cap to the candidates.
// Evaluation is deterministic: both returned slices are sorted by
// display path, independent of input order. Files over the cap are
// skipped entirely, never truncated.
func Collect(fs afero.Fs, candidates []discovery.Candidate, rs *rules.Ruleset, maxKB int) ([]discovery.Candidate, []SkippedFile) {
	logger := logging.GetLogger("snapshot.collect")

	var kept []discovery.Candidate
	var skipped []SkippedFile

	for _, c := range candidates {
		if rs.Excluded(c.Display) {
			logger.Debug().Str("file", c.Display).Msg("skip: matches exclude pattern")
			continue
		}
		if !rs.Included(c.Display) {
			logger.Debug().Str("file", c.Display).Msg("skip: does not match include pattern")
			continue
		}

		info, err := fs.Stat(c.AbsPath)
		if err != nil {
			logger.Warn().Err(err).Str("file", c.Display).Msg("cannot stat file")
			continue
		}
		if info.Size() > int64(maxKB)*1024 {
			skipped = append(skipped, SkippedFile{Display: c.Display, SizeKB: info.Size() / 1024})
			continue
		}

		kept = append(kept, c)
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Display < kept[j].Display })
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].Display < skipped[j].Display })

	logger.Info().
		Int("candidates", len(candidates)).
		Int("kept", len(kept)).
		Int("skippedLarge", len(skipped)).
		Msg("Filtering complete")

	return kept, skipped
}
