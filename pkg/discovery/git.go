package discovery

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pcuci/catp/pkg/errors"
	"github.com/pcuci/catp/pkg/logging"
)

// GitLister enumerates the files Git sees in a repository. The lister
// is an external collaborator; catp treats its output as the source of
// truth for tracked-file boundaries and ignore rules.
type GitLister interface {
	// ListFiles returns repository-relative paths for every tracked
	// and untracked-but-not-ignored file in the repository at repoRoot.
	ListFiles(ctx context.Context, repoRoot string) ([]string, error)
}

// ExecGit lists files by shelling out to the git binary
type ExecGit struct{}

// ListFiles runs git ls-files with NUL-separated output so paths with
// spaces or unusual characters survive intact
func (ExecGit) ListFiles(ctx context.Context, repoRoot string) ([]string, error) {
	logger := logging.GetLogger("discovery.git")

	cmd := exec.CommandContext(ctx, "git", "-C", repoRoot,
		"ls-files", "--cached", "--others", "--exclude-standard", "-z", "--no-empty-directory")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		logger.Debug().Str("repo", repoRoot).Str("stderr", detail).Msg("git ls-files failed")
		return nil, errors.Wrapf(err, errors.ErrGitList, "git ls-files failed for %s: %s", repoRoot, detail)
	}

	var files []string
	for _, p := range strings.Split(stdout.String(), "\x00") {
		if p != "" {
			files = append(files, p)
		}
	}

	logger.Debug().Str("repo", repoRoot).Int("files", len(files)).Msg("git enumeration complete")
	return files, nil
}
