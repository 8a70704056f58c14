package snapshot

import (
	"os"
	"path/filepath"

	"github.com/pcuci/catp/pkg/errors"
)

// ZoomLevel selects the resolution of the snapshot artifact
type ZoomLevel string

const (
	// ZoomRepos renders a tree of the discovered repositories
	ZoomRepos ZoomLevel = "repos"

	// ZoomFiles renders the list of accepted file paths
	ZoomFiles ZoomLevel = "files"

	// ZoomContents renders the full snapshot with file contents
	ZoomContents ZoomLevel = "contents"
)

// ParseZoom validates a zoom level supplied on the command line
func ParseZoom(s string) (ZoomLevel, error) {
	switch ZoomLevel(s) {
	case ZoomRepos, ZoomFiles, ZoomContents:
		return ZoomLevel(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "invalid zoom level %q (want repos, files or contents)", s)
}

// outputSuffix returns the default filename suffix for the zoom level
func (z ZoomLevel) outputSuffix() string {
	switch z {
	case ZoomRepos:
		return "-repos.txt"
	case ZoomFiles:
		return "-files.txt"
	default:
		return "-llm.txt"
	}
}

// DefaultOutputPath derives the artifact destination from the project
// name and zoom level, in the system temporary directory
func DefaultOutputPath(projectName string, zoom ZoomLevel) string {
	if projectName == "" {
		projectName = "snapshot"
	}
	return filepath.Join(os.TempDir(), projectName+zoom.outputSuffix())
}
