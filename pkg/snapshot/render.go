package snapshot

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/pcuci/catp/pkg/discovery"
	"github.com/pcuci/catp/pkg/logging"
)

const (
	// BinaryPlaceholder replaces content that does not decode as text
	BinaryPlaceholder = "[binary file, skipped content]"

	rule = "================================================================================"
)

// RenderOptions parameterizes artifact rendering
type RenderOptions struct {
	// ProjectName and ProjectPath identify the snapshot in the preamble
	ProjectName string
	ProjectPath string

	// TruncateNotebooks strips cell outputs from .ipynb files
	TruncateNotebooks bool

	// MaxKB is reported in the oversize footer
	MaxKB int
}

// RenderContents produces the full snapshot: preamble, each file's
// banner and content in order, end marker, and a footer listing files
// skipped for size. Per-file read or decode failures degrade to
// placeholder content; rendering itself never fails.
func RenderContents(fs afero.Fs, files []discovery.Candidate, skipped []SkippedFile, opts RenderOptions) []byte {
	logger := logging.GetLogger("snapshot.render")

	var buf bytes.Buffer
	writePreamble(&buf, opts)

	for i, f := range files {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "📄 FILE %s:\n", f.Display)
		buf.WriteString(fileContent(fs, f, opts.TruncateNotebooks, logger))
	}

	writeEndMarker(&buf, opts)

	if len(skipped) > 0 {
		fmt.Fprintf(&buf, "\n%s\n# Skipped %d file(s) larger than %d KB\n%s\n", rule, len(skipped), opts.MaxKB, rule)
		for _, s := range skipped {
			fmt.Fprintf(&buf, "# - %s (%d KB)\n", s.Display, s.SizeKB)
		}
	}

	return buf.Bytes()
}

// RenderFileList produces the file manifest for the files zoom level
func RenderFileList(files []discovery.Candidate, opts RenderOptions) []byte {
	var buf bytes.Buffer
	writePreamble(&buf, opts)
	fmt.Fprintf(&buf, "📄 FILES (count=%d)\n", len(files))
	for _, f := range files {
		buf.WriteString(f.Display + "\n")
	}
	writeEndMarker(&buf, opts)
	return buf.Bytes()
}

// RenderRepoTree produces the repository manifest for the repos zoom
// level: a tree of discovered repositories relative to the project root
func RenderRepoTree(repoRoots []string, depth int, opts RenderOptions) []byte {
	var buf bytes.Buffer
	writePreamble(&buf, opts)
	fmt.Fprintf(&buf, "📦 REPOSITORIES (depth=%d)\n\n", depth)

	lines, count := buildRepoTree(repoRoots, opts.ProjectPath)
	for _, line := range lines {
		buf.WriteString(line + "\n")
	}

	noun := "repositories"
	if count == 1 {
		noun = "repository"
	}
	fmt.Fprintf(&buf, "\nFound: %d %s\n", count, noun)

	writeEndMarker(&buf, opts)
	return buf.Bytes()
}

func writePreamble(buf *bytes.Buffer, opts RenderOptions) {
	fmt.Fprintf(buf, "START %s (%s)\n%s\n\n", opts.ProjectName, filepath.ToSlash(opts.ProjectPath), rule)
}

func writeEndMarker(buf *bytes.Buffer, opts RenderOptions) {
	fmt.Fprintf(buf, "\n%s\nEND %s\n", rule, filepath.ToSlash(opts.ProjectPath))
}

// fileContent reads one file and prepares its rendered body: text is
// passed through trimmed to a single trailing newline, notebooks are
// optionally stripped of outputs, and anything that fails to decode as
// UTF-8 becomes a placeholder instead of an error.
func fileContent(fs afero.Fs, f discovery.Candidate, truncateNotebooks bool, logger zerolog.Logger) string {
	raw, err := afero.ReadFile(fs, f.AbsPath)
	if err != nil {
		logger.Warn().Err(err).Str("file", f.Display).Msg("cannot read file")
		return fmt.Sprintf("# ERROR reading %s: %v\n", f.Display, err)
	}

	if !utf8.Valid(raw) {
		return BinaryPlaceholder + "\n"
	}

	content := string(raw)
	if truncateNotebooks && strings.HasSuffix(f.Display, ".ipynb") {
		stripped, err := StripNotebookOutputs(raw)
		if err != nil {
			logger.Warn().Err(err).Str("file", f.Display).Msg("cannot strip notebook outputs, keeping raw content")
		} else {
			content = string(stripped)
		}
	}

	return strings.TrimRight(content, "\n\t ") + "\n"
}
