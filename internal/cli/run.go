package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pcuci/catp/pkg/clipboard"
	"github.com/pcuci/catp/pkg/config"
	"github.com/pcuci/catp/pkg/discovery"
	"github.com/pcuci/catp/pkg/errors"
	"github.com/pcuci/catp/pkg/logging"
	"github.com/pcuci/catp/pkg/rules"
	"github.com/pcuci/catp/pkg/snapshot"
	"github.com/pcuci/catp/pkg/style"
)

// runSnapshot executes the full pipeline: configuration, rule
// validation, discovery, filtering, rendering and delivery.
func runSnapshot(cmd *cobra.Command, args []string, opts *runOptions) error {
	logger := logging.GetLogger("cli")
	defer logging.LogDuration(time.Now(), "snapshot")

	zoom, err := snapshot.ParseZoom(opts.zoom)
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	projectPath, err := filepath.Abs(roots[0])
	if err != nil {
		return errors.Wrapf(err, errors.ErrPathNotFound, "cannot resolve root %q", roots[0])
	}
	projectName := filepath.Base(projectPath)

	cfg, err := config.Load(projectPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg, opts)

	// Rule validation happens before any traversal.
	rs, err := rules.New(cfg.Patterns, opts.only, opts.exclude, opts.allow)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	disc := discovery.New(fs, discovery.ExecGit{}, rs)

	// Display paths are anchored at the working directory; files
	// outside it keep their absolute path.
	displayBase, err := os.Getwd()
	if err != nil {
		displayBase = projectPath
	}

	result, err := disc.Discover(cmd.Context(), roots, displayBase, discovery.Options{
		GitAware: !opts.noGit,
		Depth:    cfg.Depth,
	})
	if err != nil {
		return err
	}

	ropts := snapshot.RenderOptions{
		ProjectName:       projectName,
		ProjectPath:       projectPath,
		TruncateNotebooks: cfg.TruncateNotebooks,
		MaxKB:             cfg.MaxKB,
	}

	var (
		artifact  []byte
		statusMsg string
		count     int
	)
	switch zoom {
	case snapshot.ZoomRepos:
		artifact = snapshot.RenderRepoTree(result.RepoRoots, cfg.Depth, ropts)
		statusMsg, count = MsgRepoTreeWritten, len(result.RepoRoots)
	case snapshot.ZoomFiles:
		kept, _ := snapshot.Collect(fs, result.Candidates, rs, cfg.MaxKB)
		if len(kept) == 0 {
			return errors.New(errors.ErrNoFiles, "no files matched the current rules")
		}
		artifact = snapshot.RenderFileList(kept, ropts)
		statusMsg, count = MsgFileListWritten, len(kept)
	default:
		kept, skipped := snapshot.Collect(fs, result.Candidates, rs, cfg.MaxKB)
		if len(kept) == 0 {
			return errors.New(errors.ErrNoFiles, "no files matched the current rules")
		}
		artifact = snapshot.RenderContents(fs, kept, skipped, ropts)
		statusMsg, count = MsgSnapshotWritten, len(kept)
	}

	outPath := opts.out
	if outPath == "" {
		outPath = snapshot.DefaultOutputPath(projectName, zoom)
	}
	if err := snapshot.Deliver(fs, artifact, outPath); err != nil {
		return err
	}

	if !opts.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), style.Success(statusMsg, style.Path(outPath), count))
	}

	// Clipboard failure degrades to a warning, never a failed run.
	if opts.clipboard {
		err := clipboard.New().Copy(cmd.Context(), string(artifact), cfg.ClipboardTimeout())
		if err != nil {
			logger.Warn().Err(err).Msg("clipboard delivery failed")
			fmt.Fprintln(cmd.ErrOrStderr(), style.Warning(MsgClipboardSkipped, err))
		} else if !opts.quiet {
			fmt.Fprintln(cmd.OutOrStdout(), style.Success(MsgClipboardCopied))
		}
	}

	return nil
}

// applyFlagOverrides lets flags that were set on the command line win
// over file-based configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, opts *runOptions) {
	flags := cmd.Flags()
	if flags.Changed("max-kb") {
		cfg.MaxKB = opts.maxKB
	}
	if flags.Changed("depth") {
		cfg.Depth = opts.depth
	}
	if flags.Changed("clipboard-timeout") {
		cfg.ClipboardTimeoutSeconds = opts.clipboardTimeout
	}
	if opts.keepNotebooks {
		cfg.TruncateNotebooks = false
	}
}
