// Package clipboard copies text to the system clipboard by shelling
// out to the platform's clipboard tool. No tool being available is an
// error the caller is expected to treat as non-fatal.
package clipboard

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/pcuci/catp/pkg/errors"
	"github.com/pcuci/catp/pkg/logging"
)

// command is a clipboard tool invocation candidate.
type command struct {
	name string
	args []string
}

// Writer copies text to the system clipboard. The zero value is not
// usable; construct with New.
type Writer struct {
	goos     string
	lookPath func(string) (string, error)
	isWSL    func() bool
	runner   func(ctx context.Context, name string, args []string, input string) error
}

// New returns a Writer configured for the current platform.
func New() *Writer {
	return &Writer{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		isWSL:    detectWSL,
		runner:   runTool,
	}
}

// Copy writes text to the clipboard, giving up after timeout. A
// non-positive timeout means no limit.
func (w *Writer) Copy(ctx context.Context, text string, timeout time.Duration) error {
	logger := logging.GetLogger("clipboard")

	cmd, err := w.resolve()
	if err != nil {
		return err
	}
	logger.Debug().Str("tool", cmd.name).Msg("copying to clipboard")

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := w.runner(ctx, cmd.name, cmd.args, text); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.Wrapf(err, errors.ErrClipboardTimeout,
				"clipboard tool %s timed out after %s", cmd.name, timeout)
		}
		return errors.Wrapf(err, errors.ErrClipboard, "clipboard tool %s failed", cmd.name)
	}
	return nil
}

// resolve picks the first available clipboard tool for the platform.
func (w *Writer) resolve() (command, error) {
	for _, cmd := range w.candidates() {
		if _, err := w.lookPath(cmd.name); err == nil {
			return cmd, nil
		}
	}
	return command{}, errors.New(errors.ErrClipboard, "no clipboard tool found")
}

func (w *Writer) candidates() []command {
	switch w.goos {
	case "darwin":
		return []command{{name: "pbcopy"}}
	case "windows":
		return []command{{name: "clip.exe"}}
	case "linux":
		if w.isWSL() {
			return []command{
				{name: "clip.exe"},
				{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "$input | Set-Clipboard"}},
			}
		}
		return []command{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
	return nil
}

// detectWSL reports whether we are running inside Windows Subsystem
// for Linux, where Windows clipboard tools are reachable.
func detectWSL() bool {
	if os.Getenv("WSL_DISTRO_NAME") != "" {
		return true
	}
	data, err := os.ReadFile("/proc/sys/kernel/osrelease")
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}

func runTool(ctx context.Context, name string, args []string, input string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)
	return cmd.Run()
}
