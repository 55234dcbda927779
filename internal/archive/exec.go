package archive

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/supertux/addon-index/internal/addon"
)

// Exec packs directories with the external zip tool:
//
//	zip -X -r --quiet <out> .
//
// run with the add-on directory as the command's working directory. -X
// drops extra file attributes (uid/gid, extended timestamps) that would
// otherwise make archives differ between machines.
type Exec struct {
	// Tool is the zip executable; empty means "zip" from PATH.
	Tool string
	// Timeout bounds one run; zero means no limit.
	Timeout time.Duration
}

// Pack implements Archiver.
func (e *Exec) Pack(ctx context.Context, dir, out string) error {
	tool := e.Tool
	if tool == "" {
		tool = "zip"
	}
	toolPath, err := exec.LookPath(tool)
	if err != nil {
		return &addon.ArchiveError{Path: out, Err: fmt.Errorf("%s is required but not found in PATH", tool)}
	}

	absOut, err := filepath.Abs(out)
	if err != nil {
		return &addon.ArchiveError{Path: out, Err: err}
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, toolPath, "-X", "-r", "--quiet", absOut, ".")
	cmd.Dir = dir
	cmd.WaitDelay = time.Second
	output, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &addon.ArchiveError{Path: out, Err: fmt.Errorf("%s timed out after %s", tool, e.Timeout)}
	}
	if err != nil {
		return &addon.ArchiveError{Path: out, Err: err, Output: strings.TrimSpace(string(output))}
	}
	return nil
}
