package clean

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ─── Pass-Through Prune Commands ─────────────────────────────────────────────

// pruneTimeout is the maximum time to wait for one external prune command.
const pruneTimeout = 300 * time.Second

// PruneCommand is a third-party cache-cleaning command invoked as-is; the
// tool's own prune knows its cache layout better than we do.
type PruneCommand struct {
	Name        string
	Description string
	Args        []string // argv, Args[0] is the executable
}

// PruneCommands are the external cleaners run by `mm clean --dev`.
var PruneCommands = []PruneCommand{
	{
		Name:        "brew",
		Description: "Homebrew outdated downloads and old versions",
		Args:        []string{"brew", "cleanup", "-s"},
	},
	{
		Name:        "docker",
		Description: "Docker dangling images, stopped containers, unused networks",
		Args:        []string{"docker", "system", "prune", "-f"},
	},
	{
		Name:        "simctl",
		Description: "Unavailable iOS Simulator devices",
		Args:        []string{"xcrun", "simctl", "delete", "unavailable"},
	},
	{
		Name:        "npm",
		Description: "npm cache integrity sweep",
		Args:        []string{"npm", "cache", "verify"},
	},
}

// CommandResult is the outcome of one pass-through prune command.
type CommandResult struct {
	Command PruneCommand
	Skipped bool // executable not installed
	Err     error
}

// RunPruneCommands executes each installed prune command in sequence. A
// missing executable is skipped, a failing one is recorded; neither stops
// the remaining commands. In dryRun mode commands are listed but not run.
func RunPruneCommands(dryRun bool) []CommandResult {
	results := make([]CommandResult, 0, len(PruneCommands))
	for _, pc := range PruneCommands {
		results = append(results, runPruneCommand(pc, dryRun))
	}
	return results
}

func runPruneCommand(pc PruneCommand, dryRun bool) CommandResult {
	r := CommandResult{Command: pc}

	if _, err := exec.LookPath(pc.Args[0]); err != nil {
		r.Skipped = true
		return r
	}
	if dryRun {
		return r
	}

	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, pc.Args[0], pc.Args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.Err = wrapExitError(pc.Name, err, output)
	}
	return r
}

// wrapExitError attaches truncated command output to an exec failure.
func wrapExitError(name string, err error, output []byte) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s prune timed out after %s", name, pruneTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out := strings.TrimSpace(string(output))
		if len(out) > 200 {
			out = out[:200] + "..."
		}
		if out != "" {
			return fmt.Errorf("%s prune failed (exit code %d): %s", name, exitErr.ExitCode(), out)
		}
		return fmt.Errorf("%s prune failed (exit code %d)", name, exitErr.ExitCode())
	}

	return fmt.Errorf("%s prune error: %w", name, err)
}
