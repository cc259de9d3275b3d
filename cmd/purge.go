package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/macmole/internal/audit"
	"github.com/lakshaymaurya-felt/macmole/internal/clean"
	"github.com/lakshaymaurya-felt/macmole/internal/config"
	"github.com/lakshaymaurya-felt/macmole/internal/core"
	"github.com/lakshaymaurya-felt/macmole/internal/ui"
	"github.com/lakshaymaurya-felt/macmole/pkg/whitelist"
)

var purgeMinAge int

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Clean project build artifacts",
	Long:  "Find and remove build artifacts (node_modules, target, build, dist, etc.) from project directories.",
	RunE:  runPurge,
}

func init() {
	purgeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without deleting")
	purgeCmd.Flags().IntVar(&purgeMinAge, "min-age", 7, "Minimum age in days (recently built projects are skipped)")
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	wl, err := whitelist.Load(whitelist.DefaultPath(config.Dir()))
	if err != nil {
		return err
	}

	logger, err := audit.NewFileLogger(cfg.AuditLog)
	if err != nil {
		return err
	}
	defer logger.Close()
	if debug {
		logger.Mirror(os.Stderr)
	}

	minAge := time.Duration(purgeMinAge) * 24 * time.Hour
	items := clean.ScanProjectArtifacts(cfg.ProjectRoots, minAge, wl)
	if len(items) == 0 {
		fmt.Println(ui.StyleMuted.Render("No stale build artifacts found."))
		return nil
	}

	mode := "apply"
	if dryRun {
		mode = "dry-run"
	}
	fmt.Println(ui.StyleTitle.Render(ui.IconDiamond + " Project artifacts (" + mode + ")"))
	fmt.Println()

	var freed int64
	failures := 0
	for _, it := range items {
		size, err := core.SafeDelete(it.Path, dryRun)
		result := "removed"
		if dryRun {
			result = "planned"
		}
		if err != nil {
			result = "failed"
			failures++
			fmt.Printf("  %s %-60s %s\n", ui.StyleErr.Render(ui.IconRemove), it.Path, ui.StyleErr.Render(err.Error()))
		} else {
			freed += size
			fmt.Printf("  %s %-60s %8s  %s\n", ui.StyleOK.Render(ui.IconKeep), it.Path, ui.FormatSize(size), ui.StyleMuted.Render(it.Description))
		}
		logger.Cleanup("projects", it.Path, result, size, err)
	}

	fmt.Println()
	if dryRun {
		fmt.Println(ui.StyleTitle.Render("  ~" + ui.FormatSize(freed) + " reclaimable — re-run without --dry-run to delete"))
	} else {
		fmt.Println(ui.StyleTitle.Render("  " + ui.FormatSize(freed) + " freed"))
	}
	if failures > 0 {
		fmt.Println(ui.StyleWarn.Render(fmt.Sprintf("  %d item(s) failed — see audit log", failures)))
	}
	return nil
}
