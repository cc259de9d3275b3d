package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/macmole/internal/audit"
	"github.com/lakshaymaurya-felt/macmole/internal/clean"
	"github.com/lakshaymaurya-felt/macmole/internal/config"
	"github.com/lakshaymaurya-felt/macmole/internal/core"
	"github.com/lakshaymaurya-felt/macmole/internal/status"
	"github.com/lakshaymaurya-felt/macmole/internal/ui"
	"github.com/lakshaymaurya-felt/macmole/pkg/whitelist"
)

var (
	cleanAll      bool
	cleanUser     bool
	cleanDev      bool
	cleanXcode    bool
	cleanBrowser  bool
	cleanVolumes  bool
	cleanShowWL   bool
	cleanProtect  string
	cleanUnprotec string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Free up disk space",
	Long:  "Deep cleanup of caches, logs, Xcode leftovers, and developer tool caches to reclaim disk space.",
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the cleanup plan without deleting")
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Clean all categories, including high-risk targets")
	cleanCmd.Flags().BoolVar(&cleanUser, "user", false, "Clean user caches only")
	cleanCmd.Flags().BoolVar(&cleanDev, "dev", false, "Clean developer tool caches only")
	cleanCmd.Flags().BoolVar(&cleanXcode, "xcode", false, "Clean Xcode caches only")
	cleanCmd.Flags().BoolVar(&cleanBrowser, "browser", false, "Clean browser caches only")
	cleanCmd.Flags().BoolVar(&cleanVolumes, "volumes", false, "Clean external volume junk only")
	cleanCmd.Flags().BoolVar(&cleanShowWL, "whitelist", false, "Show protected paths")
	cleanCmd.Flags().StringVar(&cleanProtect, "protect", "", "Add a path to the whitelist")
	cleanCmd.Flags().StringVar(&cleanUnprotec, "unprotect", "", "Remove a path from the whitelist")
}

// cleanCategories resolves the category selection flags. No flags means the
// safe everyday set.
func cleanCategories() []string {
	if cleanAll {
		return []string{"user", "dev", "xcode", "browser", "system"}
	}
	var cats []string
	if cleanUser {
		cats = append(cats, "user")
	}
	if cleanDev {
		cats = append(cats, "dev")
	}
	if cleanXcode {
		cats = append(cats, "xcode")
	}
	if cleanBrowser {
		cats = append(cats, "browser")
	}
	if len(cats) == 0 && !cleanVolumes {
		cats = []string{"user", "dev", "xcode"}
	}
	return cats
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	wl, err := whitelist.Load(whitelist.DefaultPath(config.Dir()))
	if err != nil {
		return err
	}

	// Whitelist management short-circuits the scan.
	if cleanProtect != "" {
		if wl.Add(cleanProtect) {
			if err := wl.Save(); err != nil {
				return err
			}
			fmt.Println("Protected:", cleanProtect)
		}
		return nil
	}
	if cleanUnprotec != "" {
		if wl.Remove(cleanUnprotec) {
			if err := wl.Save(); err != nil {
				return err
			}
			fmt.Println("Unprotected:", cleanUnprotec)
		}
		return nil
	}
	if cleanShowWL {
		if len(wl.Entries) == 0 {
			fmt.Println(ui.StyleMuted.Render("No protected paths."))
			return nil
		}
		for _, e := range wl.Entries {
			fmt.Println("  " + e)
		}
		return nil
	}

	logger, err := audit.NewFileLogger(cfg.AuditLog)
	if err != nil {
		return err
	}
	defer logger.Close()
	if debug {
		logger.Mirror(os.Stderr)
	}

	categories := cleanCategories()

	// Build the scan from the target table plus the per-bundle user cache
	// and external volume scanners.
	var targets []config.CleanTarget
	for _, cat := range categories {
		for _, t := range config.GetTargetsByCategory(cat) {
			if t.RiskLevel == "high" && !cleanAll {
				continue
			}
			if t.RequiresAdmin && !core.IsRoot() {
				continue
			}
			targets = append(targets, t)
		}
	}
	items := clean.ScanTargets(targets, wl)
	for _, cat := range categories {
		if cat == "user" {
			items = append(items, clean.ScanUserCaches(wl)...)
		}
	}
	if cleanVolumes || cleanAll {
		items = append(items, clean.ScanVolumes(wl)...)
	}

	if len(items) == 0 {
		fmt.Println(ui.StyleMuted.Render("Nothing to clean."))
		return nil
	}

	mode := "apply"
	if dryRun {
		mode = "dry-run"
	}
	fmt.Println(ui.StyleTitle.Render(ui.IconDiamond + " Cleanup (" + mode + ")"))

	var freed int64
	failures := 0
	lastDesc := ""
	for _, it := range items {
		if it.Description != lastDesc {
			lastDesc = it.Description
			fmt.Println()
			fmt.Println(ui.StyleDim.Bold(true).Render("  " + it.Description))
		}

		size, err := core.SafeDelete(it.Path, dryRun)
		result := "removed"
		if dryRun {
			result = "planned"
		}
		if err != nil {
			result = "failed"
			failures++
			fmt.Printf("    %s %-52s %s\n", ui.StyleErr.Render(ui.IconRemove), it.Path, ui.StyleErr.Render(err.Error()))
		} else {
			freed += size
			fmt.Printf("    %s %-52s %8s\n", ui.StyleOK.Render(ui.IconKeep), it.Path, ui.FormatSize(size))
		}
		logger.Cleanup(it.Category, it.Path, result, size, err)
	}

	// Trash is emptied in place; Finder expects ~/.Trash to survive.
	if hasCategory(categories, "user") {
		size, err := clean.EmptyTrash(dryRun)
		if err != nil {
			failures++
			fmt.Printf("    %s %-52s %s\n", ui.StyleErr.Render(ui.IconRemove), "Trash", ui.StyleErr.Render(err.Error()))
			logger.Cleanup("user", "~/.Trash", "failed", -1, err)
		} else if size > 0 {
			freed += size
			result := "emptied"
			if dryRun {
				result = "planned"
			}
			fmt.Println()
			fmt.Println(ui.StyleDim.Bold(true).Render("  Trash"))
			fmt.Printf("    %s %-52s %8s\n", ui.StyleOK.Render(ui.IconKeep), "~/.Trash", ui.FormatSize(size))
			logger.Cleanup("user", "~/.Trash", result, size, nil)
		}
	}

	// Pass-through prune commands for developer tools.
	if hasCategory(categories, "dev") {
		fmt.Println()
		fmt.Println(ui.StyleDim.Bold(true).Render("  External cleaners"))
		for _, r := range clean.RunPruneCommands(dryRun) {
			switch {
			case r.Skipped:
				fmt.Printf("    %s %-12s %s\n", ui.StyleMuted.Render(ui.IconDot), r.Command.Name, ui.StyleMuted.Render("not installed"))
			case r.Err != nil:
				failures++
				fmt.Printf("    %s %-12s %s\n", ui.StyleErr.Render(ui.IconRemove), r.Command.Name, ui.StyleErr.Render(r.Err.Error()))
				logger.Cleanup("dev", r.Command.Name, "failed", -1, r.Err)
			default:
				fmt.Printf("    %s %-12s %s\n", ui.StyleOK.Render(ui.IconKeep), r.Command.Name, r.Command.Description)
				logger.Cleanup("dev", r.Command.Name, "pruned", -1, nil)
			}
		}
	}

	fmt.Println()
	if dryRun {
		fmt.Println(ui.StyleTitle.Render("  ~" + ui.FormatSize(freed) + " reclaimable — re-run without --dry-run to delete"))
	} else {
		fmt.Println(ui.StyleTitle.Render("  " + ui.FormatSize(freed) + " freed"))
		if free := status.FreeOn("/"); free >= 0 {
			fmt.Println(ui.StyleDim.Render("  " + ui.FormatSize(free) + " now free on /"))
		}
	}
	if failures > 0 {
		fmt.Println(ui.StyleWarn.Render(fmt.Sprintf("  %d item(s) failed — see audit log", failures)))
	}
	return nil
}

func hasCategory(cats []string, want string) bool {
	for _, c := range cats {
		if c == want {
			return true
		}
	}
	return false
}
