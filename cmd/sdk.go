package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/macmole/internal/audit"
	"github.com/lakshaymaurya-felt/macmole/internal/config"
	"github.com/lakshaymaurya-felt/macmole/internal/core"
	"github.com/lakshaymaurya-felt/macmole/internal/sdk"
	"github.com/lakshaymaurya-felt/macmole/internal/ui"
)

var (
	sdkKeep        int
	sdkApply       bool
	sdkInteractive bool
	sdkRoot        string
)

var sdkCmd = &cobra.Command{
	Use:   "sdk",
	Short: "Manage Xcode SDK versions",
	Long:  "Discover installed platform SDKs and prune old versions, keeping the newest N per platform.",
}

var sdkListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show installed SDKs and the retention plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSDK(cmd, false, false)
	},
}

var sdkPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old SDK versions",
	Long: `Remove old platform SDKs, keeping the newest N per platform (default 1).

Runs in dry-run mode unless --apply is given. Deleting SDKs inside the
Xcode application bundle usually requires sudo; a permission failure on
one SDK is reported and the remaining SDKs are still processed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSDK(cmd, sdkApply, sdkInteractive)
	},
}

func init() {
	sdkListCmd.Flags().IntVarP(&sdkKeep, "keep", "k", config.DefaultKeepCount, "Newest SDKs to keep per platform")
	sdkListCmd.Flags().StringVar(&sdkRoot, "developer-root", "", "Override the developer directory")

	sdkPruneCmd.Flags().IntVarP(&sdkKeep, "keep", "k", config.DefaultKeepCount, "Newest SDKs to keep per platform")
	sdkPruneCmd.Flags().BoolVar(&sdkApply, "apply", false, "Actually delete (default is dry run)")
	sdkPruneCmd.Flags().BoolVarP(&sdkInteractive, "interactive", "i", false, "Review the plan in an interactive browser")
	sdkPruneCmd.Flags().StringVar(&sdkRoot, "developer-root", "", "Override the developer directory")

	sdkCmd.AddCommand(sdkListCmd)
	sdkCmd.AddCommand(sdkPruneCmd)
}

// sdkConfig loads the validated configuration with command-line overrides
// applied on top. Invalid configuration aborts before any discovery.
func sdkConfig(cmd *cobra.Command, apply bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("keep") {
		cfg.KeepCount = sdkKeep
	}
	if apply {
		cfg.Mode = config.ModeApply
	}
	if sdkRoot != "" {
		cfg.DeveloperRoot = sdkRoot
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSDK(cmd *cobra.Command, apply, interactive bool) error {
	cfg, err := sdkConfig(cmd, apply)
	if err != nil {
		return err
	}

	root := sdk.ResolveDeveloperRoot(cfg.DeveloperRoot)
	if root == "" {
		fmt.Println(ui.StyleMuted.Render("No Xcode toolchain found — nothing to do."))
		return nil
	}

	fsys := afero.NewOsFs()
	candidates := sdk.Discover(fsys, root)
	if len(candidates) == 0 {
		fmt.Println(ui.StyleMuted.Render("No SDK bundles found under " + root + "."))
		return nil
	}

	decisions, err := sdk.Decide(candidates, cfg.KeepCount)
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

	mode := sdk.DryRun
	if cfg.Mode == config.ModeApply {
		mode = sdk.Apply
		if !core.IsRoot() {
			fmt.Println(ui.StyleWarn.Render("Not running as root — SDK deletions inside Xcode.app may fail with permission errors."))
		}
	}
	exec := &sdk.Executor{FS: fsys, Mode: mode, Audit: logger}

	if interactive && ui.IsTerminal() {
		model := sdk.NewReviewModel(decisions, exec)
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	}

	results := exec.Apply(decisions)
	printSDKResults(root, mode, results)
	return nil
}

// printSDKResults renders results grouped by platform, rank ascending, with
// a reclaim/failure summary.
func printSDKResults(root string, mode sdk.Mode, results []sdk.Result) {
	fmt.Println(ui.StyleTitle.Render(ui.IconDiamond + " SDK retention (" + mode.String() + ")"))
	fmt.Println(ui.StyleDim.Render("  " + root))

	var reclaim, freed int64
	failures := 0
	lastPlatform := ""

	for _, r := range results {
		c := r.Decision.Candidate
		if c.Platform != lastPlatform {
			lastPlatform = c.Platform
			fmt.Println()
			fmt.Println(ui.StyleDim.Bold(true).Render("  " + c.Platform))
		}

		icon := ui.StyleOK.Render(ui.IconKeep)
		note := ui.StyleMuted.Render("keep")
		switch r.Status {
		case sdk.StatusPlanned:
			icon = ui.StyleErr.Render(ui.IconRemove)
			note = "would remove " + ui.FormatSize(r.Size)
			if r.Size > 0 {
				reclaim += r.Size
			}
		case sdk.StatusSucceeded:
			icon = ui.StyleErr.Render(ui.IconRemove)
			note = "removed " + ui.FormatSize(r.Size)
			if r.Size > 0 {
				freed += r.Size
			}
		case sdk.StatusFailed:
			icon = ui.StyleErr.Render(ui.IconRemove)
			note = ui.StyleErr.Render("failed: " + r.Err.Error())
			failures++
		case sdk.StatusSkippedAbsent:
			icon = ui.StyleMuted.Render(ui.IconDot)
			note = ui.StyleMuted.Render("already absent")
		}

		fmt.Printf("    %s #%d %-28s %-9s %s\n",
			icon, r.Decision.Rank, c.RawName, c.Version.String(), note)
	}

	fmt.Println()
	switch mode {
	case sdk.DryRun:
		fmt.Println(ui.StyleTitle.Render("  ~" + ui.FormatSize(reclaim) + " reclaimable — re-run with --apply to delete"))
	case sdk.Apply:
		fmt.Println(ui.StyleTitle.Render("  " + ui.FormatSize(freed) + " freed"))
		if failures > 0 {
			fmt.Println(ui.StyleWarn.Render(fmt.Sprintf("  %d deletion(s) failed — see audit log", failures)))
		}
	}
}
