package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/macmole/internal/clean"
	"github.com/lakshaymaurya-felt/macmole/internal/status"
	"github.com/lakshaymaurya-felt/macmole/internal/ui"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show disk usage per volume",
	Long:  "Snapshot of used and free space on every mounted volume.",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output volumes as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	volumes, err := status.CollectDiskUsage()
	if err != nil {
		return err
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(volumes)
	}

	fmt.Println(ui.StyleTitle.Render(ui.IconDiamond + " Disk usage"))
	fmt.Println()

	for _, v := range volumes {
		bar := usageBar(v.UsedPercent, 24)
		fmt.Printf("  %-28s %s %5.1f%%  %s free of %s\n",
			v.Mountpoint, bar, v.UsedPercent,
			ui.FormatSize(int64(v.Free)), ui.FormatSize(int64(v.Total)))
	}

	if trash, err := clean.ScanTrash(); err == nil && trash > 0 {
		fmt.Println()
		fmt.Println(ui.StyleDim.Render("  " + ui.FormatSize(trash) + " in Trash — reclaim with 'mm clean'"))
	}
	return nil
}

// usageBar renders a fixed-width fill bar colored by pressure.
func usageBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}

	color := ui.ColorSuccess
	switch {
	case percent >= 90:
		color = ui.ColorDanger
	case percent >= 70:
		color = ui.ColorWarning
	}

	fill := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	rest := ui.StyleMuted.Render(strings.Repeat("░", width-filled))
	return fill + rest
}
