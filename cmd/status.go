package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dashsite/internal/render"
	"dashsite/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the trading gateway once and print the result",
	Long: `Queries the gateway watchdog endpoint, probes the API port directly, and
prints the combined snapshot. The direct probe wins over the reported
port state.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().Bool("json", false, "print the snapshot as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger()
	defer log.Sync()

	monitor := status.NewMonitor(cfg.Status, log)
	snap := monitor.Check(cmd.Context())

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Printf("Gateway:   %s\n", onOff(snap.GatewayRunning))
	fmt.Printf("Port %d: %s\n", cfg.Status.GatewayPort, onOff(snap.PortListening))
	if snap.RAMUsagePercent != nil {
		fmt.Printf("RAM:       %s\n", render.Percent(*snap.RAMUsagePercent))
	}
	if snap.DiskUsagePercent != nil {
		fmt.Printf("Disk:      %s\n", render.Percent(*snap.DiskUsagePercent))
	}
	if snap.UptimeDays != nil {
		fmt.Printf("Uptime:    %.1f Tage\n", *snap.UptimeDays)
	}
	fmt.Printf("Stand:     %s\n", render.DateTime(snap.TakenAt.Local()))
	return nil
}

func onOff(up bool) string {
	if up {
		return "online"
	}
	return "offline"
}
