package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

var infoCmd = &cobra.Command{
	Use:   "info [device-id]",
	Short: "Show device information",
	Long: `Display the device fleet.

Without an argument: shows a summary of every device
With a device id: shows the details panel for that device`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	devices, err := loadDevices(cmd.Context(), loadConfig())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		sc := scene.New(devices)
		d, ok := sc.Device(args[0])
		if !ok {
			return fmt.Errorf("no device with id %q", args[0])
		}
		fmt.Fprintln(out, d.Summary())
		return nil
	}

	printFleet(out, devices)
	return nil
}

func printFleet(out io.Writer, devices []scene.Device) {
	counts := map[scene.Status]int{}
	for _, d := range devices {
		counts[d.Status]++
	}

	fmt.Fprintf(out, "Devices:     %d\n", len(devices))
	fmt.Fprintf(out, "Online:      %d\n", counts[scene.StatusOnline])
	fmt.Fprintf(out, "Warning:     %d\n", counts[scene.StatusWarning])
	fmt.Fprintf(out, "Offline:     %d\n", counts[scene.StatusOffline])
	fmt.Fprintln(out)

	for _, d := range devices {
		fmt.Fprintf(out, "  %-4s %-8s %-9s %-8s battery %3d%% (%s)  capacity %3d%% (%s)  at %.0f,%.0f\n",
			d.ID, d.Name, d.CategoryLabel(), d.Status,
			d.Battery, d.BatteryLevel(), d.Capacity, d.CapacityLevel(),
			d.Position.X, d.Position.Y)
	}
}
