package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ha1tch/floorplan-toolkit/pkg/source"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Device source operations",
	Long:  `Commands for exporting and importing device lists.`,
}

var devicesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the device list as JSON",
	Args:  cobra.NoArgs,
	RunE:  runDevicesExport,
}

var devicesImportCmd = &cobra.Command{
	Use:   "import <source> <database>",
	Short: "Copy devices into a SQLite database",
	Long: `Load devices from a source ("sample" or a .json file) and replace the
contents of the devices table in a SQLite database, creating it if needed.`,
	Args: cobra.ExactArgs(2),
	RunE: runDevicesImport,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.AddCommand(devicesExportCmd)
	devicesCmd.AddCommand(devicesImportCmd)
}

func runDevicesExport(cmd *cobra.Command, args []string) error {
	devices, err := loadDevices(cmd.Context(), loadConfig())
	if err != nil {
		return err
	}
	data, err := source.ToJSON(devices)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runDevicesImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	devices, err := source.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}

	db, err := source.OpenSQLite(args[1])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[1], err)
	}
	defer db.Close()

	if err := db.Import(ctx, devices); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d devices into %s\n", len(devices), args[1])
	return nil
}
