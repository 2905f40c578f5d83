package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/floorplan-toolkit/pkg/config"
	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
	"github.com/ha1tch/floorplan-toolkit/pkg/source"
)

var (
	// Global flags
	devicesFlag string
	configFlag  string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "floorplan",
	Short: "floorplan - floor plan editor toolkit",
	Long: `floorplan works with device floor plans: walls, text labels and
monitored devices (ad points and smart bins).

Examples:
  floorplan info                          # Show the sample fleet
  floorplan info -d fleet.db              # Show devices from SQLite
  floorplan run session.fps               # Replay an event script
  floorplan run                           # Interactive session
  floorplan render session.fps -o plan.png
  floorplan devices import devices.json fleet.db
  floorplan serve --addr :8080`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&devicesFlag, "devices", "d", "", `device source: "sample", a .json file or a .db file (default from config)`)
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.fpedit)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadConfig() config.Config {
	if configFlag != "" {
		return config.LoadFile(configFlag)
	}
	return config.Load()
}

// loadDevices reads the fleet named by --devices or the config file.
func loadDevices(ctx context.Context, cfg config.Config) ([]scene.Device, error) {
	location := devicesFlag
	if location == "" {
		location = cfg.Devices
	}
	devices, err := source.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("loading devices from %q: %w", location, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d devices from %s\n", len(devices), location)
	}
	return devices, nil
}

// newEditor builds an editor from the config and device source.
func newEditor(ctx context.Context) (*editor.Editor, config.Config, error) {
	cfg := loadConfig()
	devices, err := loadDevices(ctx, cfg)
	if err != nil {
		return nil, cfg, err
	}
	return editor.New(scene.New(devices), cfg.EditorOptions()...), cfg, nil
}
