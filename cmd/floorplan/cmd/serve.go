package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ha1tch/floorplan-toolkit/pkg/config"
	"github.com/ha1tch/floorplan-toolkit/pkg/editor"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
	"github.com/ha1tch/floorplan-toolkit/pkg/server"
	"github.com/ha1tch/floorplan-toolkit/pkg/source"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an editing session over HTTP",
	Long: `Start the HTTP surface for a single shared editing session.

Settings come from the environment:
  FLOORPLAN_ADDR            listen address (default :3000)
  FLOORPLAN_DEVICES         device source (default sample)
  FLOORPLAN_READ_TIMEOUT    seconds (default 10)
  FLOORPLAN_WRITE_TIMEOUT   seconds (default 10)

--addr and --devices override the environment.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.LoadServer()
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if devicesFlag != "" {
		cfg.Devices = devicesFlag
	}

	devices, err := source.Load(cmd.Context(), cfg.Devices)
	if err != nil {
		return fmt.Errorf("loading devices from %q: %w", cfg.Devices, err)
	}
	log.Printf("[DEVICES] loaded %d from %s", len(devices), cfg.Devices)

	ed := editor.New(scene.New(devices), loadConfig().EditorOptions()...)
	srv := server.New(ed, cfg)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	return srv.Listen()
}
