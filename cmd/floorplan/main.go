// Command floorplan renders, replays and serves floor-plan editing sessions.
package main

import "github.com/ha1tch/floorplan-toolkit/cmd/floorplan/cmd"

func main() {
	cmd.Execute()
}
