// RoomFit: Largest Inscribed Rectangle Finder
//
// A command-line tool that finds the largest rectangle fitting inside a
// room-boundary polygon and reports it as text, PDF, Excel or JSON.
//
// Build:
//   go build -o roomfit ./cmd/roomfit
//
// Examples:
//   roomfit fit floorplan.dxf --pdf report.pdf
//   roomfit fit l-room --parallel --json result.json
//   roomfit inside room.csv 2.5 1.0

package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
