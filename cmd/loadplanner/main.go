// loadplanner — 3D Cargo Load Planner
//
// A cross-platform desktop application for packing manifests into
// trucks and suggesting cost-efficient fleets.
//
// Build:
//
//	go build -o loadplanner ./cmd/loadplanner
//
// Cross-compile:
//
//	GOOS=windows GOARCH=amd64 go build -o loadplanner.exe ./cmd/loadplanner
//	GOOS=darwin  GOARCH=amd64 go build -o loadplanner-darwin ./cmd/loadplanner
//
// Using fyne-cross (recommended for proper packaging):
//
//	go install github.com/fyne-io/fyne-cross@latest
//	fyne-cross windows -arch=amd64
//	fyne-cross darwin  -arch=amd64,arm64
package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/cargoplan/loadplanner/internal/ui"
)

func main() {
	application := app.NewWithID("com.cargoplan.loadplanner")
	window := application.NewWindow("loadplanner — 3D Cargo Load Planner")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
