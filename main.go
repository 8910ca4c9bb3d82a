package main

import (
	"embed"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"quotebuilder/internal/app"
)

var Version string = "0.4.0"

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	a := app.NewApp(Version)
	err := wails.Run(&options.App{
		Title:  "Quote Builder",
		Width:  1440,
		Height: 900,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 0x12, G: 0x16, B: 0x1c, A: 0xff},
		OnStartup:        a.Startup,
		OnShutdown:       a.Shutdown,
		Bind: []interface{}{
			a,
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
