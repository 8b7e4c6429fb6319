// Command app is the WebAssembly build of the browser front end:
//
//	GOARCH=wasm GOOS=js go build -o web/app.wasm ./app
//
// The server publishes the API origin and project id through the page
// environment; the binary reads them at startup.
package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/projectview/internal/web"
)

func main() {
	settings, err := web.SettingsFromEnv()
	if err != nil {
		app.Log("settings:", err)
	}
	web.Register(settings, err)
	app.RunWhenOnBrowser()
}
