// Package web is the browser front end: go-app components for the auth gate,
// the project view and the root that composes them. The same routes are
// registered by the WebAssembly binary in app/ and by the server that
// serves it.
package web

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Register routes "/" to the root component. settingsErr, when non-nil, is
// shown instead of the login form.
func Register(settings Settings, settingsErr error) {
	app.Route("/", func() app.Composer {
		return &Root{Settings: settings, SettingsErr: settingsErr}
	})
}

// Handler returns the go-app handler that serves the page shell and
// web/app.wasm from webDir.
func Handler(settings Settings, webDir string) *app.Handler {
	return &app.Handler{
		Name:        "Project Details",
		ShortName:   "Projects",
		Title:       "Project Details",
		Description: "Project tasks and participants",
		Styles:      []string{"/web/projectview.css"},
		Env:         settings.env(),
		Resources:   app.LocalDir(webDir),
	}
}
