package web

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/projectview/internal/client"
)

// Root shows the auth gate until a token arrives, then the project view for
// the configured project with a client signed by that token.
type Root struct {
	app.Compo

	Settings    Settings
	SettingsErr error

	api    *client.Client
	authed *client.Client
	err    string
}

func (r *Root) OnInit() {
	if r.SettingsErr != nil {
		r.err = r.SettingsErr.Error()
		return
	}
	api, err := client.New(r.Settings.APIOrigin)
	if err != nil {
		r.err = err.Error()
		return
	}
	r.api = api
}

func (r *Root) onToken(ctx app.Context, token string) {
	r.authed = r.api.WithToken(token)
	app.Log("signed in, loading project", r.Settings.ProjectID)
}

func (r *Root) Render() app.UI {
	return app.Div().Class("App").Body(
		app.Header().Class("App-header").Body(
			app.H1().Text("Project Details"),
		),
		app.Main().Body(r.content()),
	)
}

func (r *Root) content() app.UI {
	switch {
	case r.err != "":
		return app.P().Class("error").Text("Configuration error: " + r.err)
	case r.authed == nil:
		return &AuthGate{Client: r.api, OnToken: r.onToken}
	default:
		return &ProjectView{Client: r.authed, ProjectID: r.Settings.ProjectID, Markdown: r.Settings.Markdown}
	}
}
