package web

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/projectview/internal/client"
	"github.com/kidandcat/projectview/internal/view"
)

// AuthGate collects credentials and hands the issued token to OnToken. It
// keeps nothing after a successful submit.
type AuthGate struct {
	app.Compo

	Client  *client.Client
	OnToken func(ctx app.Context, token string)

	username string
	password string
	pending  bool
	err      string
}

func (g *AuthGate) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	g.submit(ctx)
}

// submit checks the form locally, then exchanges the credentials for a token
// off the UI goroutine.
func (g *AuthGate) submit(ctx app.Context) {
	if g.pending {
		return
	}

	username, password := g.username, g.password
	if err := view.CheckCredentials(username, password); err != nil {
		g.err = view.LoginErrorText(err)
		return
	}
	g.pending = true
	g.err = ""

	ctx.Async(func() {
		token, err := g.Client.Login(ctx, username, password)
		ctx.Dispatch(func(ctx app.Context) {
			g.pending = false
			if err != nil {
				app.Log("login failed:", err)
				g.err = view.LoginErrorText(err)
				return
			}
			g.password = ""
			if g.OnToken != nil {
				g.OnToken(ctx, token)
			}
		})
	})
}

func (g *AuthGate) Render() app.UI {
	label := "Sign in"
	if g.pending {
		label = "Signing in..."
	}

	body := []app.UI{
		app.H2().Text("Sign in"),
		app.Input().
			Type("text").
			Name("username").
			Placeholder("Username").
			AutoFocus(true).
			Value(g.username).
			OnChange(g.ValueTo(&g.username)),
		app.Input().
			Type("password").
			Name("password").
			Placeholder("Password").
			Value(g.password).
			OnChange(g.ValueTo(&g.password)),
		app.Button().
			Type("submit").
			Disabled(g.pending).
			Text(label),
	}
	if g.err != "" {
		body = append(body, app.P().Class("error").Text(g.err))
	}
	return app.Form().Class("auth-gate").OnSubmit(g.onSubmit).Body(body...)
}
