package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/projectview/internal/client"
	"github.com/kidandcat/projectview/internal/model"
	"github.com/kidandcat/projectview/internal/view"
)

// contextHolder is a mounted component whose context drives the components
// under test. Work they start with ctx.Async is finished by ConsumeAll.
type contextHolder struct {
	app.Compo

	ctx   app.Context
	ready bool
}

func (h *contextHolder) OnPreRender(ctx app.Context) {
	h.ctx = ctx
	h.ready = true
}

func (h *contextHolder) Render() app.UI {
	return app.Div()
}

func newTestContext(t *testing.T) (app.TestEngine, app.Context) {
	t.Helper()
	engine := app.NewTestEngine()
	holder := &contextHolder{}
	if err := engine.Load(holder); err != nil {
		t.Fatalf("load: %v", err)
	}
	engine.ConsumeAll()
	if !holder.ready {
		t.Fatal("component context was not delivered")
	}
	return engine, holder.ctx
}

// gatedFetcher answers once release is closed, or fails when the request
// is cancelled first.
type gatedFetcher struct {
	release  chan struct{}
	projects map[int64]*model.Project
	err      error
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{release: make(chan struct{}), projects: map[int64]*model.Project{}}
}

func (f *gatedFetcher) Project(ctx context.Context, id int64) (*model.Project, error) {
	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.projects[id], nil
}

func demoProject() *model.Project {
	return &model.Project{
		ID:          1,
		Name:        "Demo",
		Description: "d",
		Tasks:       []model.Task{{ID: 5, Title: "T1"}, {ID: 6, Title: "T2"}},
		Participants: []model.Participant{
			{ID: 9, User: model.User{ID: 2, Username: "bob"}},
		},
	}
}

func TestProjectViewRender(t *testing.T) {
	htmlish := demoProject()
	htmlish.Description = "Use <Widget> for layout"

	markdown := demoProject()
	markdown.Description = "**d**"

	tests := []struct {
		name     string
		project  *model.Project
		err      error
		markdown bool
		want     []string
		notWant  []string
	}{
		{
			name:    "success",
			project: demoProject(),
			want: []string{
				"<h1>Demo</h1>",
				`<p class="description">d</p>`,
				`<li data-task-id="5">T1</li>`,
				`<li data-task-id="6">T2</li>`,
				`<li data-participant-id="9">bob</li>`,
			},
			notWant: []string{view.LoadingText, "Error loading project"},
		},
		{
			name:    "description shown verbatim",
			project: htmlish,
			want:    []string{`<p class="description">Use &lt;Widget&gt; for layout</p>`},
		},
		{
			name:     "markdown description",
			project:  markdown,
			markdown: true,
			want:     []string{`<div class="description"><p><strong>d</strong></p>`},
		},
		{
			name:    "network error",
			err:     &client.Error{Op: "get project", Message: client.NetworkErrorMessage},
			want:    []string{`<div class="project-error">Error loading project: Network Error</div>`},
			notWant: []string{view.LoadingText, "<h1>"},
		},
		{
			name:    "unexpected error",
			err:     errors.New("decode project: unexpected EOF"),
			want:    []string{"Error loading project: " + view.UnexpectedErrorMessage},
			notWant: []string{"EOF"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, ctx := newTestContext(t)
			fetcher := newGatedFetcher()
			fetcher.projects[1] = tt.project
			fetcher.err = tt.err

			p := &ProjectView{Client: fetcher, ProjectID: 1, Markdown: tt.markdown}
			p.OnMount(ctx)
			if got := app.HTMLString(p.Render()); got != `<div class="loading">Loading...</div>` {
				t.Fatalf("pending render: got %q", got)
			}

			close(fetcher.release)
			engine.ConsumeAll()

			got := app.HTMLString(p.Render())
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Fatalf("render missing %q:\n%s", want, got)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(got, notWant) {
					t.Fatalf("render contains %q:\n%s", notWant, got)
				}
			}
		})
	}
}

func TestProjectViewTaskOrder(t *testing.T) {
	engine, ctx := newTestContext(t)
	fetcher := newGatedFetcher()
	fetcher.projects[1] = demoProject()
	close(fetcher.release)

	p := &ProjectView{Client: fetcher, ProjectID: 1}
	p.OnMount(ctx)
	engine.ConsumeAll()

	got := app.HTMLString(p.Render())
	if first, second := strings.Index(got, ">T1<"), strings.Index(got, ">T2<"); first < 0 || second < first {
		t.Fatalf("tasks out of server order:\n%s", got)
	}
}

func TestProjectViewChangingIDDropsStaleResult(t *testing.T) {
	engine, ctx := newTestContext(t)
	fetcher := newGatedFetcher()
	fetcher.projects[1] = demoProject()
	fetcher.projects[2] = &model.Project{ID: 2, Name: "Second"}

	p := &ProjectView{Client: fetcher, ProjectID: 1}
	p.OnMount(ctx)
	p.ProjectID = 2
	p.OnUpdate(ctx)

	close(fetcher.release)
	engine.ConsumeAll()

	got := app.HTMLString(p.Render())
	if !strings.Contains(got, "<h1>Second</h1>") || strings.Contains(got, "Demo") {
		t.Fatalf("expected only the latest project:\n%s", got)
	}
}

func TestProjectViewDismountCancels(t *testing.T) {
	engine, ctx := newTestContext(t)
	fetcher := newGatedFetcher()
	fetcher.projects[1] = demoProject()

	p := &ProjectView{Client: fetcher, ProjectID: 1}
	p.OnMount(ctx)
	p.OnDismount()
	engine.ConsumeAll()

	if got := app.HTMLString(p.Render()); got != `<div class="loading">Loading...</div>` {
		t.Fatalf("dismounted view changed state: %q", got)
	}
}

// tokenAPI issues abc123 to bob/pw and records the Authorization header of
// project requests.
type tokenAPI struct {
	mu   sync.Mutex
	auth []string
}

func (a *tokenAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/token/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var buf strings.Builder
		b := make([]byte, 512)
		for {
			n, err := r.Body.Read(b)
			buf.Write(b[:n])
			if err != nil {
				break
			}
		}
		if !strings.Contains(buf.String(), `"password":"pw"`) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"non_field_errors":["Unable to log in with provided credentials."]}`))
			return
		}
		w.Write([]byte(`{"token":"abc123"}`))
	})
	mux.HandleFunc("GET /api/projects/{id}/", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.auth = append(a.auth, r.Header.Get("Authorization"))
		a.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":3,"name":"Third","tasks":[],"participants":[]}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestAuthGateSubmit(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		wantToken string
		wantError string
	}{
		{"accepted", "bob", "pw", "abc123", ""},
		{"rejected", "bob", "wrong", "", "Login failed: Unable to log in with provided credentials."},
		{"missing password", "bob", "", "", "Login failed: username and password are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := (&tokenAPI{}).server(t)
			api, err := client.New(server.URL)
			if err != nil {
				t.Fatal(err)
			}

			engine, ctx := newTestContext(t)
			var tokens []string
			g := &AuthGate{
				Client:  api,
				OnToken: func(ctx app.Context, token string) { tokens = append(tokens, token) },
			}
			g.username, g.password = tt.username, tt.password

			g.submit(ctx)
			if tt.password != "" && !strings.Contains(app.HTMLString(g.Render()), "Signing in...") {
				t.Fatal("pending form should show progress")
			}
			engine.ConsumeAll()

			if g.pending {
				t.Fatal("form still pending after the response")
			}
			if tt.wantToken == "" && len(tokens) != 0 {
				t.Fatalf("OnToken fired for a failed login: %v", tokens)
			}
			if tt.wantToken != "" && (len(tokens) != 1 || tokens[0] != tt.wantToken) {
				t.Fatalf("tokens: got %v, want [%s]", tokens, tt.wantToken)
			}

			got := app.HTMLString(g.Render())
			if tt.wantError == "" && strings.Contains(got, `class="error"`) {
				t.Fatalf("unexpected error line:\n%s", got)
			}
			if tt.wantError != "" && !strings.Contains(got, `<p class="error">`+tt.wantError+`</p>`) {
				t.Fatalf("render missing %q:\n%s", tt.wantError, got)
			}
		})
	}
}

func TestRoot(t *testing.T) {
	t.Run("sign in then project", func(t *testing.T) {
		api := &tokenAPI{}
		server := api.server(t)

		engine := app.NewTestEngine()
		r := &Root{Settings: Settings{APIOrigin: server.URL, ProjectID: 3, Markdown: true}}
		if err := engine.Load(r); err != nil {
			t.Fatalf("load: %v", err)
		}
		engine.ConsumeAll()

		if got := app.HTMLString(r); !strings.Contains(got, "Sign in") || !strings.Contains(got, "Project Details") {
			t.Fatalf("unauthenticated root should show the sign-in form:\n%s", got)
		}
		if _, ok := r.content().(*AuthGate); !ok {
			t.Fatalf("content: got %T, want *AuthGate", r.content())
		}

		r.onToken(app.Context{}, "abc123")

		pv, ok := r.content().(*ProjectView)
		if !ok {
			t.Fatalf("content: got %T, want *ProjectView", r.content())
		}
		if pv.ProjectID != 3 || !pv.Markdown {
			t.Fatalf("project view settings: %+v", pv)
		}
		if r.api.Authenticated() {
			t.Fatal("signing in must not modify the unauthenticated client")
		}
		if _, err := pv.Client.Project(context.Background(), 3); err != nil {
			t.Fatal(err)
		}
		api.mu.Lock()
		defer api.mu.Unlock()
		if len(api.auth) != 1 || api.auth[0] != "Token abc123" {
			t.Fatalf("project request Authorization: got %v", api.auth)
		}
	})

	t.Run("settings error", func(t *testing.T) {
		r := &Root{SettingsErr: errors.New("PROJECTVIEW_API_ORIGIN is not set")}
		r.OnInit()
		got := app.HTMLString(r.Render())
		if !strings.Contains(got, "Configuration error: PROJECTVIEW_API_ORIGIN is not set") {
			t.Fatalf("missing configuration error:\n%s", got)
		}
	})
}
