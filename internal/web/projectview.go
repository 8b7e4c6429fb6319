package web

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/projectview/internal/model"
	"github.com/kidandcat/projectview/internal/view"
)

// ProjectView fetches and renders one project. Changing ProjectID starts a
// new load and cancels the previous one; dismounting cancels any load in
// flight.
type ProjectView struct {
	app.Compo

	Client    view.Fetcher
	ProjectID int64
	Markdown  bool

	lifecycle *view.Project
}

func (p *ProjectView) OnMount(ctx app.Context) {
	p.lifecycle = view.NewProject(p.Client)
	p.load(ctx)
}

func (p *ProjectView) OnUpdate(ctx app.Context) {
	if p.lifecycle == nil {
		return
	}
	p.load(ctx)
}

func (p *ProjectView) OnDismount() {
	if p.lifecycle != nil {
		p.lifecycle.Close()
	}
}

func (p *ProjectView) load(ctx app.Context) {
	req, ok := p.lifecycle.Begin(ctx, p.ProjectID)
	if !ok {
		return
	}
	ctx.Async(func() {
		res := req.Run()
		ctx.Dispatch(func(ctx app.Context) {
			if !p.lifecycle.Apply(res) {
				app.Log("dropped stale result for project", res.ID)
			}
		})
	})
}

func (p *ProjectView) Render() app.UI {
	st := view.State{Phase: view.Loading, ProjectID: p.ProjectID}
	if p.lifecycle != nil {
		st = p.lifecycle.State()
	}

	switch st.Phase {
	case view.Success:
		return renderProject(st.Project, p.Markdown)
	case view.Failure:
		return app.Div().Class("project-error").Text(st.ErrorText())
	default:
		return app.Div().Class("loading").Text(view.LoadingText)
	}
}

func renderProject(project *model.Project, markdown bool) app.UI {
	tasks := make([]app.UI, 0, len(project.Tasks))
	for _, t := range project.Tasks {
		tasks = append(tasks, app.Li().DataSet("task-id", t.ID).Text(t.Title))
	}
	participants := make([]app.UI, 0, len(project.Participants))
	for _, pt := range project.Participants {
		participants = append(participants, app.Li().DataSet("participant-id", pt.ID).Text(pt.User.Username))
	}

	var description app.UI = app.P().Class("description").Text(project.Description)
	if markdown {
		description = app.Raw(`<div class="description">` + view.DescriptionHTML(project.Description) + `</div>`)
	}

	return app.Div().Class("project").Body(
		app.H1().Text(project.Name),
		description,
		app.H2().Text("Tasks"),
		app.Ul().Class("tasks").Body(tasks...),
		app.H2().Text("Participants"),
		app.Ul().Class("participants").Body(participants...),
	)
}
