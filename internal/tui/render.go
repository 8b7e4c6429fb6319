package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/kidandcat/projectview/internal/view"
)

// View implements tea.Model.
func (model Model) View() string {
	var b strings.Builder
	b.WriteString(model.theme.Title.Render("Project Details"))
	b.WriteString("\n")

	if model.project == nil {
		b.WriteString(model.renderLogin())
	} else {
		b.WriteString(model.renderProject(model.project.State()))
	}
	b.WriteString("\n")
	return b.String()
}

func (model Model) renderLogin() string {
	lines := []string{
		model.theme.Heading.Render("Sign in") + " " + model.theme.Faint.Render(model.api.Origin()),
		model.username.View(),
		model.password.View(),
		"",
	}
	switch {
	case model.pending:
		lines = append(lines, model.theme.Faint.Render("Signing in..."))
	case model.loginErr != "":
		lines = append(lines, model.theme.Error.Render(model.loginErr))
	}
	lines = append(lines, model.help(model.keys.NextField, model.keys.Submit, model.keys.Quit))
	return strings.Join(lines, "\n")
}

func (model Model) renderProject(state view.State) string {
	var body string
	switch state.Phase {
	case view.Success:
		body = model.renderProjectBody(state)
	case view.Failure:
		body = model.theme.Error.Render(state.ErrorText())
	default:
		body = model.spinner.View() + " " + model.theme.Faint.Render(view.LoadingText)
	}
	return body + "\n\n" + model.help(model.keys.PrevProject, model.keys.NextProject, model.keys.Quit)
}

func (model Model) renderProjectBody(state view.State) string {
	project := state.Project
	lines := []string{model.theme.Heading.Render(project.Name)}
	if project.Description != "" {
		lines = append(lines, model.theme.Text.Render(project.Description))
	}

	lines = append(lines, model.theme.Section.Render("Tasks"))
	if len(project.Tasks) == 0 {
		lines = append(lines, model.theme.Faint.Render("  no tasks"))
	}
	for _, task := range project.Tasks {
		mark := "○"
		if task.Completed {
			mark = model.theme.Done.Render("✓")
		}
		lines = append(lines, fmt.Sprintf("  %s %s", mark, task.Title))
	}

	lines = append(lines, model.theme.Section.Render("Participants"))
	if len(project.Participants) == 0 {
		lines = append(lines, model.theme.Faint.Render("  no participants"))
	}
	for _, participant := range project.Participants {
		lines = append(lines, "  • "+participant.User.Username)
	}
	return strings.Join(lines, "\n")
}

func (model Model) help(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return model.theme.Faint.Render(strings.Join(parts, " · "))
}
