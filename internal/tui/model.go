// Package tui is the terminal front end: a bubbletea program with a login
// form that, once a token is issued, shows one project through the shared
// view lifecycle.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/kidandcat/projectview/internal/client"
	"github.com/kidandcat/projectview/internal/view"
)

type loginResultMsg struct {
	token string
	err   error
}

type projectResultMsg struct {
	result view.Result
}

const (
	fieldUsername = iota
	fieldPassword
)

type Model struct {
	ctx       context.Context
	api       *client.Client
	projectID int64
	logger    zerolog.Logger
	theme     Theme
	keys      KeyMap

	// Login form.
	username textinput.Model
	password textinput.Model
	focus    int
	pending  bool
	loginErr string

	// Set once a token has been issued.
	project *view.Project
	spinner spinner.Model
}

// NewModel creates a viewer that signs in against api and then shows
// projectID. Requests are bound to ctx.
func NewModel(ctx context.Context, api *client.Client, projectID int64, logger zerolog.Logger) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "Username: "
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	model := Model{
		ctx:       ctx,
		api:       api,
		projectID: projectID,
		logger:    logger,
		theme:     DefaultTheme,
		keys:      DefaultKeyMap,
		username:  username,
		password:  password,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	model.styleInputs()
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if key.Matches(message, model.keys.Quit) {
			model.close()
			return model, tea.Quit
		}
		if model.project == nil {
			return model.updateLogin(message)
		}
		return model.updateProject(message)

	case loginResultMsg:
		return model.handleLogin(message)

	case projectResultMsg:
		if model.project == nil {
			return model, nil
		}
		if !model.project.Apply(message.result) {
			model.logger.Debug().Int64("project_id", message.result.ID).Msg("dropped stale project result")
			return model, nil
		}
		state := model.project.State()
		model.logger.Info().
			Int64("project_id", state.ProjectID).
			Stringer("phase", state.Phase).
			Str("error", state.Err).
			Msg("project load finished")
		return model, nil

	case spinner.TickMsg:
		if model.project == nil || model.project.State().Phase != view.Loading {
			return model, nil
		}
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd
	}

	if model.project == nil {
		return model.updateInputs(message)
	}
	return model, nil
}

func (model Model) updateLogin(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.pending {
		return model, nil
	}
	switch {
	case key.Matches(message, model.keys.NextField), key.Matches(message, model.keys.PrevField):
		cmd := model.setFocus(1 - model.focus)
		return model, cmd
	case key.Matches(message, model.keys.Submit):
		if model.focus == fieldUsername {
			cmd := model.setFocus(fieldPassword)
			return model, cmd
		}
		return model.submit()
	}
	return model.updateInputs(message)
}

func (model *Model) setFocus(field int) tea.Cmd {
	model.focus = field
	defer model.styleInputs()
	if field == fieldUsername {
		model.password.Blur()
		return model.username.Focus()
	}
	model.username.Blur()
	return model.password.Focus()
}

// styleInputs highlights the prompt of the focused field.
func (model *Model) styleInputs() {
	model.username.PromptStyle = model.theme.Unfocused
	model.password.PromptStyle = model.theme.Unfocused
	if model.focus == fieldUsername {
		model.username.PromptStyle = model.theme.Focused
	} else {
		model.password.PromptStyle = model.theme.Focused
	}
}

func (model Model) updateInputs(message tea.Msg) (tea.Model, tea.Cmd) {
	var usernameCmd, passwordCmd tea.Cmd
	model.username, usernameCmd = model.username.Update(message)
	model.password, passwordCmd = model.password.Update(message)
	return model, tea.Batch(usernameCmd, passwordCmd)
}

func (model Model) submit() (tea.Model, tea.Cmd) {
	username, password := model.username.Value(), model.password.Value()
	if err := view.CheckCredentials(username, password); err != nil {
		model.loginErr = view.LoginErrorText(err)
		return model, nil
	}
	model.pending = true
	model.loginErr = ""

	ctx, api := model.ctx, model.api
	return model, func() tea.Msg {
		token, err := api.Login(ctx, username, password)
		return loginResultMsg{token: token, err: err}
	}
}

func (model Model) handleLogin(message loginResultMsg) (tea.Model, tea.Cmd) {
	model.pending = false
	if message.err != nil {
		model.logger.Warn().Err(message.err).Msg("login failed")
		model.loginErr = view.LoginErrorText(message.err)
		return model, nil
	}

	model.logger.Info().Str("username", model.username.Value()).Msg("signed in")
	model.password.SetValue("")
	model.project = view.NewProject(model.api.WithToken(message.token))
	cmd := model.load(model.projectID)
	return model, cmd
}

func (model Model) updateProject(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := model.project.State()
	switch {
	case key.Matches(message, model.keys.NextProject):
		cmd := model.load(state.ProjectID + 1)
		return model, cmd
	case key.Matches(message, model.keys.PrevProject):
		if state.ProjectID > 1 {
			cmd := model.load(state.ProjectID - 1)
			return model, cmd
		}
	}
	return model, nil
}

// load starts fetching id, superseding any load in flight.
func (model *Model) load(id int64) tea.Cmd {
	request, ok := model.project.Begin(model.ctx, id)
	if !ok {
		return nil
	}
	model.projectID = id
	model.logger.Debug().Int64("project_id", id).Msg("loading project")
	fetch := func() tea.Msg {
		return projectResultMsg{result: request.Run()}
	}
	return tea.Batch(fetch, model.spinner.Tick)
}

func (model *Model) close() {
	if model.project != nil {
		model.project.Close()
	}
}
