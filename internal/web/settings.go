package web

import (
	"fmt"
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Environment keys the server hands to the browser through the app handler.
const (
	envAPIOrigin = "PROJECTVIEW_API_ORIGIN"
	envProjectID = "PROJECTVIEW_PROJECT_ID"
	envMarkdown  = "PROJECTVIEW_MARKDOWN"
)

// Settings is the configuration the browser front end is constructed with.
type Settings struct {
	APIOrigin string
	ProjectID int64

	// Markdown renders project descriptions as Markdown instead of plain
	// text.
	Markdown bool
}

func (s Settings) env() map[string]string {
	return map[string]string{
		envAPIOrigin: s.APIOrigin,
		envProjectID: strconv.FormatInt(s.ProjectID, 10),
		envMarkdown:  strconv.FormatBool(s.Markdown),
	}
}

// ParseSettings builds Settings from their string forms.
func ParseSettings(origin, projectID string) (Settings, error) {
	if origin == "" {
		return Settings{}, fmt.Errorf("%s is not set", envAPIOrigin)
	}
	id, err := strconv.ParseInt(projectID, 10, 64)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", envProjectID, err)
	}
	if id <= 0 {
		return Settings{}, fmt.Errorf("%s must be positive, got %d", envProjectID, id)
	}
	return Settings{APIOrigin: origin, ProjectID: id}, nil
}

// SettingsFromEnv reads the settings the server published to the browser.
func SettingsFromEnv() (Settings, error) {
	s, err := ParseSettings(app.Getenv(envAPIOrigin), app.Getenv(envProjectID))
	if err != nil {
		return s, err
	}
	if v := app.Getenv(envMarkdown); v != "" {
		if s.Markdown, err = strconv.ParseBool(v); err != nil {
			return s, fmt.Errorf("%s: %w", envMarkdown, err)
		}
	}
	return s, nil
}
