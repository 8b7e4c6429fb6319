// Package model holds the wire records shared by the API server and its
// front ends. Records are read-only mirrors of server state.
package model

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	User        User   `json:"user"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type Participant struct {
	ID       int64  `json:"id"`
	User     User   `json:"user"`
	JoinedAt string `json:"joined_at"`
}

type Project struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	User         User          `json:"user"`
	Tasks        []Task        `json:"tasks"`
	Participants []Participant `json:"participants"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

// Normalize replaces absent task and participant lists with empty ones so a
// loaded project never carries nil slices.
func (p *Project) Normalize() {
	if p.Tasks == nil {
		p.Tasks = []Task{}
	}
	if p.Participants == nil {
		p.Participants = []Participant{}
	}
}

// TaskTitles returns the task titles in server order.
func (p *Project) TaskTitles() []string {
	titles := make([]string, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		titles = append(titles, t.Title)
	}
	return titles
}

// ParticipantUsernames returns each participant's username in server order.
func (p *Project) ParticipantUsernames() []string {
	names := make([]string, 0, len(p.Participants))
	for _, pt := range p.Participants {
		names = append(names, pt.User.Username)
	}
	return names
}
