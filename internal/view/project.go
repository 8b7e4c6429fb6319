// Package view holds the UI-agnostic project view lifecycle shared by the
// browser and terminal front ends.
//
// A Project moves through Loading, then exactly one of Success or Failure,
// for each project id it is given. Fetches carry a cancellable context; when
// the id changes or the view is closed the in-flight fetch is cancelled and
// its result can no longer be applied, so only the latest request commits.
//
// Project is driven from a single UI loop and is not safe for concurrent
// use. Request.Run blocks and belongs on another goroutine; its Result is
// handed back to the loop and passed to Apply.
package view

import (
	"context"
	"errors"

	"github.com/kidandcat/projectview/internal/client"
	"github.com/kidandcat/projectview/internal/model"
)

const (
	LoadingText            = "Loading..."
	UnexpectedErrorMessage = "An unexpected error occurred"
	errorPrefix            = "Error loading project: "
)

var ErrInvalidProjectID = errors.New("project id must be positive")

type Phase int

const (
	Loading Phase = iota
	Success
	Failure
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return "unknown"
}

type Fetcher interface {
	Project(ctx context.Context, id int64) (*model.Project, error)
}

// State is a snapshot of what the view displays. Project is set only in
// Success and Err only in Failure.
type State struct {
	Phase     Phase
	ProjectID int64
	Project   *model.Project
	Err       string
}

// ErrorText is the failure line shown to the user.
func (s State) ErrorText() string {
	return errorPrefix + s.Err
}

type Request struct {
	ID      int64
	gen     uint64
	ctx     context.Context
	fetcher Fetcher
}

// Run performs the fetch. It blocks until the server answers or the request
// is cancelled.
func (r Request) Run() Result {
	p, err := r.fetcher.Project(r.ctx, r.ID)
	return Result{ID: r.ID, gen: r.gen, Project: p, Err: err}
}

type Result struct {
	ID      int64
	gen     uint64
	Project *model.Project
	Err     error
}

type Project struct {
	fetcher Fetcher
	state   State
	gen     uint64
	begun   bool
	closed  bool
	cancel  context.CancelFunc
}

func NewProject(fetcher Fetcher) *Project {
	return &Project{fetcher: fetcher}
}

func (v *Project) State() State {
	return v.state
}

// Begin enters Loading for id and returns the request to run. It returns
// false when id is already the current id, when the view is closed, or when
// id is not positive (the view then shows a failure without fetching).
func (v *Project) Begin(parent context.Context, id int64) (Request, bool) {
	if v.closed || (v.begun && id == v.state.ProjectID) {
		return Request{}, false
	}
	v.cancelInFlight()
	v.gen++
	v.begun = true

	if id <= 0 {
		v.state = State{Phase: Failure, ProjectID: id, Err: ErrorMessage(ErrInvalidProjectID)}
		return Request{}, false
	}

	v.state = State{Phase: Loading, ProjectID: id}
	ctx, cancel := context.WithCancel(parent)
	v.cancel = cancel
	return Request{ID: id, gen: v.gen, ctx: ctx, fetcher: v.fetcher}, true
}

// Apply commits res if it answers the latest request and reports whether it
// did. Results of superseded or cancelled requests are dropped; the view
// stays in Loading when its own request was cancelled from outside.
func (v *Project) Apply(res Result) bool {
	if v.closed || res.gen != v.gen || v.state.Phase != Loading {
		return false
	}
	if errors.Is(res.Err, context.Canceled) {
		return false
	}
	v.cancelInFlight()

	switch {
	case res.Err != nil:
		v.state = State{Phase: Failure, ProjectID: res.ID, Err: ErrorMessage(res.Err)}
	case res.Project == nil:
		v.state = State{Phase: Failure, ProjectID: res.ID, Err: UnexpectedErrorMessage}
	default:
		v.state = State{Phase: Success, ProjectID: res.ID, Project: res.Project}
	}
	return true
}

// Close cancels any in-flight request. A closed view ignores further calls
// to Begin and Apply.
func (v *Project) Close() {
	v.cancelInFlight()
	v.closed = true
}

func (v *Project) cancelInFlight() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// ErrorMessage returns the text displayed for a failed fetch: the transport
// message for recognized network and HTTP failures, a fixed fallback for
// anything else.
func ErrorMessage(err error) string {
	var apiErr *client.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return UnexpectedErrorMessage
}
