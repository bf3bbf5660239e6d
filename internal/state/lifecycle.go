package state

import "github.com/five82/bookshelf/internal/catalog"

// Lifecycle is the search state shown to the presentation layer. Exactly one
// of Idle, Loading, Success or Failure is current at any time.
type Lifecycle interface {
	lifecycle()
}

// Idle is the initial state before any search has been issued.
type Idle struct{}

// Loading means a search for Request is in flight.
type Loading struct {
	Request catalog.Request
}

// Success holds the normalised response for Request.
type Success struct {
	Request  catalog.Request
	Response catalog.Response
}

// Failure records that Request failed. Kind is kept for diagnostics; the UI
// renders every failure the same way.
type Failure struct {
	Request catalog.Request
	Kind    catalog.ErrorKind
	Err     error
}

func (Idle) lifecycle()    {}
func (Loading) lifecycle() {}
func (Success) lifecycle() {}
func (Failure) lifecycle() {}

// Name returns a short lowercase label for logs and status lines.
func Name(l Lifecycle) string {
	switch l.(type) {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "idle"
	}
}

// RequestOf returns the request behind a non-idle state.
func RequestOf(l Lifecycle) (catalog.Request, bool) {
	switch s := l.(type) {
	case Loading:
		return s.Request, true
	case Success:
		return s.Request, true
	case Failure:
		return s.Request, true
	default:
		return catalog.Request{}, false
	}
}
