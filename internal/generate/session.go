package generate

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/thywilljoshua/scriptgen/internal/document"
	"github.com/thywilljoshua/scriptgen/internal/failure"
	"github.com/thywilljoshua/scriptgen/internal/script"
)

// State is the single result slot visible to the caller.
type State struct {
	Generating bool
	Script     []script.Scene
	Failure    *failure.Failure
}

// Session owns the current input and result. At most one generation runs at
// a time; an overlapping call is rejected with ErrBusy instead of queued.
type Session struct {
	pipeline *Pipeline
	inflight *semaphore.Weighted

	mu    sync.Mutex
	input document.UserInput
	state State
}

func NewSession(p *Pipeline) *Session {
	return &Session{pipeline: p, inflight: semaphore.NewWeighted(1)}
}

// SetName sets the optional teacher name used for the greeting.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input.Name = name
}

// SetDocument validates doc and, when it passes, replaces the current document.
// A rejected document leaves the previous one in place and records the failure.
func (s *Session) SetDocument(doc *document.Document) error {
	_, err := document.Validate(doc)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if f, ok := failure.As(err); ok {
			s.state.Failure = f
		}
		return err
	}
	s.input.Document = doc
	s.state.Failure = nil
	return nil
}

// Input returns a snapshot of the current input.
func (s *Session) Input() document.UserInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// State returns a snapshot of the current result slot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Estimate returns the duration of the current script, if any.
func (s *Session) Estimate() (script.Duration, bool) {
	return script.Estimate(s.State().Script)
}

// Generate runs the pipeline on the current input and applies the outcome.
// Cancellation leaves the session with no script and no failure.
func (s *Session) Generate(ctx context.Context) (script.Result, error) {
	if !s.inflight.TryAcquire(1) {
		return script.Result{}, ErrBusy
	}
	defer s.inflight.Release(1)

	in := s.Input()
	if in.Document == nil {
		return script.Result{}, ErrNoDocument
	}

	s.mu.Lock()
	s.state.Generating = true
	s.state.Failure = nil
	s.mu.Unlock()

	res, err := s.pipeline.Run(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = State{}
		return res, err
	}
	if f, failed := res.Failure(); failed {
		s.state = State{Failure: f}
	} else {
		scenes, _ := res.Script()
		s.state = State{Script: scenes}
	}
	return res, nil
}

// Reset clears input and result. It is refused while a generation is running.
func (s *Session) Reset() error {
	if !s.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer s.inflight.Release(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = document.UserInput{}
	s.state = State{}
	return nil
}
