package search

import (
	"log/slog"
	"strings"
)

// StatusKind classifies the advisory message shown next to the query input.
type StatusKind string

const (
	StatusIdle     StatusKind = "idle"
	StatusTag      StatusKind = "tag"
	StatusPattern  StatusKind = "pattern"
	StatusFallback StatusKind = "fallback"
)

// Status is user-facing feedback about the active query.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
}

// IsError reports whether the status should be rendered as a warning.
func (s Status) IsError() bool { return s.Kind == StatusFallback }

const idleMessage = "Type a regex pattern to search. Invalid patterns will be ignored."

// State is a snapshot of a Session passed to observers.
type State struct {
	Pattern       *Pattern
	CaseSensitive bool
	Status        Status
}

// Active reports whether a pattern is filtering tasks.
func (s State) Active() bool { return s.Pattern != nil }

// Session holds the active pattern and case flag for one query input.
// A Session is not safe for concurrent use; it belongs to the goroutine handling input.
type Session struct {
	pattern       *Pattern
	caseSensitive bool
	lastInput     string
	status        Status
	observers     []*observer
	logger        *slog.Logger
}

type observer struct {
	fn func(State)
}

// NewSession returns a session with no active pattern. logger may be nil.
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		status: Status{Kind: StatusIdle, Message: idleMessage},
		logger: logger,
	}
}

// Pattern returns the active pattern, or nil.
func (s *Session) Pattern() *Pattern { return s.pattern }

// CaseSensitive reports the current case flag.
func (s *Session) CaseSensitive() bool { return s.caseSensitive }

// Status returns feedback about the last update.
func (s *Session) Status() Status { return s.status }

// Active reports whether a pattern is filtering tasks.
func (s *Session) Active() bool { return s.pattern != nil }

// State returns a snapshot of the session.
func (s *Session) State() State {
	return State{Pattern: s.pattern, CaseSensitive: s.caseSensitive, Status: s.status}
}

// Subscribe registers fn to run after every state change. The returned func removes it.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	o := &observer{fn: fn}
	s.observers = append(s.observers, o)
	return func() {
		for i, cur := range s.observers {
			if cur == o {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// UpdateFromInput recomputes the session from the raw query text. Order: empty input
// clears the session, a @tag:name query filters by tag, anything else is compiled with
// literal fallback. Observers are notified once.
func (s *Session) UpdateFromInput(raw string, caseSensitive bool) {
	s.caseSensitive = caseSensitive
	s.lastInput = raw
	s.apply(raw)
	s.notify()
}

// ToggleCaseSensitivity flips the case flag and recompiles the current input. Tag queries
// are case-insensitive by construction and come out unchanged.
func (s *Session) ToggleCaseSensitivity() {
	s.caseSensitive = !s.caseSensitive
	if s.pattern != nil {
		s.apply(s.lastInput)
	}
	s.notify()
}

func (s *Session) apply(raw string) {
	in := strings.TrimSpace(raw)
	if in == "" {
		s.pattern = nil
		s.status = Status{Kind: StatusIdle, Message: idleMessage}
		return
	}

	if tag, ok := DetectTag(in); ok {
		s.pattern = TagPattern(tag)
		s.status = Status{Kind: StatusTag, Message: "Filtering by tag: " + tag}
		return
	}

	p, err := CompileFallback(in, s.caseSensitive)
	s.pattern = p
	if err != nil {
		s.logger.Warn("invalid search pattern, using plain text", "input", in, "err", err)
		s.status = Status{Kind: StatusFallback, Message: "Invalid regex pattern. Using plain text search."}
		return
	}
	s.status = Status{Kind: StatusPattern, Message: "Searching with pattern: " + displayPattern(in, s.caseSensitive)}
}

func displayPattern(in string, caseSensitive bool) string {
	if caseSensitive {
		return "/" + in + "/"
	}
	return "/" + in + "/i"
}

func (s *Session) notify() {
	st := s.State()
	for _, o := range append([]*observer(nil), s.observers...) {
		o.fn(st)
	}
}
