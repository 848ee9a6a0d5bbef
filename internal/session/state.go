// Package session holds the state of one interactive search session and
// the transitions between its phases.
package session

import (
	"errors"
	"strconv"

	"github.com/pders01/seek/internal/config"
	"github.com/pders01/seek/internal/debuglog"
	"github.com/pders01/seek/internal/search"
	"github.com/pders01/seek/internal/selection"
	"github.com/pders01/seek/internal/validation"
)

// Phase is the observable position in the search interaction.
type Phase int

const (
	PhaseBlocked Phase = iota
	PhaseReady
	PhaseSearching
)

func (p Phase) String() string {
	switch p {
	case PhaseBlocked:
		return "blocked"
	case PhaseReady:
		return "ready"
	case PhaseSearching:
		return "searching"
	default:
		return "unknown"
	}
}

// Outcome is the result of the most recent completed search.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

// Blocker is a reason submission is currently disabled.
type Blocker int

const (
	BlockEmptyQuery Blocker = iota
	BlockLimitInvalid
	BlockThresholdInvalid
	BlockInFlight
)

func (b Blocker) String() string {
	switch b {
	case BlockEmptyQuery:
		return "empty query"
	case BlockLimitInvalid:
		return "invalid limit"
	case BlockThresholdInvalid:
		return "invalid score threshold"
	case BlockInFlight:
		return "search in flight"
	default:
		return "unknown"
	}
}

// State is the whole UI state of a session. It is only mutated through
// Apply.
type State struct {
	Query     string
	City      string
	CityScope bool

	// Raw field text. Limit and ScoreThreshold hold the last values that
	// passed validation.
	LimitInput     string
	ThresholdInput string
	Limit          int
	ScoreThreshold float64

	LimitErr     *validation.Error
	ThresholdErr *validation.Error

	Results   []search.Result
	Selection selection.Store

	Loading bool
	Err     string
	Outcome Outcome
}

// New returns a session seeded with the configured form defaults.
func New(defaults config.SearchConfig) *State {
	return &State{
		CityScope:      defaults.CityScope,
		LimitInput:     strconv.Itoa(defaults.DefaultLimit),
		ThresholdInput: validation.FormatScoreThreshold(defaults.DefaultScoreThreshold),
		Limit:          defaults.DefaultLimit,
		ScoreThreshold: defaults.DefaultScoreThreshold,
		Results:        []search.Result{},
	}
}

// Apply runs one event against the state. For SubmitRequested it returns
// the request to dispatch and true when submission was allowed; every other
// event returns false.
func (s *State) Apply(e Event) (search.Request, bool) {
	switch ev := e.(type) {
	case QueryChanged:
		s.Query = ev.Value
	case CityChanged:
		s.City = ev.Value
	case CityScopeToggled:
		s.CityScope = !s.CityScope
	case LimitChanged:
		s.LimitInput = ev.Raw
		n, err := validation.ValidateLimit(ev.Raw)
		s.LimitErr = fieldError(err)
		if err != nil {
			debuglog.Debugf("field rejected: %s", validation.Describe(err))
		} else {
			s.Limit = n
		}
	case ThresholdChanged:
		s.ThresholdInput = ev.Raw
		f, err := validation.ValidateScoreThreshold(ev.Raw)
		s.ThresholdErr = fieldError(err)
		if err != nil {
			debuglog.Debugf("field rejected: %s", validation.Describe(err))
		} else {
			s.ScoreThreshold = f
		}
	case SubmitRequested:
		return s.submit()
	case SearchSucceeded:
		s.Results = ev.Results
		if s.Results == nil {
			s.Results = []search.Result{}
		}
		s.Selection.Clear()
		s.Err = ""
		s.Loading = false
		s.Outcome = OutcomeSucceeded
	case SearchFailed:
		debuglog.Warnf("search failed: %v", ev.Err)
		s.Results = []search.Result{}
		s.Err = search.UnavailableMessage
		s.Loading = false
		s.Outcome = OutcomeFailed
	case ResultSelected:
		s.Selection.Select(ev.Result)
	}
	return search.Request{}, false
}

func (s *State) submit() (search.Request, bool) {
	if !s.CanSubmit() {
		debuglog.Debugf("submit ignored: %v", s.Blockers())
		return search.Request{}, false
	}

	req, ok := search.BuildRequest(s.Form())
	if !ok {
		return search.Request{}, false
	}

	s.Loading = true
	s.Err = ""
	return req, true
}

// Form returns the query builder input for the current state.
func (s *State) Form() search.Form {
	return search.Form{
		Query:          s.Query,
		City:           s.City,
		CityScope:      s.CityScope,
		Limit:          s.Limit,
		ScoreThreshold: s.ScoreThreshold,
	}
}

// Blockers lists every condition currently disabling submission.
func (s *State) Blockers() []Blocker {
	var blockers []Blocker
	if _, ok := search.BuildRequest(s.Form()); !ok {
		blockers = append(blockers, BlockEmptyQuery)
	}
	if s.LimitErr != nil {
		blockers = append(blockers, BlockLimitInvalid)
	}
	if s.ThresholdErr != nil {
		blockers = append(blockers, BlockThresholdInvalid)
	}
	if s.Loading {
		blockers = append(blockers, BlockInFlight)
	}
	return blockers
}

// CanSubmit reports whether a submit would dispatch a request.
func (s *State) CanSubmit() bool {
	return len(s.Blockers()) == 0
}

func (s *State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseSearching
	case s.CanSubmit():
		return PhaseReady
	default:
		return PhaseBlocked
	}
}

// fieldError narrows err to the inline field error shown next to a field.
func fieldError(err error) *validation.Error {
	if err == nil {
		return nil
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr
	}
	return &validation.Error{Message: err.Error()}
}
