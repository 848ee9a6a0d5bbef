package session

import "github.com/pders01/seek/internal/search"

// Event is a named transition applied to State.
type Event interface {
	event()
}

type (
	// QueryChanged carries the raw query field text.
	QueryChanged struct{ Value string }
	// CityChanged carries the raw city field text.
	CityChanged struct{ Value string }
	// CityScopeToggled flips city scoping.
	CityScopeToggled struct{}
	// LimitChanged carries the raw limit field text.
	LimitChanged struct{ Raw string }
	// ThresholdChanged carries the raw score threshold field text.
	ThresholdChanged struct{ Raw string }
	// SubmitRequested is an explicit submit or Enter in a text field.
	SubmitRequested struct{}
	// SearchSucceeded installs a new result list.
	SearchSucceeded struct{ Results []search.Result }
	// SearchFailed reports a failed search.
	SearchFailed struct{ Err error }
	// ResultSelected makes a listed result active.
	ResultSelected struct{ Result search.Result }
)

func (QueryChanged) event()     {}
func (CityChanged) event()      {}
func (CityScopeToggled) event() {}
func (LimitChanged) event()     {}
func (ThresholdChanged) event() {}
func (SubmitRequested) event()  {}
func (SearchSucceeded) event()  {}
func (SearchFailed) event()     {}
func (ResultSelected) event()   {}
