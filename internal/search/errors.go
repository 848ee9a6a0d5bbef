package search

import "errors"

// ErrUnavailable is returned for every transport, status or decoding
// failure. Callers are not expected to distinguish the cause.
var ErrUnavailable = errors.New("search unavailable")

// UnavailableMessage is the single user-facing message for ErrUnavailable.
const UnavailableMessage = "Failed to fetch search results. Please check if the backend server is running."
