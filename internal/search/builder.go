package search

import "strings"

// Form is the subset of the search form needed to build a request. Limit
// and ScoreThreshold are the last values that passed validation.
type Form struct {
	Query          string
	City           string
	CityScope      bool
	Limit          int
	ScoreThreshold float64
}

// BuildRequest assembles a request from the current form. It returns false
// when the trimmed query is empty. The city-scoped shape is chosen only when
// city scoping is enabled and the trimmed city is non-empty.
//
// Limit and ScoreThreshold are copied verbatim: callers only build requests
// once both fields have passed validation.
func BuildRequest(form Form) (Request, bool) {
	query := strings.TrimSpace(form.Query)
	if query == "" {
		return Request{}, false
	}

	req := Request{
		Query:          query,
		Limit:          form.Limit,
		ScoreThreshold: form.ScoreThreshold,
	}

	if city := strings.TrimSpace(form.City); form.CityScope && city != "" {
		req.City = city
	}

	return req, true
}
