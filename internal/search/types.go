package search

// Result is a single entity returned by the search service.
type Result struct {
	Name        string `json:"name"`
	Alt         string `json:"alt"`
	Description string `json:"description"`
	Link        string `json:"link"`
	City        string `json:"city"`
	Images      string `json:"images"`
}

// SameAs reports whether r and other denote the same entity. Name is the
// equality key used for selection and highlighting.
func (r Result) SameAs(other Result) bool {
	return r.Name == other.Name
}

// Shape selects which remote resource a request is sent to.
type Shape int

const (
	ShapeGlobal Shape = iota
	ShapeCity
)

func (s Shape) String() string {
	switch s {
	case ShapeCity:
		return "city"
	default:
		return "global"
	}
}

// Request is a validated search request. City is non-empty only for the
// city-scoped shape.
type Request struct {
	Query          string
	City           string
	Limit          int
	ScoreThreshold float64
}

// Shape reports the endpoint this request targets.
func (r Request) Shape() Shape {
	if r.City != "" {
		return ShapeCity
	}
	return ShapeGlobal
}
