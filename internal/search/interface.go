package search

import "context"

// Searcher defines the minimal search API used by the TUI.
type Searcher interface {
	Search(ctx context.Context, req Request) ([]Result, error)
}

// ImageProber can be implemented by searchers that are able to check
// whether an image resource is reachable before it is displayed.
type ImageProber interface {
	ProbeImage(ctx context.Context, url string) error
}
