package tui

type View int

const (
	ViewSearch View = iota
	ViewDetail
)

// Focus is the element of the search view receiving key input.
type Focus int

const (
	FocusQuery Focus = iota
	FocusCity
	FocusLimit
	FocusThreshold
	FocusResults
)

func (f Focus) isTextInput() bool {
	return f != FocusResults
}

// imageState tracks the probe of the active result's image.
type imageState int

const (
	imageUnchecked imageState = iota
	imageChecking
	imageAvailable
	imageBroken
)
