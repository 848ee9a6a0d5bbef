package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Bounds for the numeric search form fields.
const (
	MinLimit          = 1
	MaxLimit          = 100
	MinScoreThreshold = 0.0
	MaxScoreThreshold = 1.0
)

// Range rules shared by the form fields and the configured defaults.
var (
	LimitRule          = fmt.Sprintf("min=%d,max=%d", MinLimit, MaxLimit)
	ScoreThresholdRule = fmt.Sprintf("gte=%g,lte=%g", MinScoreThreshold, MaxScoreThreshold)
)

var rangeValidator = validator.New()

// Canonical inline messages shown next to the offending field.
const (
	LimitMessage          = "Please enter a number between 1 and 100"
	ScoreThresholdMessage = "Please enter a number between 0 and 1"
)

// ErrorKind classifies why a numeric field was rejected.
type ErrorKind int

const (
	NotANumber ErrorKind = iota
	OutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case NotANumber:
		return "not a number"
	case OutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

// Error is a local, recoverable field error. It blocks submission and is
// rendered inline; it never becomes the global error message.
type Error struct {
	Field   string
	Kind    ErrorKind
	Raw     string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ValidateLimit parses raw as a base-10 integer and requires it to be
// within [MinLimit, MaxLimit].
func ValidateLimit(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &Error{Field: "limit", Kind: NotANumber, Raw: raw, Message: LimitMessage}
	}
	if err := CheckLimit(n); err != nil {
		return 0, &Error{Field: "limit", Kind: OutOfRange, Raw: raw, Message: LimitMessage}
	}
	return n, nil
}

// ValidateScoreThreshold parses raw as a float and requires it to be within
// [MinScoreThreshold, MaxScoreThreshold]. NaN and infinities are treated as
// unparsable.
func ValidateScoreThreshold(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &Error{Field: "score_threshold", Kind: NotANumber, Raw: raw, Message: ScoreThresholdMessage}
	}
	if err := CheckScoreThreshold(f); err != nil {
		return 0, &Error{Field: "score_threshold", Kind: OutOfRange, Raw: raw, Message: ScoreThresholdMessage}
	}
	return f, nil
}

// CheckLimit applies LimitRule to an already parsed limit.
func CheckLimit(n int) error {
	return rangeValidator.Var(n, LimitRule)
}

// CheckScoreThreshold applies ScoreThresholdRule to an already parsed
// threshold.
func CheckScoreThreshold(f float64) error {
	return rangeValidator.Var(f, ScoreThresholdRule)
}

// FormatScoreThreshold renders a threshold the way it is sent on the wire
// and shown in the form: shortest representation, no exponent.
func FormatScoreThreshold(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Describe returns "<field>: <kind>" for log lines.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return fmt.Sprintf("%s: %s (%q)", e.Field, e.Kind, e.Raw)
	}
	return err.Error()
}
