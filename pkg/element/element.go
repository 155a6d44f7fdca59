// Package element defines the concrete field descriptors assembled into a
// payment form: text inputs, dropdowns and static text. Rendering is left to
// callers; elements only carry configuration, current value and validation
// state.
package element

import "errors"

// ErrNoItems is returned when a dropdown is built without items.
var ErrNoItems = errors.New("element: dropdown requires at least one item")

// ErrUnknownItem is returned when selecting a value the dropdown lacks.
var ErrUnknownItem = errors.New("element: unknown dropdown item")

// ValidationState is the per-element validation result.
type ValidationState uint8

const (
	// Valid means the element does not block submission.
	Valid ValidationState = iota
	// Empty means a required element has no value.
	Empty
	// Invalid means the value failed format validation.
	Invalid
)

func (s ValidationState) String() string {
	switch s {
	case Valid:
		return "valid"
	case Empty:
		return "empty"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Element is implemented by every form element.
type Element interface {
	ID() string
	Validation() ValidationState
	// Params writes the element's submission values keyed by wire path.
	Params(dst map[string]string)
}

// AllValid reports whether every element validates.
func AllValid(elements []Element) bool {
	for _, el := range elements {
		if el == nil {
			continue
		}
		if el.Validation() != Valid {
			return false
		}
	}
	return true
}

// StaticText is a non-interactive element such as a header or mandate.
type StaticText struct {
	id   string
	text string
}

// NewStaticText builds a static element.
func NewStaticText(id, text string) *StaticText {
	return &StaticText{id: id, text: text}
}

func (s *StaticText) ID() string                  { return s.id }
func (s *StaticText) Text() string                { return s.text }
func (s *StaticText) Validation() ValidationState { return Valid }
func (s *StaticText) Params(map[string]string)    {}
