package element

import (
	"regexp"
	"strings"
)

// TextConfig configures a TextField.
type TextConfig struct {
	ID    string
	Label string
	// APIPath is the wire key submitted for the value. Empty omits the field
	// from submission.
	APIPath  string
	Optional bool
	// Pattern, when set, must match the whole normalized value.
	Pattern *regexp.Regexp
	// Normalize rewrites the raw value before validation and submission.
	Normalize func(string) string
	// Check runs after Pattern for validations a regexp cannot express.
	Check func(string) bool
}

// TextField is a single-line text input.
type TextField struct {
	cfg   TextConfig
	value string
}

// NewTextField builds a text field seeded with value.
func NewTextField(cfg TextConfig, value string) *TextField {
	return &TextField{cfg: cfg, value: value}
}

func (f *TextField) ID() string         { return f.cfg.ID }
func (f *TextField) Label() string      { return f.cfg.Label }
func (f *TextField) APIPath() string    { return f.cfg.APIPath }
func (f *TextField) Optional() bool     { return f.cfg.Optional }
func (f *TextField) Config() TextConfig { return f.cfg }

// Value returns the raw value as entered.
func (f *TextField) Value() string { return f.value }

// SetValue replaces the raw value.
func (f *TextField) SetValue(value string) { f.value = value }

// Normalized returns the value after trimming and Normalize.
func (f *TextField) Normalized() string {
	value := strings.TrimSpace(f.value)
	if f.cfg.Normalize != nil {
		value = f.cfg.Normalize(value)
	}
	return value
}

// Validation implements Element.
func (f *TextField) Validation() ValidationState {
	value := f.Normalized()
	if value == "" {
		if f.cfg.Optional {
			return Valid
		}
		return Empty
	}
	if f.cfg.Pattern != nil && !f.cfg.Pattern.MatchString(value) {
		return Invalid
	}
	if f.cfg.Check != nil && !f.cfg.Check(value) {
		return Invalid
	}
	return Valid
}

// Params implements Element. Empty values are not submitted.
func (f *TextField) Params(dst map[string]string) {
	if dst == nil || f.cfg.APIPath == "" {
		return
	}
	if value := f.Normalized(); value != "" {
		dst[f.cfg.APIPath] = value
	}
}
