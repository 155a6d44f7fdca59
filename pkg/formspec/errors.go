package formspec

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedField reports a recognised tag whose payload is missing or
	// has the wrong shape.
	ErrMalformedField = errors.New("formspec: malformed field")
	// ErrMissingType reports an entry without a string `type` discriminator.
	ErrMissingType = errors.New("formspec: missing type discriminator")
)

// DecodeError describes the record and key that failed to decode. It matches
// ErrMalformedField with errors.Is.
type DecodeError struct {
	Tag string
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Tag != "" && e.Key != "":
		return fmt.Sprintf("formspec: %s: key %q: %v", e.Tag, e.Key, e.Err)
	case e.Tag != "":
		return fmt.Sprintf("formspec: %s: %v", e.Tag, e.Err)
	case e.Key != "":
		return fmt.Sprintf("formspec: key %q: %v", e.Key, e.Err)
	default:
		return fmt.Sprintf("formspec: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedField}
	}
	return []error{ErrMalformedField, e.Err}
}

func malformed(tag, key, format string, args ...any) error {
	return &DecodeError{Tag: tag, Key: key, Err: fmt.Errorf(format, args...)}
}

// withTag attaches tag to a DecodeError raised by a nested helper.
func withTag(err error, tag string) error {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) && decodeErr.Tag == "" {
		clone := *decodeErr
		clone.Tag = tag
		return &clone
	}
	return err
}
