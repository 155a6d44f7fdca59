// Package formspec decodes payment-method form specifications. A form spec
// document lists, per payment method, the ordered fields the form collects
// and the next-action instructions applied after confirmation.
//
// Field and next-action entries are tagged by a `type` discriminator and
// decode into closed sets of variants through a dispatch table. Unrecognised
// tags are not errors: they decode into UnknownField, UnknownConfirmStatus or
// UnknownPostConfirmStatus values carrying the raw tag, so older clients can
// consume documents that introduce new variants. A recognised tag with a
// malformed payload fails the whole document with an error wrapping
// ErrMalformedField.
//
// Decoding is a pure function of the input; decoded values may be shared
// between goroutines as long as callers do not mutate them.
package formspec
