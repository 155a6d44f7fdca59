// Package payform is the top-level entry point: it assembles the form of a
// payment method from the bundled (or a caller supplied) spec store.
package payform

import (
	"fmt"

	"github.com/goliatone/go-payform/pkg/address"
	"github.com/goliatone/go-payform/pkg/form"
	"github.com/goliatone/go-payform/pkg/formspec"
)

// Form aliases form.Form for callers that only import the root package.
type Form = form.Form

// Defaults aliases address.Defaults.
type Defaults = address.Defaults

// Store aliases formspec.Store.
type Store = formspec.Store

// Assemble builds the form of paymentMethod from the bundled specs.
func Assemble(paymentMethod string, options ...form.Option) (*Form, error) {
	store, err := formspec.LoadEmbedded()
	if err != nil {
		return nil, err
	}
	return AssembleFrom(store, paymentMethod, options...)
}

// AssembleFrom builds the form of paymentMethod from store.
func AssembleFrom(store *Store, paymentMethod string, options ...form.Option) (*Form, error) {
	if store == nil {
		return nil, fmt.Errorf("payform: store is required")
	}
	spec, ok := store.FormSpec(paymentMethod)
	if !ok {
		return nil, fmt.Errorf("payform: unknown payment method %q", paymentMethod)
	}
	return form.Assemble(spec, options...)
}
