package formspec

import (
	"sort"
	"strings"
)

// Store indexes form specs by payment-method identifier. It is safe for
// concurrent readers; Merge returns a new store instead of mutating.
type Store struct {
	specs map[string]FormSpec
}

// NewStore builds a store from specs. Later entries replace earlier ones with
// the same type.
func NewStore(specs ...FormSpec) *Store {
	store := &Store{specs: make(map[string]FormSpec, len(specs))}
	for _, spec := range specs {
		store.put(spec)
	}
	return store
}

func (s *Store) put(spec FormSpec) {
	s.specs[strings.TrimSpace(spec.Type)] = spec
}

// FormSpec returns the spec registered for the payment method.
func (s *Store) FormSpec(paymentMethod string) (FormSpec, bool) {
	if s == nil {
		return FormSpec{}, false
	}
	spec, ok := s.specs[strings.TrimSpace(paymentMethod)]
	return spec, ok
}

// NextActionSpec returns the next-action handling of the payment method. A
// missing entry means the default flow applies.
func (s *Store) NextActionSpec(paymentMethod string) (*NextActionSpec, bool) {
	spec, ok := s.FormSpec(paymentMethod)
	if !ok || spec.NextActionSpec == nil {
		return nil, false
	}
	return spec.NextActionSpec, true
}

// ConfirmStatus resolves the confirm-response handling for an intent status.
func (s *Store) ConfirmStatus(paymentMethod, status string) (ConfirmResponseStatusSpec, bool) {
	next, ok := s.NextActionSpec(paymentMethod)
	if !ok {
		return nil, false
	}
	entry, ok := next.ConfirmResponseStatusSpecs[status]
	return entry, ok
}

// PostConfirmStatus resolves the post-confirm handling for an intent status.
func (s *Store) PostConfirmStatus(paymentMethod, status string) (PostConfirmHandlingStatusSpec, bool) {
	next, ok := s.NextActionSpec(paymentMethod)
	if !ok || next.PostConfirmHandlingStatusSpecs == nil {
		return nil, false
	}
	entry, ok := next.PostConfirmHandlingStatusSpecs[status]
	return entry, ok
}

// PaymentMethods returns the registered identifiers in sorted order.
func (s *Store) PaymentMethods() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.specs))
	for key := range s.specs {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the store holds any specs.
func (s *Store) Empty() bool {
	return s == nil || len(s.specs) == 0
}

// Merge returns a copy of the store with overrides applied. An override whose
// next-action spec contains unknown variants is skipped so a newer document
// never replaces a spec this client can fully handle; skipped reports those
// payment methods in input order.
func (s *Store) Merge(overrides []FormSpec) (merged *Store, skipped []string) {
	merged = &Store{specs: make(map[string]FormSpec)}
	if s != nil {
		for key, spec := range s.specs {
			merged.specs[key] = spec
		}
	}
	for _, spec := range overrides {
		if !spec.NextActionSpec.Supported() {
			skipped = append(skipped, spec.Type)
			continue
		}
		merged.put(spec)
	}
	return merged, skipped
}
