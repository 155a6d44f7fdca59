// Package form assembles decoded payment-method specs into an ordered list of
// elements, with a validity predicate and the submission params.
package form

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"

	"github.com/goliatone/go-payform/pkg/address"
	"github.com/goliatone/go-payform/pkg/element"
	"github.com/goliatone/go-payform/pkg/formspec"
	"github.com/goliatone/go-payform/pkg/localize"
)

// ParamType is the submission key carrying the payment-method identifier.
const ParamType = "type"

// DefaultMerchantName fills mandate texts when no merchant is configured.
const DefaultMerchantName = "the merchant"

// ErrEmptySpec is returned for specs without a payment-method type.
var ErrEmptySpec = errors.New("form: spec has no payment method type")

// Option customises Assemble.
type Option func(*assembler)

// WithResolver sets the label and country-name resolver.
func WithResolver(r *localize.Resolver) Option {
	return func(a *assembler) {
		if r != nil {
			a.resolver = r
		}
	}
}

// WithMerchantName sets the name substituted into mandate texts. Markup is
// stripped.
func WithMerchantName(name string) Option {
	return func(a *assembler) {
		a.merchant = name
	}
}

// WithAddressProvider overrides address.DefaultProvider. A nil provider is
// ignored.
func WithAddressProvider(p address.Provider) Option {
	return func(a *assembler) {
		if p != nil {
			a.provider = p
		}
	}
}

// WithDefaults seeds billing address values. Defaults.Country also selects
// the initial entry of standalone country dropdowns.
func WithDefaults(d address.Defaults) Option {
	return func(a *assembler) {
		a.defaults = d
	}
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(a *assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

type assembler struct {
	resolver *localize.Resolver
	merchant string
	provider address.Provider
	defaults address.Defaults
	logger   *slog.Logger
}

// Form is the assembled form of one payment method.
type Form struct {
	paymentMethod string
	async         bool
	nextAction    *formspec.NextActionSpec
	elements      []element.Element
	skipped       []string
}

// Assemble maps every field of spec to an element. Unknown fields are
// skipped and reported by Form.Skipped.
func Assemble(spec formspec.FormSpec, opts ...Option) (*Form, error) {
	if strings.TrimSpace(spec.Type) == "" {
		return nil, ErrEmptySpec
	}
	a := &assembler{
		resolver: localize.Default(),
		provider: address.DefaultProvider(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(a)
	}

	form := &Form{
		paymentMethod: spec.Type,
		async:         spec.Async,
		nextAction:    spec.NextActionSpec,
	}
	for idx, field := range spec.Fields {
		if field == nil {
			continue
		}
		if formspec.IsUnknown(field) {
			a.logger.Debug("form: skipping unsupported field",
				slog.String("payment_method", spec.Type),
				slog.String("type", string(field.Type())),
				slog.Int("index", idx),
			)
			form.skipped = append(form.skipped, string(field.Type()))
			continue
		}
		el, err := a.build(field)
		if err != nil {
			return nil, fmt.Errorf("form: %s: field %d (%s): %w", spec.Type, idx, field.Type(), err)
		}
		form.elements = append(form.elements, el)
	}
	a.logger.Debug("form: assembled",
		slog.String("payment_method", spec.Type),
		slog.Int("elements", len(form.elements)),
		slog.Int("skipped", len(form.skipped)),
	)
	return form, nil
}

// PaymentMethod returns the payment-method identifier.
func (f *Form) PaymentMethod() string { return f.paymentMethod }

// Async reports whether confirmation settles asynchronously.
func (f *Form) Async() bool { return f.async }

// NextAction returns the next-action spec, or nil when the payment method
// needs no special handling.
func (f *Form) NextAction() *formspec.NextActionSpec { return f.nextAction }

// Elements returns the top-level elements in spec order. An address section
// is a single element; use Section.Elements for its fields.
func (f *Form) Elements() []element.Element {
	return append([]element.Element(nil), f.elements...)
}

// Skipped returns the tags of unknown fields left out of the form.
func (f *Form) Skipped() []string {
	return append([]string(nil), f.skipped...)
}

// Sections returns the address sections of the form.
func (f *Form) Sections() []*address.Section {
	return lo.FilterMap(f.elements, func(el element.Element, _ int) (*address.Section, bool) {
		section, ok := el.(*address.Section)
		return section, ok
	})
}

// Element returns the first top-level element with id.
func (f *Form) Element(id string) (element.Element, bool) {
	return lo.Find(f.elements, func(el element.Element) bool {
		return el.ID() == id
	})
}

// Valid reports whether every present element validates.
func (f *Form) Valid() bool {
	return element.AllValid(f.elements)
}

// Invalid returns the IDs of elements that block submission, descending into
// address sections.
func (f *Form) Invalid() []string {
	var out []string
	for _, el := range f.elements {
		if section, ok := el.(*address.Section); ok {
			for _, child := range section.Elements() {
				if child.Validation() != element.Valid {
					out = append(out, child.ID())
				}
			}
			continue
		}
		if el.Validation() != element.Valid {
			out = append(out, el.ID())
		}
	}
	return out
}

// Params returns the submission values of every element plus ParamType.
func (f *Form) Params() map[string]string {
	params := map[string]string{ParamType: f.paymentMethod}
	for _, el := range f.elements {
		el.Params(params)
	}
	return params
}

var merchantPolicy = bluemonday.StrictPolicy()

func (a *assembler) merchantName() string {
	name := strings.TrimSpace(html.UnescapeString(merchantPolicy.Sanitize(a.merchant)))
	if name == "" {
		return DefaultMerchantName
	}
	return name
}
