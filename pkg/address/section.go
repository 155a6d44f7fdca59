package address

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/goliatone/go-payform/pkg/element"
	"github.com/goliatone/go-payform/pkg/localize"
)

var (
	// ErrNoCountries is returned when a section would offer no country.
	ErrNoCountries = errors.New("address: section requires at least one country")
	// ErrNilProvider is returned when a section is built without a provider.
	ErrNilProvider = errors.New("address: provider is required")
	// ErrUnknownCountry is returned when selecting a country the section does
	// not offer.
	ErrUnknownCountry = errors.New("address: unknown country")
)

// SectionID is the element ID of an address section.
const SectionID = "billing_address"

// Option customises a Section.
type Option func(*Section)

// WithProvider overrides DefaultProvider.
func WithProvider(p Provider) Option {
	return func(s *Section) {
		s.provider = p
	}
}

// WithCountries restricts the offered countries. The provider countries are
// used when empty.
func WithCountries(codes ...string) Option {
	return func(s *Section) {
		s.allowed = append([]string(nil), codes...)
	}
}

// WithMode sets the collection mode. It cannot change afterwards.
func WithMode(mode CollectionMode) Option {
	return func(s *Section) {
		s.mode = mode
	}
}

// WithAdditionalFields enables fields collected regardless of country.
func WithAdditionalFields(fields AdditionalFields) Option {
	return func(s *Section) {
		s.additional = fields
	}
}

// WithDefaults seeds the initial field values and country.
func WithDefaults(d Defaults) Option {
	return func(s *Section) {
		s.defaults = d
	}
}

// WithResolver sets the label resolver and the locale used to sort countries.
func WithResolver(r *localize.Resolver) Option {
	return func(s *Section) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithAPIPaths overrides DefaultAPIPaths for the listed kinds.
func WithAPIPaths(paths map[FieldKind]string) Option {
	return func(s *Section) {
		s.apiPaths = paths
	}
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Section) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Section is an address form section: an optional name, a country dropdown
// and the address fields required by the selected country. The section owns
// the dropdown and re-synthesizes its fields whenever the selection changes.
//
// A Section is not safe for concurrent use. The field list is replaced as a
// whole on every synthesis, so readers never observe a partial list.
type Section struct {
	provider   Provider
	allowed    []string
	mode       CollectionMode
	additional AdditionalFields
	defaults   Defaults
	resolver   *localize.Resolver
	apiPaths   map[FieldKind]string
	logger     *slog.Logger

	country *element.Dropdown
	fields  sectionFields
	pending *Defaults
}

type sectionFields struct {
	name    *element.TextField
	address []*element.TextField
}

// NewSection builds a section and synthesizes the fields of its initial
// country: Defaults.Country when offered, otherwise the first allowed
// country.
func NewSection(options ...Option) (*Section, error) {
	s := &Section{
		provider: DefaultProvider(),
		resolver: localize.Default(),
		logger:   slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.provider == nil {
		return nil, ErrNilProvider
	}

	codes := s.allowed
	if len(codes) == 0 {
		codes = s.provider.Countries()
	}
	codes = lo.Uniq(lo.FilterMap(codes, func(code string, _ int) (string, bool) {
		code = normalizeCountry(code)
		return code, code != ""
	}))
	if len(codes) == 0 {
		return nil, ErrNoCountries
	}

	initial := codes[0]
	if wanted := normalizeCountry(s.defaults.Country); wanted != "" && lo.Contains(codes, wanted) {
		initial = wanted
	}

	sorted := s.resolver.SortCountries(codes)
	items := lo.Map(sorted, func(code string, _ int) element.Item {
		return element.Item{Label: s.resolver.CountryName(code), Value: code}
	})
	dropdown, err := element.NewDropdown(element.DropdownConfig{
		ID:       string(FieldCountry),
		Label:    s.resolver.Label(localize.LabelCountryRegion),
		APIPath:  apiPath(s.apiPaths, FieldCountry),
		Items:    items,
		Selected: lo.IndexOf(sorted, initial),
	})
	if err != nil {
		return nil, fmt.Errorf("address: country dropdown: %w", err)
	}
	s.country = dropdown
	s.country.OnChange(func(item element.Item) {
		s.synthesize(item.Value, s.pending)
	})

	defaults := s.defaults
	s.synthesize(initial, &defaults)
	return s, nil
}

// ID implements element.Element.
func (s *Section) ID() string { return SectionID }

// Country returns the selected country code.
func (s *Section) Country() string {
	return s.country.Selected().Value
}

// CountryDropdown returns the owned country dropdown. Selecting through it
// re-synthesizes the section.
func (s *Section) CountryDropdown() *element.Dropdown {
	return s.country
}

// Mode returns the collection mode fixed at construction.
func (s *Section) Mode() CollectionMode { return s.mode }

// SelectCountry changes the country, carrying forward values of fields whose
// kind the new country also collects.
func (s *Section) SelectCountry(code string) error {
	if err := s.country.SelectValue(normalizeCountry(code)); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}
	return nil
}

// Apply seeds the section with explicit values, switching country when
// d.Country is set.
func (s *Section) Apply(d Defaults) error {
	target := s.Country()
	if code := normalizeCountry(d.Country); code != "" {
		if s.country.IndexOf(code) < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownCountry, d.Country)
		}
		target = code
	}
	if target != s.Country() {
		s.pending = &d
		defer func() { s.pending = nil }()
		return s.country.SelectValue(target)
	}
	s.synthesize(target, &d)
	return nil
}

// Elements returns the current ordered element list:
// [name?] + [country] + address fields.
func (s *Section) Elements() []element.Element {
	current := s.fields
	out := make([]element.Element, 0, len(current.address)+2)
	if current.name != nil {
		out = append(out, current.name)
	}
	out = append(out, s.country)
	for _, f := range current.address {
		out = append(out, f)
	}
	return out
}

// FieldKinds returns the kinds of the current element list, in order.
func (s *Section) FieldKinds() []FieldKind {
	return lo.Map(s.Elements(), func(el element.Element, _ int) FieldKind {
		return FieldKind(el.ID())
	})
}

// Field returns the present text field of kind.
func (s *Section) Field(kind FieldKind) (*element.TextField, bool) {
	if kind == FieldName {
		return s.fields.name, s.fields.name != nil
	}
	for _, f := range s.fields.address {
		if f.ID() == string(kind) {
			return f, true
		}
	}
	return nil, false
}

// Validation implements element.Element over the present fields only.
func (s *Section) Validation() element.ValidationState {
	for _, el := range s.Elements() {
		if state := el.Validation(); state != element.Valid {
			return state
		}
	}
	return element.Valid
}

// Valid reports whether every present field validates.
func (s *Section) Valid() bool {
	return s.Validation() == element.Valid
}

// Values returns the current values of present fields.
func (s *Section) Values() Defaults {
	out := Defaults{Country: s.Country()}
	for kind, value := range s.currentValues() {
		out.set(kind, value)
	}
	return out
}

// Params implements element.Element.
func (s *Section) Params(dst map[string]string) {
	for _, el := range s.Elements() {
		el.Params(dst)
	}
}

func (s *Section) currentValues() map[FieldKind]string {
	values := make(map[FieldKind]string, len(s.fields.address)+1)
	if s.fields.name != nil {
		values[FieldName] = s.fields.name.Value()
	}
	for _, f := range s.fields.address {
		values[FieldKind(f.ID())] = f.Value()
	}
	return values
}

func (s *Section) synthesize(country string, prior *Defaults) {
	current := s.currentValues()
	address := Synthesize(SynthesisRequest{
		Country:  country,
		Mode:     s.mode,
		Provider: s.provider,
		Prior:    prior,
		Current:  current,
		Resolver: s.resolver,
		APIPaths: s.apiPaths,
	})

	var name *element.TextField
	if s.additional.Has(AdditionalName) {
		value := current[FieldName]
		if prior != nil && prior.Name != "" {
			value = prior.Name
		}
		name = element.NewTextField(element.TextConfig{
			ID:      string(FieldName),
			Label:   s.resolver.Label(localize.LabelName),
			APIPath: apiPath(s.apiPaths, FieldName),
		}, value)
	}

	s.fields = sectionFields{name: name, address: address}
	s.logger.Debug("address: synthesized fields",
		slog.String("country", country),
		slog.String("mode", s.mode.String()),
		slog.Any("fields", fieldIDs(address)),
	)
}
