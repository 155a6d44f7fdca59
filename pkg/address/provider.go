package address

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-payform/pkg/localize"
)

// Provider supplies per-country address requirements.
type Provider interface {
	// Countries returns the supported ISO country codes.
	Countries() []string
	// FieldOrdering returns the ordered, duplicate-free kinds collected for
	// the country.
	FieldOrdering(country string) []Kind
	// Constraints returns the validation rules of a kind in the country.
	Constraints(country string, kind Kind) Constraint
}

// Constraint carries the per-field rules of a provider.
type Constraint struct {
	Required bool
	Label    localize.LabelID
	// Pattern matches the whole postal code; nil accepts any value.
	Pattern *regexp.Regexp
}

// Spec is the address format of one country.
type Spec struct {
	Format        string `json:"format" yaml:"format"`
	Require       string `json:"require" yaml:"require"`
	CityNameType  string `json:"city_name_type,omitempty" yaml:"city_name_type,omitempty"`
	StateNameType string `json:"state_name_type,omitempty" yaml:"state_name_type,omitempty"`
	ZipNameType   string `json:"zip_name_type,omitempty" yaml:"zip_name_type,omitempty"`
	Zip           string `json:"zip,omitempty" yaml:"zip,omitempty"`

	zipPattern *regexp.Regexp
}

// DefaultSpec applies to countries absent from the provider data.
var DefaultSpec = Spec{Format: "ACSZ", Require: "AC"}

var formatKinds = map[rune]Kind{
	'A': KindLine,
	'C': KindCity,
	'S': KindState,
	'Z': KindPostal,
}

// Ordering returns the kinds named by Format, in order and without
// duplicates.
func (s Spec) Ordering() []Kind {
	kinds := lo.FilterMap([]rune(strings.ToUpper(s.Format)), func(r rune, _ int) (Kind, bool) {
		kind, ok := formatKinds[r]
		return kind, ok
	})
	return lo.Uniq(kinds)
}

func (s Spec) requires(kind Kind) bool {
	for _, r := range strings.ToUpper(s.Require) {
		if formatKinds[r] == kind {
			return true
		}
	}
	return false
}

var cityLabels = map[string]localize.LabelID{
	"city":      localize.LabelCity,
	"district":  localize.LabelDistrict,
	"suburb":    localize.LabelSuburb,
	"post_town": localize.LabelPostTown,
	"town":      localize.LabelTown,
}

var stateLabels = map[string]localize.LabelID{
	"state":      localize.LabelState,
	"province":   localize.LabelProvince,
	"county":     localize.LabelCounty,
	"prefecture": localize.LabelPrefecture,
	"area":       localize.LabelArea,
	"department": localize.LabelDepartment,
	"emirate":    localize.LabelEmirate,
	"island":     localize.LabelIsland,
	"region":     localize.LabelRegion,
}

var zipLabels = map[string]localize.LabelID{
	"zip":     localize.LabelZIP,
	"postal":  localize.LabelPostalCode,
	"pin":     localize.LabelPIN,
	"eircode": localize.LabelEircode,
}

func (s Spec) label(kind Kind) localize.LabelID {
	pick := func(table map[string]localize.LabelID, key string, fallback localize.LabelID) localize.LabelID {
		if id, ok := table[strings.ToLower(strings.TrimSpace(key))]; ok {
			return id
		}
		return fallback
	}
	switch kind {
	case KindCity:
		return pick(cityLabels, s.CityNameType, localize.LabelCity)
	case KindState:
		return pick(stateLabels, s.StateNameType, localize.LabelState)
	case KindPostal:
		return pick(zipLabels, s.ZipNameType, localize.LabelPostalCode)
	default:
		return localize.LabelLine1
	}
}

// StaticProvider serves address specs decoded from a document keyed by
// country code. It is immutable and safe for concurrent use.
type StaticProvider struct {
	specs     map[string]Spec
	countries []string
}

// NewStaticProvider validates specs and builds a provider.
func NewStaticProvider(specs map[string]Spec) (*StaticProvider, error) {
	p := &StaticProvider{specs: make(map[string]Spec, len(specs))}
	for rawCode, spec := range specs {
		code := strings.ToUpper(strings.TrimSpace(rawCode))
		if len(code) != 2 {
			return nil, fmt.Errorf("address: invalid country code %q", rawCode)
		}
		if spec.Zip != "" {
			pattern, err := regexp.Compile(`^(?:` + spec.Zip + `)$`)
			if err != nil {
				return nil, fmt.Errorf("address: %s: zip pattern: %w", code, err)
			}
			spec.zipPattern = pattern
		}
		p.specs[code] = spec
	}
	p.countries = lo.Keys(p.specs)
	sort.Strings(p.countries)
	return p, nil
}

// LoadProvider decodes a JSON or YAML spec document.
func LoadProvider(data []byte, source string) (*StaticProvider, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("address: file %s is empty", source)
	}
	var specs map[string]Spec
	if err := json.Unmarshal(data, &specs); err != nil {
		specs = nil
		if err := yaml.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("address: parse %s: invalid JSON or YAML", source)
		}
	}
	return NewStaticProvider(specs)
}

//go:embed data/address_specs.yaml
var embeddedSpecs []byte

var (
	defaultProviderOnce sync.Once
	defaultProvider     *StaticProvider
)

// DefaultProvider returns the provider backed by the bundled address data.
func DefaultProvider() *StaticProvider {
	defaultProviderOnce.Do(func() {
		p, err := LoadProvider(embeddedSpecs, "data/address_specs.yaml")
		if err != nil {
			// The bundled document is covered by tests.
			panic(err)
		}
		defaultProvider = p
	})
	return defaultProvider
}

// Spec returns the spec of country, falling back to DefaultSpec.
func (p *StaticProvider) Spec(country string) Spec {
	if spec, ok := p.specs[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return spec
	}
	return DefaultSpec
}

// Countries implements Provider.
func (p *StaticProvider) Countries() []string {
	return append([]string(nil), p.countries...)
}

// FieldOrdering implements Provider.
func (p *StaticProvider) FieldOrdering(country string) []Kind {
	return p.Spec(country).Ordering()
}

// Constraints implements Provider.
func (p *StaticProvider) Constraints(country string, kind Kind) Constraint {
	spec := p.Spec(country)
	constraint := Constraint{Required: spec.requires(kind), Label: spec.label(kind)}
	if kind == KindPostal {
		constraint.Pattern = spec.zipPattern
	}
	return constraint
}
