package address

import "github.com/goliatone/go-payform/pkg/element"

// Kind is a category of address sub-field requested by a provider.
type Kind uint8

const (
	// KindLine expands into line1 and line2.
	KindLine Kind = iota + 1
	KindCity
	KindState
	KindPostal
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCity:
		return "city"
	case KindState:
		return "state"
	case KindPostal:
		return "postal"
	default:
		return "unknown"
	}
}

// FieldKind identifies a concrete field of an address section. It doubles as
// the element ID.
type FieldKind string

const (
	FieldName       FieldKind = "name"
	FieldCountry    FieldKind = "country"
	FieldLine1      FieldKind = "line1"
	FieldLine2      FieldKind = "line2"
	FieldCity       FieldKind = "city"
	FieldState      FieldKind = "state"
	FieldPostalCode FieldKind = "postal_code"
)

// Fields returns the concrete fields a kind produces, in display order.
func (k Kind) Fields() []FieldKind {
	switch k {
	case KindLine:
		return []FieldKind{FieldLine1, FieldLine2}
	case KindCity:
		return []FieldKind{FieldCity}
	case KindState:
		return []FieldKind{FieldState}
	case KindPostal:
		return []FieldKind{FieldPostalCode}
	default:
		return nil
	}
}

// DefaultAPIPaths are the wire keys submitted by an address section.
var DefaultAPIPaths = map[FieldKind]string{
	FieldName:       "billing_details[name]",
	FieldCountry:    "billing_details[address][country]",
	FieldLine1:      "billing_details[address][line1]",
	FieldLine2:      "billing_details[address][line2]",
	FieldCity:       "billing_details[address][city]",
	FieldState:      "billing_details[address][state]",
	FieldPostalCode: "billing_details[address][postal_code]",
}

// AdditionalFields selects optional fields collected independently of the
// country.
type AdditionalFields uint8

const (
	// AdditionalName collects the name field.
	AdditionalName AdditionalFields = 1 << iota
)

// Has reports whether every flag in want is set.
func (f AdditionalFields) Has(want AdditionalFields) bool {
	return f&want == want
}

// Defaults seeds field values. It never decides which fields exist; empty
// values are treated as absent, so an empty string never resets a field and
// the current value is carried forward instead.
type Defaults struct {
	Name       string
	Country    string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
}

// Value returns the seed for kind.
func (d Defaults) Value(kind FieldKind) string {
	switch kind {
	case FieldName:
		return d.Name
	case FieldCountry:
		return d.Country
	case FieldLine1:
		return d.Line1
	case FieldLine2:
		return d.Line2
	case FieldCity:
		return d.City
	case FieldState:
		return d.State
	case FieldPostalCode:
		return d.PostalCode
	default:
		return ""
	}
}

func (d *Defaults) set(kind FieldKind, value string) {
	switch kind {
	case FieldName:
		d.Name = value
	case FieldCountry:
		d.Country = value
	case FieldLine1:
		d.Line1 = value
	case FieldLine2:
		d.Line2 = value
	case FieldCity:
		d.City = value
	case FieldState:
		d.State = value
	case FieldPostalCode:
		d.PostalCode = value
	}
}

func fieldIDs(fields []*element.TextField) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.ID())
	}
	return out
}
