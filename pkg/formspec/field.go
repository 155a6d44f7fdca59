package formspec

import (
	"html"

	"github.com/samber/lo"

	"github.com/goliatone/go-payform/pkg/localize"
)

// FieldType is the `type` discriminator of a field entry.
type FieldType string

const (
	FieldTypeName                FieldType = "name"
	FieldTypeEmail               FieldType = "email"
	FieldTypeSelector            FieldType = "selector"
	FieldTypeBillingAddress      FieldType = "billing_address"
	FieldTypeCountry             FieldType = "country"
	FieldTypeAffirmHeader        FieldType = "affirm_header"
	FieldTypeKlarnaHeader        FieldType = "klarna_header"
	FieldTypeKlarnaCountry       FieldType = "klarna_country"
	FieldTypeAUBECSBSBNumber     FieldType = "au_becs_bsb_number"
	FieldTypeAUBECSAccountNumber FieldType = "au_becs_account_number"
	FieldTypeAUBECSMandate       FieldType = "au_becs_mandate"
	FieldTypeAfterpayHeader      FieldType = "afterpay_header"
	FieldTypeIBAN                FieldType = "iban"
	FieldTypeSEPAMandate         FieldType = "sepa_mandate"
)

// APIPathKeyV1 is the semantic key used by single-value fields.
const APIPathKeyV1 = "v1"

// APIPath maps a semantic key (for example "v1" or "city") to the
// form-encoded wire key used on submission. A nil APIPath omits the field
// from submission.
type APIPath map[string]string

// Get returns the wire key for the semantic key.
func (p APIPath) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	value, ok := p[key]
	return value, ok && value != ""
}

func (p APIPath) clone() APIPath {
	if p == nil {
		return nil
	}
	out := make(APIPath, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (p APIPath) encode() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// FieldSpec is one of the declared field variants. The set is closed: only
// types in this package implement it.
type FieldSpec interface {
	// Type returns the discriminator. For UnknownField this is the raw tag.
	Type() FieldType
	encode() Node
}

// BaseFieldSpec is the payload shared by single-input fields.
type BaseFieldSpec struct {
	APIPath APIPath
}

// NameFieldSpec configures a name input. An empty Label selects the default
// name label.
type NameFieldSpec struct {
	APIPath APIPath
	Label   localize.LabelID
}

// DropdownItem is one selectable entry of a selector. APIValue is submitted
// when present; otherwise DisplayText is.
type DropdownItem struct {
	DisplayText string
	APIValue    string
}

// SelectorSpec configures a dropdown over a fixed item list.
type SelectorSpec struct {
	Label   localize.LabelID
	Items   []DropdownItem
	APIPath APIPath
}

// BillingAddressSpec configures a billing address section. An empty
// AllowedCountries accepts every country of the address provider.
type BillingAddressSpec struct {
	AllowedCountries []string
}

// CountrySpec configures a standalone country dropdown.
type CountrySpec struct {
	APIPath          APIPath
	AllowedCountries []string
}

type (
	NameField                struct{ NameFieldSpec }
	EmailField               struct{ BaseFieldSpec }
	SelectorField            struct{ SelectorSpec }
	BillingAddressField      struct{ BillingAddressSpec }
	CountryField             struct{ CountrySpec }
	AffirmHeaderField        struct{}
	KlarnaHeaderField        struct{}
	KlarnaCountryField       struct{ BaseFieldSpec }
	AUBECSBSBNumberField     struct{ BaseFieldSpec }
	AUBECSAccountNumberField struct{ BaseFieldSpec }
	AUBECSMandateField       struct{}
	AfterpayHeaderField      struct{}
	IBANField                struct{ BaseFieldSpec }
	SEPAMandateField         struct{}
)

// UnknownField preserves an unrecognised discriminator. Renderers skip it.
type UnknownField struct {
	Tag string
}

func (NameField) Type() FieldType                { return FieldTypeName }
func (EmailField) Type() FieldType               { return FieldTypeEmail }
func (SelectorField) Type() FieldType            { return FieldTypeSelector }
func (BillingAddressField) Type() FieldType      { return FieldTypeBillingAddress }
func (CountryField) Type() FieldType             { return FieldTypeCountry }
func (AffirmHeaderField) Type() FieldType        { return FieldTypeAffirmHeader }
func (KlarnaHeaderField) Type() FieldType        { return FieldTypeKlarnaHeader }
func (KlarnaCountryField) Type() FieldType       { return FieldTypeKlarnaCountry }
func (AUBECSBSBNumberField) Type() FieldType     { return FieldTypeAUBECSBSBNumber }
func (AUBECSAccountNumberField) Type() FieldType { return FieldTypeAUBECSAccountNumber }
func (AUBECSMandateField) Type() FieldType       { return FieldTypeAUBECSMandate }
func (AfterpayHeaderField) Type() FieldType      { return FieldTypeAfterpayHeader }
func (IBANField) Type() FieldType                { return FieldTypeIBAN }
func (SEPAMandateField) Type() FieldType         { return FieldTypeSEPAMandate }
func (f UnknownField) Type() FieldType           { return FieldType(f.Tag) }

func (f NameField) encode() Node {
	node := tagged(FieldTypeName)
	putAPIPath(node, f.APIPath)
	if f.Label != "" {
		node["translation_id"] = string(f.Label)
	}
	return node
}

func (f EmailField) encode() Node { return f.BaseFieldSpec.encode(FieldTypeEmail) }

func (f SelectorField) encode() Node {
	node := tagged(FieldTypeSelector)
	node["translation_id"] = string(f.Label)
	node["items"] = lo.Map(f.Items, func(item DropdownItem, _ int) any {
		// Escaped so decoding the output yields the same plain text.
		entry := map[string]any{"display_text": html.EscapeString(item.DisplayText)}
		if item.APIValue != "" {
			entry["api_value"] = item.APIValue
		}
		return entry
	})
	putAPIPath(node, f.APIPath)
	return node
}

func (f BillingAddressField) encode() Node {
	node := tagged(FieldTypeBillingAddress)
	putCountries(node, f.AllowedCountries)
	return node
}

func (f CountryField) encode() Node {
	node := tagged(FieldTypeCountry)
	putAPIPath(node, f.APIPath)
	putCountries(node, f.AllowedCountries)
	return node
}

func (AffirmHeaderField) encode() Node   { return tagged(FieldTypeAffirmHeader) }
func (KlarnaHeaderField) encode() Node   { return tagged(FieldTypeKlarnaHeader) }
func (AUBECSMandateField) encode() Node  { return tagged(FieldTypeAUBECSMandate) }
func (AfterpayHeaderField) encode() Node { return tagged(FieldTypeAfterpayHeader) }
func (SEPAMandateField) encode() Node    { return tagged(FieldTypeSEPAMandate) }
func (f UnknownField) encode() Node      { return Node{"type": f.Tag} }

func (f KlarnaCountryField) encode() Node {
	return f.BaseFieldSpec.encode(FieldTypeKlarnaCountry)
}

func (f AUBECSBSBNumberField) encode() Node {
	return f.BaseFieldSpec.encode(FieldTypeAUBECSBSBNumber)
}

func (f AUBECSAccountNumberField) encode() Node {
	return f.BaseFieldSpec.encode(FieldTypeAUBECSAccountNumber)
}

func (f IBANField) encode() Node { return f.BaseFieldSpec.encode(FieldTypeIBAN) }

func (b BaseFieldSpec) encode(t FieldType) Node {
	node := tagged(t)
	putAPIPath(node, b.APIPath)
	return node
}

// EncodeField returns the keyed representation of spec, suitable for JSON or
// YAML encoding. Decoding the result yields an equal FieldSpec.
func EncodeField(spec FieldSpec) Node {
	if spec == nil {
		return nil
	}
	return spec.encode()
}

// IsUnknown reports whether spec carries an unrecognised discriminator.
func IsUnknown(spec FieldSpec) bool {
	_, ok := spec.(UnknownField)
	return ok
}

func tagged(t FieldType) Node {
	return Node{"type": string(t)}
}

func putAPIPath(node Node, path APIPath) {
	if path != nil {
		node["api_path"] = path.encode()
	}
}

func putCountries(node Node, countries []string) {
	if countries != nil {
		node["allowed_country_codes"] = lo.Map(countries, func(code string, _ int) any { return code })
	}
}
