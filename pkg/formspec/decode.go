package formspec

import (
	"github.com/goliatone/go-payform/pkg/localize"
)

type fieldDecoder func(node Node) (FieldSpec, error)

var fieldDecoders = map[FieldType]fieldDecoder{
	FieldTypeName:                decodeName,
	FieldTypeEmail:               baseDecoder(func(b BaseFieldSpec) FieldSpec { return EmailField{b} }),
	FieldTypeSelector:            decodeSelector,
	FieldTypeBillingAddress:      decodeBillingAddress,
	FieldTypeCountry:             decodeCountry,
	FieldTypeAffirmHeader:        static(AffirmHeaderField{}),
	FieldTypeKlarnaHeader:        static(KlarnaHeaderField{}),
	FieldTypeKlarnaCountry:       baseDecoder(func(b BaseFieldSpec) FieldSpec { return KlarnaCountryField{b} }),
	FieldTypeAUBECSBSBNumber:     baseDecoder(func(b BaseFieldSpec) FieldSpec { return AUBECSBSBNumberField{b} }),
	FieldTypeAUBECSAccountNumber: baseDecoder(func(b BaseFieldSpec) FieldSpec { return AUBECSAccountNumberField{b} }),
	FieldTypeAUBECSMandate:       static(AUBECSMandateField{}),
	FieldTypeAfterpayHeader:      static(AfterpayHeaderField{}),
	FieldTypeIBAN:                baseDecoder(func(b BaseFieldSpec) FieldSpec { return IBANField{b} }),
	FieldTypeSEPAMandate:         static(SEPAMandateField{}),
}

// KnownFieldTypes lists the discriminators with a dedicated variant.
func KnownFieldTypes() []FieldType {
	out := make([]FieldType, 0, len(fieldDecoders))
	for t := range fieldDecoders {
		out = append(out, t)
	}
	return out
}

// DecodeField decodes a single field entry. Unrecognised tags yield
// UnknownField without error; a recognised tag with a malformed payload
// returns an error wrapping ErrMalformedField.
func DecodeField(node Node) (FieldSpec, error) {
	tag, err := node.tag()
	if err != nil {
		return nil, err
	}
	decode, ok := fieldDecoders[FieldType(tag)]
	if !ok {
		return UnknownField{Tag: tag}, nil
	}
	spec, err := decode(node)
	if err != nil {
		return nil, withTag(err, tag)
	}
	return spec, nil
}

func static(spec FieldSpec) fieldDecoder {
	return func(Node) (FieldSpec, error) {
		return spec, nil
	}
}

func baseDecoder(wrap func(BaseFieldSpec) FieldSpec) fieldDecoder {
	return func(node Node) (FieldSpec, error) {
		path, err := node.apiPath()
		if err != nil {
			return nil, err
		}
		return wrap(BaseFieldSpec{APIPath: path}), nil
	}
}

func decodeName(node Node) (FieldSpec, error) {
	path, err := node.apiPath()
	if err != nil {
		return nil, err
	}
	spec := NameFieldSpec{APIPath: path}
	if node.has("translation_id") {
		label, err := decodeLabel(node)
		if err != nil {
			return nil, err
		}
		spec.Label = label
	}
	return NameField{spec}, nil
}

func decodeSelector(node Node) (FieldSpec, error) {
	if !node.has("translation_id") {
		return nil, malformed("", "translation_id", "required")
	}
	label, err := decodeLabel(node)
	if err != nil {
		return nil, err
	}
	if !node.has("items") {
		return nil, malformed("", "items", "required")
	}
	rawItems, err := node.optionalList("items")
	if err != nil {
		return nil, err
	}
	items := make([]DropdownItem, 0, len(rawItems))
	for idx, raw := range rawItems {
		entry, ok := AsNode(raw)
		if !ok {
			return nil, malformed("", "items", "entry %d: expected object, got %T", idx, raw)
		}
		raw, err := entry.optionalString("display_text")
		display := sanitizeText(raw)
		if err != nil || display == "" {
			return nil, malformed("", "items", "entry %d: display_text must be non-empty plain text", idx)
		}
		value, err := entry.optionalString("api_value")
		if err != nil {
			return nil, malformed("", "items", "entry %d: api_value must be a string", idx)
		}
		items = append(items, DropdownItem{DisplayText: display, APIValue: value})
	}
	path, err := node.apiPath()
	if err != nil {
		return nil, err
	}
	return SelectorField{SelectorSpec{Label: label, Items: items, APIPath: path}}, nil
}

func decodeBillingAddress(node Node) (FieldSpec, error) {
	countries, err := node.optionalStrings("allowed_country_codes")
	if err != nil {
		return nil, err
	}
	return BillingAddressField{BillingAddressSpec{AllowedCountries: countries}}, nil
}

func decodeCountry(node Node) (FieldSpec, error) {
	path, err := node.apiPath()
	if err != nil {
		return nil, err
	}
	countries, err := node.optionalStrings("allowed_country_codes")
	if err != nil {
		return nil, err
	}
	return CountryField{CountrySpec{APIPath: path, AllowedCountries: countries}}, nil
}

func decodeLabel(node Node) (localize.LabelID, error) {
	raw, err := node.optionalString("translation_id")
	if err != nil {
		return "", err
	}
	label, ok := localize.ParseLabelID(raw)
	if !ok {
		return "", malformed("", "translation_id", "unknown label %q", raw)
	}
	return label, nil
}
