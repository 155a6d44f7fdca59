package form

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/goliatone/go-payform/pkg/address"
	"github.com/goliatone/go-payform/pkg/element"
	"github.com/goliatone/go-payform/pkg/formspec"
	"github.com/goliatone/go-payform/pkg/localize"
)

// KlarnaCountries are offered by klarna_country fields.
var KlarnaCountries = []string{"AT", "BE", "DE", "DK", "ES", "FI", "FR", "GB", "IE", "IT", "NL", "NO", "SE", "US"}

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	bsbPattern     = regexp.MustCompile(`^\d{3}-?\d{3}$`)
	accountPattern = regexp.MustCompile(`^\d{5,9}$`)
	ibanPattern    = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`)
)

func (a *assembler) build(field formspec.FieldSpec) (element.Element, error) {
	switch f := field.(type) {
	case formspec.NameField:
		label := f.Label
		if label == "" {
			label = localize.LabelName
		}
		return a.text(string(f.Type()), label, f.APIPath, element.TextConfig{}), nil
	case formspec.EmailField:
		return a.text(string(f.Type()), localize.LabelEmail, f.APIPath, element.TextConfig{
			Pattern: emailPattern,
		}), nil
	case formspec.SelectorField:
		return a.selector(f.SelectorSpec)
	case formspec.BillingAddressField:
		return address.NewSection(
			address.WithProvider(a.provider),
			address.WithCountries(f.AllowedCountries...),
			address.WithMode(address.CollectAll()),
			address.WithDefaults(a.defaults),
			address.WithResolver(a.resolver),
			address.WithLogger(a.logger),
		)
	case formspec.CountryField:
		countries := f.AllowedCountries
		if len(countries) == 0 {
			countries = a.provider.Countries()
		}
		return a.country(string(f.Type()), f.APIPath, countries)
	case formspec.KlarnaCountryField:
		return a.country(string(f.Type()), f.APIPath, KlarnaCountries)
	case formspec.AUBECSBSBNumberField:
		return a.text(string(f.Type()), localize.LabelBSBNumber, f.APIPath, element.TextConfig{
			Pattern:   bsbPattern,
			Normalize: stripSpaces,
		}), nil
	case formspec.AUBECSAccountNumberField:
		return a.text(string(f.Type()), localize.LabelAccountNumber, f.APIPath, element.TextConfig{
			Pattern:   accountPattern,
			Normalize: stripSpaces,
		}), nil
	case formspec.IBANField:
		return a.text(string(f.Type()), localize.LabelIBAN, f.APIPath, element.TextConfig{
			Pattern:   ibanPattern,
			Normalize: func(v string) string { return strings.ToUpper(stripSpaces(v)) },
			Check:     ValidIBAN,
		}), nil
	case formspec.AffirmHeaderField:
		return element.NewStaticText(string(f.Type()), a.resolver.Label(localize.LabelAffirmHeader)), nil
	case formspec.KlarnaHeaderField:
		return element.NewStaticText(string(f.Type()), a.resolver.Label(localize.LabelKlarnaHeader)), nil
	case formspec.AfterpayHeaderField:
		return element.NewStaticText(string(f.Type()), a.resolver.Label(localize.LabelAfterpayHeader)), nil
	case formspec.AUBECSMandateField:
		return element.NewStaticText(string(f.Type()), a.resolver.Label(localize.LabelBECSMandate, a.merchantName())), nil
	case formspec.SEPAMandateField:
		return element.NewStaticText(string(f.Type()), a.resolver.Label(localize.LabelSEPAMandate, a.merchantName())), nil
	default:
		return nil, fmt.Errorf("unsupported field %T", field)
	}
}

func (a *assembler) text(id string, label localize.LabelID, path formspec.APIPath, cfg element.TextConfig) *element.TextField {
	cfg.ID = id
	cfg.Label = a.resolver.Label(label)
	cfg.APIPath, _ = path.Get(formspec.APIPathKeyV1)
	return element.NewTextField(cfg, "")
}

func (a *assembler) selector(spec formspec.SelectorSpec) (*element.Dropdown, error) {
	apiPath, _ := spec.APIPath.Get(formspec.APIPathKeyV1)
	items := lo.Map(spec.Items, func(item formspec.DropdownItem, _ int) element.Item {
		value := item.APIValue
		if value == "" {
			value = item.DisplayText
		}
		return element.Item{Label: item.DisplayText, Value: value}
	})
	return element.NewDropdown(element.DropdownConfig{
		ID:      string(formspec.FieldTypeSelector),
		Label:   a.resolver.Label(spec.Label),
		APIPath: apiPath,
		Items:   items,
	})
}

func (a *assembler) country(id string, path formspec.APIPath, codes []string) (*element.Dropdown, error) {
	apiPath, _ := path.Get(formspec.APIPathKeyV1)
	codes = lo.Uniq(lo.FilterMap(codes, func(code string, _ int) (string, bool) {
		code = strings.ToUpper(strings.TrimSpace(code))
		return code, code != ""
	}))
	sorted := a.resolver.SortCountries(codes)
	selected := lo.IndexOf(sorted, strings.ToUpper(strings.TrimSpace(a.defaults.Country)))
	return element.NewDropdown(element.DropdownConfig{
		ID:      id,
		Label:   a.resolver.Label(localize.LabelCountry),
		APIPath: apiPath,
		Items: lo.Map(sorted, func(code string, _ int) element.Item {
			return element.Item{Label: a.resolver.CountryName(code), Value: code}
		}),
		Selected: selected,
	})
}

func stripSpaces(v string) string {
	return strings.Join(strings.Fields(v), "")
}

var mod97 = big.NewInt(97)

// ValidIBAN reports whether iban passes the ISO 13616 mod-97 check. Spaces
// are ignored and letters may be lower case.
func ValidIBAN(iban string) bool {
	iban = strings.ToUpper(stripSpaces(iban))
	if len(iban) < 5 {
		return false
	}
	rearranged := iban[4:] + iban[:4]
	var digits strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			fmt.Fprintf(&digits, "%d", r-'A'+10)
		default:
			return false
		}
	}
	n, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(n, mod97).Int64() == 1
}
