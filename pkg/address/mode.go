package address

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// CollectionMode decides which provider kinds a section collects. The zero
// value collects everything.
type CollectionMode struct {
	postalOnly      bool
	postalCountries map[string]struct{}
}

// CollectAll collects every kind the provider returns for the country.
func CollectAll() CollectionMode {
	return CollectionMode{}
}

// CollectCountryAndPostal collects the country always and the postal code
// only for the listed countries. Street lines, city and state are dropped.
func CollectCountryAndPostal(requiredPostalCountries ...string) CollectionMode {
	set := make(map[string]struct{}, len(requiredPostalCountries))
	for _, code := range requiredPostalCountries {
		set[normalizeCountry(code)] = struct{}{}
	}
	return CollectionMode{postalOnly: true, postalCountries: set}
}

// PostalOnly reports whether the mode is country-and-postal.
func (m CollectionMode) PostalOnly() bool { return m.postalOnly }

// PostalCountries returns the sorted countries requiring a postal code.
func (m CollectionMode) PostalCountries() []string {
	out := lo.Keys(m.postalCountries)
	sort.Strings(out)
	return out
}

// Filter keeps the kinds collected for country, preserving order.
func (m CollectionMode) Filter(country string, kinds []Kind) []Kind {
	if !m.postalOnly {
		return append([]Kind(nil), kinds...)
	}
	if _, ok := m.postalCountries[normalizeCountry(country)]; !ok {
		return nil
	}
	return lo.Filter(kinds, func(kind Kind, _ int) bool {
		return kind == KindPostal
	})
}

func (m CollectionMode) String() string {
	if !m.postalOnly {
		return "all"
	}
	return "country_and_postal(" + strings.Join(m.PostalCountries(), ",") + ")"
}

func normalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
