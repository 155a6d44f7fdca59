package localize

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLocale is used when a resolver is created without a parseable locale.
const DefaultLocale = "en"

// Translator resolves a key for the supplied locale. Implementations return an
// error (or an empty string) when no translation exists so the resolver can
// fall back to the built-in English catalog.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Catalog is a static Translator keyed by LabelID wire value. Values are
// formatted with fmt.Sprintf when args are supplied.
type Catalog map[string]string

// Translate implements Translator.
func (c Catalog) Translate(_ string, key string, args ...any) (string, error) {
	msg, ok := c[key]
	if !ok {
		return "", fmt.Errorf("localize: no translation for %q", key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...), nil
	}
	return msg, nil
}

// Resolver maps label identifiers and country codes to display strings for a
// single locale. It is safe for concurrent use.
type Resolver struct {
	locale     string
	tag        language.Tag
	translator Translator
}

// NewResolver builds a resolver for locale. A nil translator uses English.
func NewResolver(locale string, translator Translator) *Resolver {
	locale = strings.TrimSpace(locale)
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		locale = DefaultLocale
		tag = language.English
	}
	return &Resolver{locale: locale, tag: tag, translator: translator}
}

// Default returns an English resolver.
func Default() *Resolver {
	return NewResolver(DefaultLocale, nil)
}

// Locale reports the locale the resolver was built for.
func (r *Resolver) Locale() string {
	if r == nil {
		return DefaultLocale
	}
	return r.locale
}

// Label returns the display string for id. Identifiers outside the declared
// set are programming errors and panic.
func (r *Resolver) Label(id LabelID, args ...any) string {
	if r != nil && r.translator != nil {
		msg, err := r.translator.Translate(r.locale, string(id), args...)
		if err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	msg, ok := english[id]
	if !ok {
		panic(fmt.Sprintf("localize: unmapped label %q", id))
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// CountryName returns the localized display name of an ISO 3166 region
// code, or the code itself when the region is unknown.
func (r *Resolver) CountryName(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	tag := language.English
	if r != nil {
		tag = r.tag
	}
	if name := display.Regions(tag).Name(region); name != "" {
		return name
	}
	return code
}

// SortCountries returns a copy of codes ordered by their localized display
// names using the collation rules of the resolver locale.
func (r *Resolver) SortCountries(codes []string) []string {
	tag := language.English
	if r != nil {
		tag = r.tag
	}
	names := make(map[string]string, len(codes))
	for _, code := range codes {
		names[code] = r.CountryName(code)
	}

	out := append([]string(nil), codes...)
	col := collate.New(tag)
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := col.CompareString(names[out[i]], names[out[j]]); cmp != 0 {
			return cmp < 0
		}
		return out[i] < out[j]
	})
	return out
}
