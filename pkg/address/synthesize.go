package address

import (
	"strings"

	"github.com/goliatone/go-payform/pkg/element"
	"github.com/goliatone/go-payform/pkg/localize"
)

// SynthesisRequest holds the inputs of Synthesize.
type SynthesisRequest struct {
	Country  string
	Mode     CollectionMode
	Provider Provider
	// Prior, when set, seeds values explicitly. Empty entries fall back to
	// Current.
	Prior *Defaults
	// Current holds the live values of the fields present before this
	// synthesis, keyed by field kind.
	Current  map[FieldKind]string
	Resolver *localize.Resolver
	// APIPaths overrides DefaultAPIPaths.
	APIPaths map[FieldKind]string
}

// Synthesize derives the ordered address fields (without name and country)
// for a country. It is total: a country without collected kinds yields no
// fields.
func Synthesize(req SynthesisRequest) []*element.TextField {
	if req.Provider == nil {
		return nil
	}
	resolver := req.Resolver
	if resolver == nil {
		resolver = localize.Default()
	}
	country := normalizeCountry(req.Country)

	kinds := req.Mode.Filter(country, req.Provider.FieldOrdering(country))
	fields := make([]*element.TextField, 0, len(kinds)+1)
	seen := make(map[FieldKind]struct{}, len(kinds)+1)

	for _, kind := range kinds {
		constraint := req.Provider.Constraints(country, kind)
		if kind == KindPostal && req.Mode.PostalOnly() {
			constraint.Required = true
		}
		for _, fieldKind := range kind.Fields() {
			if _, dup := seen[fieldKind]; dup {
				continue
			}
			seen[fieldKind] = struct{}{}
			cfg := fieldConfig(fieldKind, constraint, resolver, apiPath(req.APIPaths, fieldKind))
			fields = append(fields, element.NewTextField(cfg, seed(req, fieldKind)))
		}
	}
	return fields
}

func seed(req SynthesisRequest, kind FieldKind) string {
	if req.Prior != nil {
		if value := req.Prior.Value(kind); value != "" {
			return value
		}
	}
	return req.Current[kind]
}

func apiPath(overrides map[FieldKind]string, kind FieldKind) string {
	if path, ok := overrides[kind]; ok {
		return path
	}
	return DefaultAPIPaths[kind]
}

func fieldConfig(kind FieldKind, constraint Constraint, resolver *localize.Resolver, path string) element.TextConfig {
	cfg := element.TextConfig{
		ID:       string(kind),
		APIPath:  path,
		Optional: !constraint.Required,
	}
	switch kind {
	case FieldLine1:
		cfg.Label = resolver.Label(localize.LabelLine1)
	case FieldLine2:
		cfg.Label = resolver.Label(localize.LabelLine2)
		cfg.Optional = true
	case FieldPostalCode:
		cfg.Label = resolver.Label(labelOr(constraint.Label, localize.LabelPostalCode))
		cfg.Pattern = constraint.Pattern
		cfg.Normalize = strings.ToUpper
	case FieldCity:
		cfg.Label = resolver.Label(labelOr(constraint.Label, localize.LabelCity))
	case FieldState:
		cfg.Label = resolver.Label(labelOr(constraint.Label, localize.LabelState))
	}
	return cfg
}

func labelOr(id, fallback localize.LabelID) localize.LabelID {
	if id == "" {
		return fallback
	}
	return id
}
