// Package address synthesizes the fields of a billing address section.
//
// A Provider describes, per country, which kinds of sub-field are collected
// and in which order. Synthesize filters that ordering through a
// CollectionMode and seeds each resulting field from explicit Defaults or
// from the value of the same field before the country changed. Section owns
// a country dropdown and re-runs the synthesis on every selection change:
//
//	section, err := address.NewSection(
//		address.WithCountries("US", "GB", "DE"),
//		address.WithAdditionalFields(address.AdditionalName),
//	)
//	if err != nil {
//		return err
//	}
//	_ = section.SelectCountry("GB")
//	params := map[string]string{}
//	section.Params(params)
//
// Fields removed by a country change never take part in Valid.
package address
