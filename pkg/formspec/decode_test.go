package formspec_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-payform/pkg/formspec"
	"github.com/goliatone/go-payform/pkg/localize"
)

func TestDecodeField_KnownTags(t *testing.T) {
	v1 := func(path string) formspec.APIPath { return formspec.APIPath{"v1": path} }

	cases := []struct {
		name string
		node formspec.Node
		want formspec.FieldSpec
	}{
		{
			name: "name without label",
			node: formspec.Node{"type": "name", "api_path": map[string]any{"v1": "billing_details[name]"}},
			want: formspec.NameField{NameFieldSpec: formspec.NameFieldSpec{APIPath: v1("billing_details[name]")}},
		},
		{
			name: "name with label",
			node: formspec.Node{"type": "name", "translation_id": "upe.labels.name.onAccount"},
			want: formspec.NameField{NameFieldSpec: formspec.NameFieldSpec{Label: localize.LabelNameOnAccount}},
		},
		{
			name: "email",
			node: formspec.Node{"type": "email", "api_path": map[string]any{"v1": "billing_details[email]"}},
			want: formspec.EmailField{BaseFieldSpec: formspec.BaseFieldSpec{APIPath: v1("billing_details[email]")}},
		},
		{
			name: "selector",
			node: formspec.Node{
				"type":           "selector",
				"translation_id": "upe.labels.ideal.bank",
				"items": []any{
					map[string]any{"display_text": "ABN AMRO", "api_value": "abn_amro"},
					map[string]any{"display_text": "Other"},
				},
				"api_path": map[string]any{"v1": "ideal[bank]"},
			},
			want: formspec.SelectorField{SelectorSpec: formspec.SelectorSpec{
				Label: localize.LabelIDEALBank,
				Items: []formspec.DropdownItem{
					{DisplayText: "ABN AMRO", APIValue: "abn_amro"},
					{DisplayText: "Other"},
				},
				APIPath: v1("ideal[bank]"),
			}},
		},
		{
			name: "billing address",
			node: formspec.Node{"type": "billing_address", "allowed_country_codes": []any{"US", "CA"}},
			want: formspec.BillingAddressField{BillingAddressSpec: formspec.BillingAddressSpec{AllowedCountries: []string{"US", "CA"}}},
		},
		{
			name: "country",
			node: formspec.Node{"type": "country", "api_path": map[string]any{"v1": "sofort[country]"}, "allowed_country_codes": []any{"DE"}},
			want: formspec.CountryField{CountrySpec: formspec.CountrySpec{APIPath: v1("sofort[country]"), AllowedCountries: []string{"DE"}}},
		},
		{name: "affirm header", node: formspec.Node{"type": "affirm_header"}, want: formspec.AffirmHeaderField{}},
		{name: "klarna header", node: formspec.Node{"type": "klarna_header"}, want: formspec.KlarnaHeaderField{}},
		{
			name: "klarna country",
			node: formspec.Node{"type": "klarna_country", "api_path": map[string]any{"v1": "billing_details[address][country]"}},
			want: formspec.KlarnaCountryField{BaseFieldSpec: formspec.BaseFieldSpec{APIPath: v1("billing_details[address][country]")}},
		},
		{
			name: "becs bsb",
			node: formspec.Node{"type": "au_becs_bsb_number", "api_path": map[string]any{"v1": "au_becs_debit[bsb_number]"}},
			want: formspec.AUBECSBSBNumberField{BaseFieldSpec: formspec.BaseFieldSpec{APIPath: v1("au_becs_debit[bsb_number]")}},
		},
		{
			name: "becs account",
			node: formspec.Node{"type": "au_becs_account_number"},
			want: formspec.AUBECSAccountNumberField{},
		},
		{name: "becs mandate", node: formspec.Node{"type": "au_becs_mandate"}, want: formspec.AUBECSMandateField{}},
		{name: "afterpay header", node: formspec.Node{"type": "afterpay_header"}, want: formspec.AfterpayHeaderField{}},
		{
			name: "iban",
			node: formspec.Node{"type": "iban", "api_path": map[string]any{"v1": "sepa_debit[iban]"}},
			want: formspec.IBANField{BaseFieldSpec: formspec.BaseFieldSpec{APIPath: v1("sepa_debit[iban]")}},
		},
		{name: "sepa mandate", node: formspec.Node{"type": "sepa_mandate"}, want: formspec.SEPAMandateField{}},
	}

	covered := make(map[formspec.FieldType]bool)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := formspec.DecodeField(tc.node)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("decoded field mismatch (-want +got):\n%s", diff)
			}
		})
		covered[tc.want.Type()] = true
	}

	for _, known := range formspec.KnownFieldTypes() {
		if !covered[known] {
			t.Fatalf("known field type %q has no decode case", known)
		}
	}
}

func TestDecodeField_UnknownTagIsNotAnError(t *testing.T) {
	got, err := formspec.DecodeField(formspec.Node{"type": "boleto_tax_id", "api_path": 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(formspec.FieldSpec(formspec.UnknownField{Tag: "boleto_tax_id"}), got); diff != "" {
		t.Fatalf("unknown field mismatch (-want +got):\n%s", diff)
	}
	if !formspec.IsUnknown(got) || got.Type() != "boleto_tax_id" {
		t.Fatalf("expected unknown variant carrying raw tag, got %#v", got)
	}
}

func TestDecodeField_MalformedKnownTags(t *testing.T) {
	cases := map[string]formspec.Node{
		"selector without items":       {"type": "selector", "translation_id": "upe.labels.ideal.bank"},
		"selector without label":       {"type": "selector", "items": []any{}},
		"selector unknown label":       {"type": "selector", "translation_id": "upe.labels.nope", "items": []any{}},
		"selector item not object":     {"type": "selector", "translation_id": "upe.labels.eps.bank", "items": []any{"x"}},
		"selector item without text":   {"type": "selector", "translation_id": "upe.labels.eps.bank", "items": []any{map[string]any{"api_value": "x"}}},
		"selector item markup only":    {"type": "selector", "translation_id": "upe.labels.eps.bank", "items": []any{map[string]any{"display_text": "<b></b>", "api_value": "x"}}},
		"api path wrong shape":         {"type": "email", "api_path": "billing_details[email]"},
		"api path entry wrong shape":   {"type": "iban", "api_path": map[string]any{"v1": 7}},
		"name label wrong shape":       {"type": "name", "translation_id": true},
		"allowed countries not array":  {"type": "billing_address", "allowed_country_codes": "US"},
		"allowed countries bad entry":  {"type": "country", "allowed_country_codes": []any{"US", 1}},
		"missing type discriminator":   {"api_path": map[string]any{}},
		"non string type discriminant": {"type": 12},
	}

	for name, node := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := formspec.DecodeField(node)
			if err == nil {
				t.Fatalf("expected decode error")
			}
			if !errors.Is(err, formspec.ErrMalformedField) {
				t.Fatalf("expected ErrMalformedField, got %v", err)
			}
			var decodeErr *formspec.DecodeError
			if !errors.As(err, &decodeErr) || decodeErr.Key == "" {
				t.Fatalf("expected DecodeError naming the key, got %#v", err)
			}
		})
	}
}

func TestDecodeField_MissingTypeMatchesSentinel(t *testing.T) {
	_, err := formspec.DecodeField(formspec.Node{})
	if !errors.Is(err, formspec.ErrMissingType) {
		t.Fatalf("expected ErrMissingType, got %v", err)
	}
}

func TestDecodeField_SanitizesDisplayText(t *testing.T) {
	got, err := formspec.DecodeField(formspec.Node{
		"type":           "selector",
		"translation_id": "upe.labels.fpx.bank",
		"items":          []any{map[string]any{"display_text": "<b>Maybank</b> & Co"}},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	selector := got.(formspec.SelectorField)
	if selector.Items[0].DisplayText != "Maybank & Co" {
		t.Fatalf("expected markup stripped, got %q", selector.Items[0].DisplayText)
	}
}

func TestEncodeField_RoundTrip(t *testing.T) {
	nodes := []formspec.Node{
		{"type": "name", "api_path": map[string]any{"v1": "billing_details[name]"}, "translation_id": "upe.labels.name.onAccount"},
		{"type": "email"},
		{"type": "selector", "translation_id": "upe.labels.p24.bank", "items": []any{map[string]any{"display_text": "BLIK", "api_value": "blik"}}},
		{"type": "billing_address", "allowed_country_codes": []any{"GB"}},
		{"type": "country", "api_path": map[string]any{"v1": "sofort[country]"}},
		{"type": "klarna_header"},
		{"type": "iban", "api_path": map[string]any{"v1": "sepa_debit[iban]"}},
		{"type": "sepa_mandate"},
		{"type": "not_yet_invented"},
	}

	for _, node := range nodes {
		decoded, err := formspec.DecodeField(node)
		if err != nil {
			t.Fatalf("decode %v: %v", node["type"], err)
		}
		encoded := formspec.EncodeField(decoded)
		if encoded["type"] != node["type"] {
			t.Fatalf("discriminator changed: want %v got %v", node["type"], encoded["type"])
		}
		again, err := formspec.DecodeField(encoded)
		if err != nil {
			t.Fatalf("re-decode %v: %v", node["type"], err)
		}
		if diff := cmp.Diff(decoded, again); diff != "" {
			t.Fatalf("round trip mismatch for %v (-want +got):\n%s", node["type"], diff)
		}
	}
}

func TestDecodeField_EscapedDisplayTextSurvivesReencoding(t *testing.T) {
	node := formspec.Node{
		"type":           "selector",
		"translation_id": "upe.labels.ideal.bank",
		"items":          []any{map[string]any{"display_text": "&lt;ING&gt; & Co", "api_value": "ing"}},
	}
	decoded, err := formspec.DecodeField(node)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := decoded.(formspec.SelectorField).Items[0].DisplayText; got != "<ING> & Co" {
		t.Fatalf("expected entities decoded once, got %q", got)
	}

	again, err := formspec.DecodeField(formspec.EncodeField(decoded))
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if diff := cmp.Diff(decoded, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeField_TagMatchedExactly(t *testing.T) {
	got, err := formspec.DecodeField(formspec.Node{"type": " iban "})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(formspec.FieldSpec(formspec.UnknownField{Tag: " iban "}), got); diff != "" {
		t.Fatalf("padded tag mismatch (-want +got):\n%s", diff)
	}

	if _, err := formspec.DecodeField(formspec.Node{"type": "   "}); !errors.Is(err, formspec.ErrMissingType) {
		t.Fatalf("expected blank tag to be missing, got %v", err)
	}
}
