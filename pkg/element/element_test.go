package element_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-payform/pkg/element"
)

func TestTextField_Validation(t *testing.T) {
	zip := regexp.MustCompile(`^\d{5}$`)
	cases := []struct {
		name  string
		cfg   element.TextConfig
		value string
		want  element.ValidationState
	}{
		{name: "required empty", cfg: element.TextConfig{ID: "city"}, value: "  ", want: element.Empty},
		{name: "optional empty", cfg: element.TextConfig{ID: "line2", Optional: true}, want: element.Valid},
		{name: "pattern match", cfg: element.TextConfig{ID: "postal", Pattern: zip}, value: "94107", want: element.Valid},
		{name: "pattern mismatch", cfg: element.TextConfig{ID: "postal", Pattern: zip}, value: "9410", want: element.Invalid},
		{
			name:  "normalize before pattern",
			cfg:   element.TextConfig{ID: "postal", Pattern: regexp.MustCompile(`^[A-Z]\d$`), Normalize: strings.ToUpper},
			value: "a1",
			want:  element.Valid,
		},
		{
			name:  "check failure",
			cfg:   element.TextConfig{ID: "iban", Check: func(string) bool { return false }},
			value: "DE00",
			want:  element.Invalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			field := element.NewTextField(tc.cfg, tc.value)
			if got := field.Validation(); got != tc.want {
				t.Fatalf("want %s got %s", tc.want, got)
			}
		})
	}
}

func TestTextField_Params(t *testing.T) {
	dst := map[string]string{}
	element.NewTextField(element.TextConfig{ID: "name", APIPath: "billing_details[name]"}, " Jane Diaz ").Params(dst)
	element.NewTextField(element.TextConfig{ID: "line2", APIPath: "billing_details[address][line2]"}, "").Params(dst)
	element.NewTextField(element.TextConfig{ID: "note"}, "not submitted").Params(dst)

	want := map[string]string{"billing_details[name]": "Jane Diaz"}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestDropdown_SelectNotifiesOnChangeOnly(t *testing.T) {
	dropdown, err := element.NewDropdown(element.DropdownConfig{
		ID:      "country",
		APIPath: "billing_details[address][country]",
		Items:   []element.Item{{Label: "Germany", Value: "DE"}, {Label: "United States", Value: "US"}},
	})
	if err != nil {
		t.Fatalf("new dropdown: %v", err)
	}

	var seen []string
	cancel := dropdown.OnChange(func(item element.Item) { seen = append(seen, item.Value) })

	if err := dropdown.SelectValue("US"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := dropdown.SelectValue("US"); err != nil {
		t.Fatalf("reselect: %v", err)
	}
	cancel()
	if err := dropdown.Select(0); err != nil {
		t.Fatalf("select index: %v", err)
	}

	if diff := cmp.Diff([]string{"US"}, seen); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}

	params := map[string]string{}
	dropdown.Params(params)
	if params["billing_details[address][country]"] != "DE" {
		t.Fatalf("unexpected params: %#v", params)
	}
}

func TestDropdown_Errors(t *testing.T) {
	if _, err := element.NewDropdown(element.DropdownConfig{ID: "bank"}); !errors.Is(err, element.ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
	dropdown, _ := element.NewDropdown(element.DropdownConfig{ID: "bank", Items: []element.Item{{Label: "ING", Value: "ing"}}, Selected: 9})
	if dropdown.SelectedIndex() != 0 {
		t.Fatalf("out of range selection should fall back to the first item")
	}
	if err := dropdown.SelectValue("bunq"); !errors.Is(err, element.ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if err := dropdown.Select(4); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestAllValid(t *testing.T) {
	required := element.NewTextField(element.TextConfig{ID: "city"}, "")
	elements := []element.Element{element.NewStaticText("header", "Pay later"), required}
	if element.AllValid(elements) {
		t.Fatalf("empty required field should block validity")
	}
	required.SetValue("Berlin")
	if !element.AllValid(elements) {
		t.Fatalf("expected all elements valid")
	}
}
