package formspec_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-payform/pkg/formspec"
	"github.com/goliatone/go-payform/pkg/localize"
)

func TestLoadEmbedded(t *testing.T) {
	store, err := formspec.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}

	want := []string{
		"affirm", "afterpay_clearpay", "au_becs_debit", "bancontact", "eps",
		"ideal", "klarna", "p24", "sepa_debit", "sofort",
	}
	if diff := cmp.Diff(want, store.PaymentMethods()); diff != "" {
		t.Fatalf("payment methods mismatch (-want +got):\n%s", diff)
	}

	ideal, ok := store.FormSpec("ideal")
	if !ok {
		t.Fatalf("ideal spec missing")
	}
	if len(ideal.Fields) != 2 {
		t.Fatalf("expected 2 ideal fields, got %d", len(ideal.Fields))
	}
	selector, ok := ideal.Fields[1].(formspec.SelectorField)
	if !ok {
		t.Fatalf("expected selector, got %T", ideal.Fields[1])
	}
	if selector.Label != localize.LabelIDEALBank || selector.Items[0].APIValue != "abn_amro" {
		t.Fatalf("unexpected selector: %#v", selector)
	}

	status, ok := store.ConfirmStatus("ideal", "requires_action")
	if !ok {
		t.Fatalf("ideal should redirect on requires_action")
	}
	if _, ok := status.(formspec.RedirectToURL); !ok {
		t.Fatalf("expected redirect, got %T", status)
	}
	if _, ok := store.PostConfirmStatus("ideal", "requires_action"); !ok {
		t.Fatalf("ideal should define post confirm handling")
	}

	sepa, _ := store.FormSpec("sepa_debit")
	if !sepa.Async {
		t.Fatalf("sepa_debit should be async")
	}
}

func TestStore_MissingNextActionSpecIsDefaultFlow(t *testing.T) {
	store, err := formspec.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if _, ok := store.NextActionSpec("sepa_debit"); ok {
		t.Fatalf("sepa_debit has no next action spec")
	}
	if _, ok := store.NextActionSpec("card"); ok {
		t.Fatalf("unregistered payment method should have no next action spec")
	}
	if _, ok := store.ConfirmStatus("card", "requires_action"); ok {
		t.Fatalf("unregistered payment method should not resolve a status")
	}
	if _, ok := store.PostConfirmStatus("eps", "succeeded"); ok {
		t.Fatalf("eps declares no post confirm handling")
	}
}

func TestLoadFS_YAML(t *testing.T) {
	store, err := formspec.LoadFS(subDirFS(t, "yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	fpx, ok := store.FormSpec("fpx")
	if !ok {
		t.Fatalf("fpx missing")
	}
	want := formspec.FieldSpec(formspec.SelectorField{SelectorSpec: formspec.SelectorSpec{
		Label: localize.LabelFPXBank,
		Items: []formspec.DropdownItem{
			{DisplayText: "Maybank2U", APIValue: "maybank2u"},
			{DisplayText: "CIMB Clicks", APIValue: "cimb"},
		},
		APIPath: formspec.APIPath{"v1": "fpx[bank]"},
	}})
	if diff := cmp.Diff(want, fpx.Fields[0]); diff != "" {
		t.Fatalf("fpx selector mismatch (-want +got):\n%s", diff)
	}

	grabpay, _ := store.FormSpec("grabpay")
	if !formspec.IsUnknown(grabpay.Fields[0]) {
		t.Fatalf("expected unknown header to be preserved, got %#v", grabpay.Fields[0])
	}
	status, _ := store.ConfirmStatus("grabpay", "requires_action")
	redirect := status.(formspec.RedirectToURL)
	if redirect.URLPath != "next_action[grabpay][url]" || redirect.ReturnURLPath != formspec.DefaultRedirectReturnURLPath {
		t.Fatalf("unexpected redirect paths: %#v", redirect)
	}
}

func TestLoadFS_MalformedRecordFailsDocument(t *testing.T) {
	_, err := formspec.LoadFS(subDirFS(t, "malformed"))
	if err == nil {
		t.Fatalf("expected malformed document to fail")
	}
	if !errors.Is(err, formspec.ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField, got %v", err)
	}
}

func TestLoadFS_DuplicatePaymentMethod(t *testing.T) {
	if _, err := formspec.LoadFS(subDirFS(t, "duplicate")); err == nil {
		t.Fatalf("expected duplicate payment method error")
	}
}

func TestLoad_RejectsNonArrayAndEmpty(t *testing.T) {
	if _, err := formspec.Load([]byte(`{"type":"ideal"}`), "object.json"); err == nil {
		t.Fatalf("expected non-array document to fail")
	}
	if _, err := formspec.Load([]byte("  \n"), "empty.json"); err == nil {
		t.Fatalf("expected empty document to fail")
	}
	if _, err := formspec.Load([]byte(`[{"fields": []}]`), "untyped.json"); !errors.Is(err, formspec.ErrMissingType) {
		t.Fatalf("expected missing type error, got %v", err)
	}
}

func TestStore_MergeSkipsUnsupportedNextActions(t *testing.T) {
	base := formspec.NewStore(formspec.FormSpec{
		Type:   "ideal",
		Fields: []formspec.FieldSpec{formspec.NameField{}},
		NextActionSpec: &formspec.NextActionSpec{
			ConfirmResponseStatusSpecs: map[string]formspec.ConfirmResponseStatusSpec{
				"requires_action": formspec.RedirectToURL{URLPath: formspec.DefaultRedirectURLPath},
			},
		},
	})

	overrides, err := formspec.Load([]byte(`[
		{"type": "ideal", "fields": [], "next_action_spec": {"confirm_response_status_specs": {"requires_action": {"type": "poll_webhook"}}}},
		{"type": "bancontact", "fields": [{"type": "name"}]}
	]`), "server.json")
	if err != nil {
		t.Fatalf("load overrides: %v", err)
	}

	merged, skipped := base.Merge(overrides)
	if diff := cmp.Diff([]string{"ideal"}, skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
	ideal, _ := merged.FormSpec("ideal")
	if len(ideal.Fields) != 1 {
		t.Fatalf("expected bundled ideal spec to survive, got %#v", ideal)
	}
	if _, ok := merged.FormSpec("bancontact"); !ok {
		t.Fatalf("expected bancontact override to be applied")
	}
	if _, ok := base.FormSpec("bancontact"); ok {
		t.Fatalf("merge must not mutate the receiver")
	}
}

func TestFormSpec_JSONRoundTrip(t *testing.T) {
	store, err := formspec.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	for _, pm := range store.PaymentMethods() {
		spec, _ := store.FormSpec(pm)
		data, err := json.Marshal(spec)
		if err != nil {
			t.Fatalf("marshal %s: %v", pm, err)
		}
		var decoded formspec.FormSpec
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", pm, err)
		}
		if diff := cmp.Diff(spec, decoded); diff != "" {
			t.Fatalf("%s round trip mismatch (-want +got):\n%s", pm, diff)
		}
	}
}

func subDirFS(t *testing.T, subdir string) fs.FS {
	t.Helper()
	base := os.DirFS(testdataRoot())
	fsys, err := fs.Sub(base, subdir)
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return fsys
}

func testdataRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "testdata"
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}
