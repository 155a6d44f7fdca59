package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-payform"
	"github.com/goliatone/go-payform/internal/logger"
	"github.com/goliatone/go-payform/pkg/address"
	"github.com/goliatone/go-payform/pkg/element"
	"github.com/goliatone/go-payform/pkg/form"
	"github.com/goliatone/go-payform/pkg/formspec"
	"github.com/goliatone/go-payform/pkg/localize"
	"github.com/goliatone/go-payform/pkg/prompt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "payform: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	specs       string
	method      string
	country     string
	locale      string
	merchant    string
	logLevel    string
	interactive bool
	list        bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("payform", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.specs, "specs", "", "form spec file or directory merged over the bundled specs")
	fs.StringVar(&opts.method, "method", "sepa_debit", "payment method to assemble")
	fs.StringVar(&opts.country, "country", "", "initial billing country")
	fs.StringVar(&opts.locale, "locale", localize.DefaultLocale, "locale used for country names and sorting")
	fs.StringVar(&opts.merchant, "merchant", "", "merchant name shown in mandates")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for every field")
	fs.BoolVar(&opts.list, "list", false, "list available payment methods and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// run executes the CLI. A nil driver selects the survey terminal driver.
// Asking for help is not an error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver prompt.Driver) error {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	log := logger.SetupWriter(stderr, logger.ParseLevel(opts.logLevel))

	store, err := loadStore(opts.specs, log)
	if err != nil {
		return err
	}
	if opts.list {
		for _, method := range store.PaymentMethods() {
			fmt.Fprintln(stdout, method)
		}
		return nil
	}

	f, err := payform.AssembleFrom(store, opts.method,
		form.WithResolver(localize.NewResolver(opts.locale, nil)),
		form.WithMerchantName(opts.merchant),
		form.WithDefaults(address.Defaults{Country: opts.country}),
		form.WithLogger(log),
	)
	if err != nil {
		return err
	}

	if opts.interactive {
		if driver == nil {
			driver = prompt.NewSurveyDriver()
		}
		if err := prompt.Fill(ctx, driver, f); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(describe(f))
}

func loadStore(path string, log *slog.Logger) (*formspec.Store, error) {
	store, err := formspec.LoadEmbedded()
	if err != nil {
		return nil, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return store, nil
	}

	overrides, err := readOverrides(path)
	if err != nil {
		return nil, err
	}
	merged, skipped := store.Merge(overrides)
	for _, method := range skipped {
		log.Warn("payform: kept bundled spec, override has unsupported next action",
			slog.String("payment_method", method))
	}
	return merged, nil
}

func readOverrides(path string) ([]formspec.FormSpec, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return formspec.Load(data, path)
	}
	loaded, err := formspec.LoadFS(os.DirFS(path))
	if err != nil {
		return nil, err
	}
	out := make([]formspec.FormSpec, 0, len(loaded.PaymentMethods()))
	for _, method := range loaded.PaymentMethods() {
		spec, _ := loaded.FormSpec(method)
		out = append(out, spec)
	}
	return out, nil
}

type elementView struct {
	ID       string        `json:"id"`
	Kind     string        `json:"kind"`
	Label    string        `json:"label,omitempty"`
	Text     string        `json:"text,omitempty"`
	Value    string        `json:"value,omitempty"`
	Optional bool          `json:"optional,omitempty"`
	State    string        `json:"state"`
	Options  []string      `json:"options,omitempty"`
	Fields   []elementView `json:"fields,omitempty"`
}

type formView struct {
	PaymentMethod string            `json:"payment_method"`
	Async         bool              `json:"async"`
	Valid         bool              `json:"valid"`
	Elements      []elementView     `json:"elements"`
	Skipped       []string          `json:"skipped,omitempty"`
	Params        map[string]string `json:"params"`
	NextAction    formspec.Node     `json:"next_action_spec,omitempty"`
}

func describe(f *form.Form) formView {
	view := formView{
		PaymentMethod: f.PaymentMethod(),
		Async:         f.Async(),
		Valid:         f.Valid(),
		Skipped:       f.Skipped(),
		Params:        f.Params(),
	}
	if next := f.NextAction(); next != nil {
		view.NextAction = formspec.EncodeNextActionSpec(next)
	}
	for _, el := range f.Elements() {
		view.Elements = append(view.Elements, describeElement(el))
	}
	return view
}

func describeElement(el element.Element) elementView {
	view := elementView{ID: el.ID(), State: el.Validation().String()}
	switch e := el.(type) {
	case *element.TextField:
		view.Kind = "text"
		view.Label = e.Label()
		view.Value = e.Normalized()
		view.Optional = e.Optional()
	case *element.Dropdown:
		view.Kind = "dropdown"
		view.Label = e.Label()
		view.Value = e.Selected().Value
		for _, item := range e.Items() {
			view.Options = append(view.Options, item.Value)
		}
	case *element.StaticText:
		view.Kind = "static"
		view.Text = e.Text()
	case *address.Section:
		view.Kind = "address"
		for _, child := range e.Elements() {
			view.Fields = append(view.Fields, describeElement(child))
		}
	}
	return view
}
