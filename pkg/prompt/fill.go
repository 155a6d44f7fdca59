package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/goliatone/go-payform/pkg/address"
	"github.com/goliatone/go-payform/pkg/element"
	"github.com/goliatone/go-payform/pkg/form"
)

// Fill prompts for every element of f in order. Address sections prompt for
// the country first and then for the fields that country collects.
func Fill(ctx context.Context, driver Driver, f *form.Form) error {
	if driver == nil {
		return errors.New("prompt: driver is required")
	}
	for _, el := range f.Elements() {
		if err := fillElement(ctx, driver, el); err != nil {
			return err
		}
	}
	return nil
}

func fillElement(ctx context.Context, driver Driver, el element.Element) error {
	switch e := el.(type) {
	case *element.TextField:
		return fillText(ctx, driver, e)
	case *element.Dropdown:
		return fillDropdown(ctx, driver, e)
	case *element.StaticText:
		return driver.Info(ctx, e.Text())
	case *address.Section:
		return fillSection(ctx, driver, e)
	default:
		return fmt.Errorf("prompt: unsupported element %T", el)
	}
}

func fillText(ctx context.Context, driver Driver, field *element.TextField) error {
	value, err := driver.Input(ctx, InputConfig{
		Message: field.Label(),
		Default: field.Value(),
		Validator: func(raw string) error {
			return validateText(field, raw)
		},
	})
	if err != nil {
		return fmt.Errorf("prompt: %s: %w", field.ID(), err)
	}
	if err := validateText(field, value); err != nil {
		return fmt.Errorf("prompt: %s: %w", field.ID(), err)
	}
	field.SetValue(value)
	return nil
}

// validateText checks raw against the field's rules without keeping it.
func validateText(field *element.TextField, raw string) error {
	probe := element.NewTextField(field.Config(), raw)
	switch probe.Validation() {
	case element.Empty:
		return fmt.Errorf("%s is required", field.Label())
	case element.Invalid:
		return fmt.Errorf("%s is invalid", field.Label())
	default:
		return nil
	}
}

func fillDropdown(ctx context.Context, driver Driver, dropdown *element.Dropdown) error {
	items := dropdown.Items()
	idx, err := driver.Select(ctx, SelectConfig{
		Message: dropdown.Label(),
		Options: lo.Map(items, func(item element.Item, _ int) string {
			return item.Label
		}),
		DefaultIndex: dropdown.SelectedIndex(),
		PageSize:     10,
	})
	if err != nil {
		return fmt.Errorf("prompt: %s: %w", dropdown.ID(), err)
	}
	if err := dropdown.Select(idx); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

func fillSection(ctx context.Context, driver Driver, section *address.Section) error {
	if name, ok := section.Field(address.FieldName); ok {
		if err := fillText(ctx, driver, name); err != nil {
			return err
		}
	}
	if err := fillDropdown(ctx, driver, section.CountryDropdown()); err != nil {
		return err
	}
	// The selection above may have replaced the address fields.
	for _, el := range section.Elements() {
		field, ok := el.(*element.TextField)
		if !ok || field.ID() == string(address.FieldName) {
			continue
		}
		if err := fillText(ctx, driver, field); err != nil {
			return err
		}
	}
	return nil
}
