package element

import (
	"fmt"
)

// Item is a dropdown entry. Value is submitted, Label is displayed.
type Item struct {
	Label string
	Value string
}

// DropdownConfig configures a Dropdown.
type DropdownConfig struct {
	ID      string
	Label   string
	APIPath string
	Items   []Item
	// Selected is the initially selected index.
	Selected int
}

// ChangeFunc is notified after the selection changes.
type ChangeFunc func(selected Item)

// Dropdown is a single-selection element. It always has a selection, so it
// always validates. The dropdown holds only the change callbacks registered
// with OnChange; it never owns the component reacting to them.
type Dropdown struct {
	cfg       DropdownConfig
	selected  int
	listeners []*listener
}

type listener struct {
	fn ChangeFunc
}

// NewDropdown builds a dropdown. Out-of-range selections fall back to the
// first item.
func NewDropdown(cfg DropdownConfig) (*Dropdown, error) {
	if len(cfg.Items) == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrNoItems, cfg.ID)
	}
	cfg.Items = append([]Item(nil), cfg.Items...)
	selected := cfg.Selected
	if selected < 0 || selected >= len(cfg.Items) {
		selected = 0
	}
	return &Dropdown{cfg: cfg, selected: selected}, nil
}

func (d *Dropdown) ID() string      { return d.cfg.ID }
func (d *Dropdown) Label() string   { return d.cfg.Label }
func (d *Dropdown) APIPath() string { return d.cfg.APIPath }

// Items returns a copy of the entries.
func (d *Dropdown) Items() []Item {
	return append([]Item(nil), d.cfg.Items...)
}

// SelectedIndex returns the index of the current selection.
func (d *Dropdown) SelectedIndex() int { return d.selected }

// Selected returns the current selection.
func (d *Dropdown) Selected() Item { return d.cfg.Items[d.selected] }

// IndexOf returns the index of the item with value, or -1.
func (d *Dropdown) IndexOf(value string) int {
	for idx, item := range d.cfg.Items {
		if item.Value == value {
			return idx
		}
	}
	return -1
}

// Select changes the selection and notifies listeners when it differs from
// the current one.
func (d *Dropdown) Select(index int) error {
	if index < 0 || index >= len(d.cfg.Items) {
		return fmt.Errorf("element: %s: index %d out of range", d.cfg.ID, index)
	}
	if index == d.selected {
		return nil
	}
	d.selected = index
	item := d.cfg.Items[index]
	for _, l := range append([]*listener(nil), d.listeners...) {
		l.fn(item)
	}
	return nil
}

// SelectValue selects the item carrying value.
func (d *Dropdown) SelectValue(value string) error {
	idx := d.IndexOf(value)
	if idx < 0 {
		return fmt.Errorf("%w: %s: %q", ErrUnknownItem, d.cfg.ID, value)
	}
	return d.Select(idx)
}

// OnChange registers fn and returns a function removing it.
func (d *Dropdown) OnChange(fn ChangeFunc) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	l := &listener{fn: fn}
	d.listeners = append(d.listeners, l)
	return func() {
		for idx, existing := range d.listeners {
			if existing == l {
				d.listeners = append(d.listeners[:idx], d.listeners[idx+1:]...)
				return
			}
		}
	}
}

// Validation implements Element.
func (d *Dropdown) Validation() ValidationState { return Valid }

// Params implements Element.
func (d *Dropdown) Params(dst map[string]string) {
	if dst == nil || d.cfg.APIPath == "" {
		return
	}
	if value := d.Selected().Value; value != "" {
		dst[d.cfg.APIPath] = value
	}
}
