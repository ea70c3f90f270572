package form

import (
	"strings"

	"github.com/luki/templog/internal/location"
)

// Field identifies one input of the form.
type Field int

const (
	FieldLocation Field = iota
	FieldTemperature
	FieldCheckedBy
	FieldNotes
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldLocation:
		return "Location"
	case FieldTemperature:
		return "Temperature (°F)"
	case FieldCheckedBy:
		return "Checked By"
	case FieldNotes:
		return "Notes"
	}
	return ""
}

// Form is the mutable state of the record-temperature form.
type Form struct {
	Locations   []location.Location
	Selected    int
	Temperature string
	CheckedBy   string
	Notes       string
	Focus       Field
}

// New creates a form offering locs, with the first location selected.
func New(locs []location.Location) *Form {
	return &Form{Locations: locs}
}

// SelectedLocation returns the currently selected location.
func (f *Form) SelectedLocation() (location.Location, bool) {
	if f.Selected < 0 || f.Selected >= len(f.Locations) {
		return location.Location{}, false
	}
	return f.Locations[f.Selected], true
}

// NextField moves focus forward, wrapping around.
func (f *Form) NextField() {
	f.Focus = (f.Focus + 1) % fieldCount
}

// PrevField moves focus backward, wrapping around.
func (f *Form) PrevField() {
	f.Focus = (f.Focus + fieldCount - 1) % fieldCount
}

// CycleLocation moves the selection by delta, wrapping around.
func (f *Form) CycleLocation(delta int) {
	n := len(f.Locations)
	if n == 0 {
		return
	}
	f.Selected = ((f.Selected+delta)%n + n) % n
}

// Insert appends text to the focused text field. The temperature field
// only accepts characters that can appear in a decimal number, exponent
// included.
func (f *Form) Insert(text string) {
	p := f.focused()
	if p == nil {
		return
	}
	if f.Focus == FieldTemperature {
		text = strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || strings.ContainsRune("-+.eE", r) {
				return r
			}
			return -1
		}, text)
	}
	*p += text
}

// Backspace removes the last rune of the focused text field.
func (f *Form) Backspace() {
	p := f.focused()
	if p == nil || *p == "" {
		return
	}
	r := []rune(*p)
	*p = string(r[:len(r)-1])
}

func (f *Form) focused() *string {
	switch f.Focus {
	case FieldTemperature:
		return &f.Temperature
	case FieldCheckedBy:
		return &f.CheckedBy
	case FieldNotes:
		return &f.Notes
	}
	return nil
}

// Value returns the display text of a field.
func (f *Form) Value(field Field) string {
	switch field {
	case FieldLocation:
		if l, ok := f.SelectedLocation(); ok {
			return l.Name
		}
		return ""
	case FieldTemperature:
		return f.Temperature
	case FieldCheckedBy:
		return f.CheckedBy
	case FieldNotes:
		return f.Notes
	}
	return ""
}

// Submission snapshots the form for validation.
func (f *Form) Submission() Submission {
	sub := Submission{
		Temperature: f.Temperature,
		CheckedBy:   f.CheckedBy,
		Notes:       strings.TrimRight(f.Notes, "\n"),
	}
	if l, ok := f.SelectedLocation(); ok {
		sub.LocationID = l.ID
	}
	return sub
}

// Reset clears the entered values after a successful submission. The
// selected location is kept and focus returns to the temperature field.
func (f *Form) Reset() {
	f.Temperature = ""
	f.CheckedBy = ""
	f.Notes = ""
	f.Focus = FieldTemperature
}
