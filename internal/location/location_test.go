package location

import (
	"errors"
	"testing"

	"github.com/luki/templog/internal/status"
)

func TestDefaultsRegistry(t *testing.T) {
	reg, err := NewRegistry(Defaults())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if reg.Len() != 3 {
		t.Fatalf("Len = %d, want 3", reg.Len())
	}

	all := reg.All()
	wantNames := []string{"Walk-in Freezer", "Main Refrigerator", "Hot Food Station"}
	for i, name := range wantNames {
		if all[i].Name != name {
			t.Errorf("All()[%d].Name = %q, want %q", i, all[i].Name, name)
		}
	}

	l, err := reg.Find("3")
	if err != nil {
		t.Fatalf("Find(3): %v", err)
	}
	if l.MinTemp != 135 || l.MaxTemp != 165 || l.Type != HotHolding {
		t.Errorf("Find(3) = %+v", l)
	}
}

func TestFindUnknown(t *testing.T) {
	reg, _ := NewRegistry(Defaults())
	_, err := reg.Find("99")
	if !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("Find(99) error = %v, want ErrUnknownLocation", err)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	reg, _ := NewRegistry(Defaults())
	all := reg.All()
	all[0].Name = "changed"
	if l, _ := reg.Find("1"); l.Name != "Walk-in Freezer" {
		t.Errorf("registry mutated through All(): %q", l.Name)
	}
}

func TestNewRegistryRejects(t *testing.T) {
	tests := []struct {
		name string
		locs []Location
	}{
		{"empty", nil},
		{"no id", []Location{{Name: "A", Type: Freezer}}},
		{"no name", []Location{{ID: "1", Type: Freezer}}},
		{"bad type", []Location{{ID: "1", Name: "A", Type: "oven"}}},
		{"inverted range", []Location{{ID: "1", Name: "A", MinTemp: 5, MaxTemp: 1, Type: Freezer}}},
		{"duplicate id", []Location{
			{ID: "1", Name: "A", Type: Freezer},
			{ID: "1", Name: "B", Type: Freezer},
		}},
	}
	for _, tt := range tests {
		if _, err := NewRegistry(tt.locs); !errors.Is(err, ErrInvalidLocation) {
			t.Errorf("%s: error = %v, want ErrInvalidLocation", tt.name, err)
		}
	}
}

func TestRangeTextAndClassify(t *testing.T) {
	l := Location{ID: "1", Name: "Walk-in Freezer", MinTemp: -10, MaxTemp: 0, Type: Freezer}
	if got := l.RangeText(); got != "-10°F to 0°F" {
		t.Errorf("RangeText = %q", got)
	}
	l2 := Location{MinTemp: 33.5, MaxTemp: 40}
	if got := l2.RangeText(); got != "33.5°F to 40°F" {
		t.Errorf("RangeText = %q", got)
	}
	if l.Classify(-11) != status.Warning {
		t.Errorf("Classify(-11) = %q, want warning", l.Classify(-11))
	}
}
