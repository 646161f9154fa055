package inventory

import (
	"errors"
	"testing"
)

func TestValidateStorageLocation(t *testing.T) {
	valid := []string{"A-1-1-01", "F-9-6-99", "C-3-2-05"}
	for _, loc := range valid {
		if err := ValidateStorageLocation(loc); err != nil {
			t.Errorf("%q rejected: %v", loc, err)
		}
	}
	invalid := []string{"G-1-1-01", "A-0-1-01", "A-1-7-01", "A-1-1-00", "A-1-1-1", "a-1-1-01", "A-1-1-011", ""}
	for _, loc := range invalid {
		if err := ValidateStorageLocation(loc); !errors.Is(err, ErrInvalidStorageLocation) {
			t.Errorf("%q accepted", loc)
		}
	}
}

func TestDescribeStorageLocation(t *testing.T) {
	if got := DescribeStorageLocation("A-3-2-05"); got != "Zone A, Shelf 3, Level 2, Slot 05" {
		t.Errorf("got %q", got)
	}
	if got := DescribeStorageLocation("nonsense"); got != "nonsense" {
		t.Errorf("invalid input must pass through, got %q", got)
	}
}
