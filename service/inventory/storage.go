package inventory

import (
	"fmt"
	"regexp"
	"strings"
)

// Storage locations follow zone-shelf-level-slot coordinates, e.g.
// "A-3-2-05": zones A-F, shelves 1-9, levels 1-6, slots 01-99.
var storageLocationRe = regexp.MustCompile(`^[A-F]-[1-9]-[1-6]-(0[1-9]|[1-9][0-9])$`)

func ValidateStorageLocation(loc string) error {
	if !storageLocationRe.MatchString(loc) {
		return fmt.Errorf("%w: %q does not match zone-shelf-level-slot (e.g. A-3-2-05)", ErrInvalidStorageLocation, loc)
	}
	return nil
}

// DescribeStorageLocation expands a coordinate into a readable label.
// Invalid input comes back unchanged.
func DescribeStorageLocation(loc string) string {
	if !storageLocationRe.MatchString(loc) {
		return loc
	}
	parts := strings.SplitN(loc, "-", 4)
	return fmt.Sprintf("Zone %s, Shelf %s, Level %s, Slot %s", parts[0], parts[1], parts[2], parts[3])
}
