package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NextSequentialID returns the next ID of the form <prefix><n> zero-padded to
// three digits, one past the highest numeric suffix among existing IDs.
// IDs that do not carry the prefix or a numeric suffix are ignored, so a
// fixture mixing ID schemes still sequences correctly.
//
// Example: NextSequentialID("CLAIM", []string{"CLAIM001", "CLAIM007"})
// returns "CLAIM008".
func NextSequentialID(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		suffix, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}
