package wines

import (
	"regexp"
	"strconv"
)

var yearPattern = regexp.MustCompile(`(\d{2,4})`)

// twoDigitCutoff splits two-digit years between the 2000s and the 1900s:
// "21" is 2021, "99" is 1999.
const twoDigitCutoff = 30

// ParseYear extracts a vintage year from a raw vision-model year string.
// The model emits values like "2021", "21", "N/A", or "null"; anything
// without a 2-4 digit run parses to nil.
func ParseYear(raw string) *int {
	if raw == "" {
		return nil
	}
	match := yearPattern.FindString(raw)
	if match == "" {
		return nil
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	if len(match) == 2 {
		if year < twoDigitCutoff {
			year += 2000
		} else {
			year += 1900
		}
	}
	return &year
}
