package parking

import (
	"regexp"
	"strings"
)

// Brazilian plate formats: the old AAA9999 layout and the Mercosul
// AAA9A99 layout.
var (
	oldPlate      = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	mercosulPlate = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// NormalizePlate strips everything but letters and digits and uppercases
// the rest. The result is the canonical form stored in the database.
func NormalizePlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(plate) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPlate reports whether the normalized plate matches either format.
func ValidPlate(plate string) bool {
	p := NormalizePlate(plate)
	return oldPlate.MatchString(p) || mercosulPlate.MatchString(p)
}

// FormatPlate renders a plate for display. Old-format plates get the
// customary dash (ABC-1234); Mercosul plates are shown as-is.
func FormatPlate(plate string) string {
	p := NormalizePlate(plate)
	if oldPlate.MatchString(p) {
		return p[:3] + "-" + p[3:]
	}
	return p
}
