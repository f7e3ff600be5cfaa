package artset

import (
	"strconv"
	"strings"
)

// Default policies applied per field when a document omits a value. Each is a
// named function so the fallback behavior stays auditable in isolation.

// defaultColor cycles the fixed palette so even malformed sets render with
// visually distinct buttons.
func defaultColor(index int) int {
	return index % PaletteSize
}

// defaultName numbers articulations from 1 as performers count them.
func defaultName(index int) string {
	return "Articulation " + strconv.Itoa(index+1)
}

// defaultShortName upper-cases the first four characters of the resolved name.
func defaultShortName(name string) string {
	runes := []rune(name)
	if len(runes) > 4 {
		runes = runes[:4]
	}
	return strings.ToUpper(string(runes))
}
