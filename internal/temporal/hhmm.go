package temporal

import (
	"strconv"
	"strings"
)

// HHMMToMinutes parses a BTS-style HHMM clock value ("1435", "935", "2400")
// into minutes since midnight. Minute values of 60 or more carry into the
// hour, and hour 24 wraps to 0, matching the quirks present in the published
// schedule data. The second return is false when the value is unparseable.
func HHMMToMinutes(value string) (int, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, false
	}
	// Values sometimes arrive as floats ("1435.0")
	if i := strings.IndexByte(v, '.'); i >= 0 {
		v = v[:i]
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}

	h := n / 100
	m := n % 100
	if m >= 60 {
		h += m / 60
		m = m % 60
	}
	if h == 24 {
		h = 0
	}
	if h > 24 {
		return 0, false
	}
	return h*60 + m, true
}
