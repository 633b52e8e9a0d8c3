package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHHMMToMinutes(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"1435", 875, true},
		{"0005", 5, true},
		{"5", 5, true},
		{"935", 575, true},
		{"2400", 0, true},   // hour 24 wraps to midnight
		{"1260", 780, true}, // minute overflow carries into the hour
		{"1435.0", 875, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-5", 0, false},
		{"2500", 0, false},
	}
	for _, c := range cases {
		got, ok := HHMMToMinutes(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		if c.ok {
			assert.Equal(t, c.minutes, got, "input %q", c.in)
		}
	}
}
