// Package duration parses the TIME argument: a decimal number with an
// optional unit suffix (s, m, h, d). A bare number is seconds.
package duration

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mbrock/blocksleep/internal/errs"
)

const day = 24 * time.Hour

var units = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': day,
}

// Parse converts s into a non-negative duration.
func Parse(s string) (time.Duration, error) {
	if s == "" {
		return 0, errs.New(errs.Configuration, "TIME value was empty")
	}

	unit := time.Second
	num := s
	if u, ok := units[s[len(s)-1]]; ok {
		unit = u
		num = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errs.New(errs.Configuration,
			"invalid character in TIME value. Accepted number endings are: s, m, h, d.")
	}
	if v < 0 {
		return 0, errs.New(errs.Configuration, "TIME value cannot be negative.")
	}

	nanos := v * float64(unit)
	if nanos >= math.MaxInt64 {
		return 0, errs.Errorf(errs.Configuration, "TIME value %q is too large.", s)
	}
	return time.Duration(nanos), nil
}

// Format renders d the way Parse accepts it, using the largest unit that
// divides it evenly, e.g. 2m, 1d, 90s.
func Format(d time.Duration) string {
	switch {
	case d == 0:
		return "0s"
	case d%day == 0:
		return strconv.FormatInt(int64(d/day), 10) + "d"
	case d%time.Hour == 0:
		return strconv.FormatInt(int64(d/time.Hour), 10) + "h"
	case d%time.Minute == 0:
		return strconv.FormatInt(int64(d/time.Minute), 10) + "m"
	case d%time.Second == 0:
		return strconv.FormatInt(int64(d/time.Second), 10) + "s"
	default:
		return d.String()
	}
}
