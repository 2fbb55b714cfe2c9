package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// Resolver maps a successful pattern match to a single absolute instant.
//
// Missing fields (year, hour, timezone, ...) default from a fixed reference
// instant supplied at construction time and never re-sampled, so ordering is
// deterministic within one run and tests can inject an arbitrary "now".
type Resolver struct {
	ref    time.Time
	loc    *time.Location
	months map[string]time.Month
	free   *dateparser.Configuration
}

// NewResolver creates a Resolver around the given reference instant. The
// instant's location becomes the zone for component-built timestamps.
func NewResolver(ref time.Time) *Resolver {
	return &Resolver{
		ref:    ref,
		loc:    ref.Location(),
		months: make(map[string]time.Month),
		free: &dateparser.Configuration{
			CurrentTime:     ref,
			DefaultTimezone: ref.Location(),
		},
	}
}

// Reference returns the resolver's reference instant.
func (r *Resolver) Reference() time.Time {
	return r.ref
}

// Resolve turns one match (as returned by TimestampSpec.Match) into an
// instant. source and line are carried only for error reporting.
//
// Resolution order: the epoch component s wins outright; otherwise the date
// is built from components; patterns without named groups hand their single
// capture to a general free-text date parser seeded with the reference
// instant.
func (r *Resolver) Resolve(spec *TimestampSpec, match []string, source, line string) (time.Time, error) {
	if !spec.named {
		return r.resolveRaw(spec, match, source, line)
	}
	if v := capture(match, spec.groups.s); v != "" {
		return r.resolveEpoch(spec, v, source, line)
	}
	return r.resolveComponents(spec, match, source, line)
}

func (r *Resolver) resolveEpoch(spec *TimestampSpec, v, source, line string) (time.Time, error) {
	seconds, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return time.Time{}, &ValueError{
			Field: "s", Value: v, Pattern: spec.Pattern(), Source: source, Line: line,
			Reason: "not a unix timestamp",
		}
	}
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC(), nil
}

func (r *Resolver) resolveComponents(spec *TimestampSpec, match []string, source, line string) (time.Time, error) {
	fail := func(field, value, reason string) (time.Time, error) {
		return time.Time{}, &ValueError{
			Field: field, Value: value, Pattern: spec.Pattern(),
			Source: source, Line: line, Reason: reason,
		}
	}

	var month int
	if v := capture(match, spec.groups.m); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fail("m", v, "not an integer month")
		}
		month = n
	} else if v := capture(match, spec.groups.b); v != "" {
		m, ok := r.monthFromPrefix(v)
		if !ok {
			return fail("b", v, "not a month name")
		}
		month = int(m)
	} else {
		return fail("m", "", "missing month capture")
	}

	year := r.ref.Year()
	if v := capture(match, spec.groups.y); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fail("y", v, "not an integer year")
		}
		if n < 100 {
			n = r.windowYear(n)
		}
		year = n
	}

	dayText := capture(match, spec.groups.d)
	if dayText == "" {
		return fail("d", "", "missing day capture")
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return fail("d", dayText, "not an integer day")
	}

	var hour, minute, second int
	for _, c := range []struct {
		name string
		idx  int
		dst  *int
	}{
		{"H", spec.groups.hour, &hour},
		{"M", spec.groups.minute, &minute},
		{"S", spec.groups.second, &second},
	} {
		v := capture(match, c.idx)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fail(c.name, v, "not an integer")
		}
		*c.dst = n
	}

	var micros int
	if v := capture(match, spec.groups.frac); v != "" {
		padded := strings.TrimSpace(v)
		for len(padded) < 6 {
			padded += "0"
		}
		n, err := strconv.Atoi(padded)
		if err != nil || len(padded) > 6 {
			return fail("f", v, "not a fractional second")
		}
		micros = n
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, micros*1000, r.loc)
	// time.Date normalizes out-of-range values (day 32 rolls into the next
	// month), which would silently misplace the line. Round-trip instead.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return fail("timestamp", spec.re.FindString(line), "date values out of range")
	}
	return t, nil
}

func (r *Resolver) resolveRaw(spec *TimestampSpec, match []string, source, line string) (time.Time, error) {
	text := capture(match, 1)
	if text == "" {
		return time.Time{}, &ValueError{
			Field: "timestamp", Value: "", Pattern: spec.Pattern(),
			Source: source, Line: line, Reason: "unmatched or empty capture group",
		}
	}
	dt, err := dateparser.Parse(r.free, text)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, &ValueError{
			Field: "timestamp", Value: text, Pattern: spec.Pattern(),
			Source: source, Line: line, Reason: "unparseable date string",
		}
	}
	return dt.Time, nil
}

// windowYear maps a two-digit year into the century closest to the reference,
// with a 10-year allowance into the future: with a reference year of 2025,
// "31" resolves to 2031 but "97" falls back to 1997.
func (r *Resolver) windowYear(y int) int {
	if y <= r.ref.Year()%100+10 {
		return y + 2000
	}
	return y + 1900
}

// monthFromPrefix resolves a month name or prefix, case-insensitively, to the
// first month whose full English name starts with it. Lookups are cached by
// the first 9 characters of the input (the longest month name), so callers
// may pass arbitrary trailing junk without growing the cache unboundedly.
func (r *Resolver) monthFromPrefix(val string) (time.Month, bool) {
	if val == "" {
		return 0, false
	}
	key := val
	if len(key) > 9 {
		key = key[:9]
	}
	if m, ok := r.months[key]; ok {
		return m, true
	}
	prefix := strings.ToLower(val)
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), prefix) {
			r.months[key] = m
			return m, true
		}
	}
	return 0, false
}

// capture returns the submatch at idx, or "" when the group is undeclared
// (idx 0) or did not participate in the match.
func capture(match []string, idx int) string {
	if idx <= 0 || idx >= len(match) {
		return ""
	}
	return match[idx]
}
