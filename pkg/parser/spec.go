package parser

import (
	"fmt"
	"regexp"
)

// Timestamp component vocabulary for named capture groups:
//
//	s  Unix epoch seconds (float, supersedes everything else)
//	y  year (1-4 digits; 2-digit values are windowed around the reference year)
//	m  numeric month 1-12
//	b  month name or unambiguous prefix ("Jan", "January", "Sept")
//	d  day of month
//	H  hour
//	M  minute
//	S  second
//	f  fractional second, 1-6 digits, right-padded to microseconds
var componentNames = map[string]bool{
	"s": true, "y": true, "m": true, "b": true,
	"d": true, "H": true, "M": true, "S": true, "f": true,
}

// componentIndexes maps each component to its subexpression index in the
// compiled pattern. Zero means the component is not declared.
type componentIndexes struct {
	s, y, m, b, d, hour, minute, second, frac int
}

// TimestampSpec is a validated pattern with exactly one of two shapes:
// named component groups, or a single positional capture whose text is handed
// to the free-text date parser. The shape is fixed at compile time, never
// re-derived per line.
type TimestampSpec struct {
	re     *regexp.Regexp
	named  bool
	groups componentIndexes
}

// CompileSpec validates a compiled regex against the component vocabulary and
// returns its timestamp extraction shape. It must be called (and succeed)
// before any line is read through the pattern.
//
// Validity rules:
//   - every named group must belong to the component vocabulary;
//   - a pattern with named groups must declare either s alone, or d plus at
//     least one of m / b;
//   - a pattern without named groups must declare at least one capture group.
func CompileSpec(re *regexp.Regexp) (*TimestampSpec, error) {
	spec := &TimestampSpec{re: re}

	for i, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		if !componentNames[name] {
			return nil, &PatternError{
				Pattern: re.String(),
				Reason:  fmt.Sprintf("unrecognized named capture group %q", name),
			}
		}
		spec.named = true
		switch name {
		case "s":
			spec.groups.s = i
		case "y":
			spec.groups.y = i
		case "m":
			spec.groups.m = i
		case "b":
			spec.groups.b = i
		case "d":
			spec.groups.d = i
		case "H":
			spec.groups.hour = i
		case "M":
			spec.groups.minute = i
		case "S":
			spec.groups.second = i
		case "f":
			spec.groups.frac = i
		}
	}

	if spec.named {
		if spec.groups.s != 0 {
			return spec, nil
		}
		if spec.groups.d == 0 || (spec.groups.m == 0 && spec.groups.b == 0) {
			return nil, &PatternError{
				Pattern: re.String(),
				Reason:  "named groups must include either s, or d plus one of m/b",
			}
		}
		return spec, nil
	}

	if re.NumSubexp() < 1 {
		return nil, &PatternError{
			Pattern: re.String(),
			Reason:  "pattern must have at least one capture group",
		}
	}
	return spec, nil
}

// Pattern returns the source text of the underlying regex.
func (s *TimestampSpec) Pattern() string {
	return s.re.String()
}

// Match applies the pattern to a line with an unanchored search and returns
// the submatches, or nil if the line does not match.
func (s *TimestampSpec) Match(line string) []string {
	return s.re.FindStringSubmatch(line)
}
