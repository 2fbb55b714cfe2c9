package detector

// TimestampFormat is a known timestamp shape and the extraction pattern to
// suggest for it.
type TimestampFormat struct {
	Name     string   // Human-readable name
	Extract  string   // Suggested extraction regex with named component groups
	Examples []string // Example timestamps
}

// DefaultFormats returns the built-in timestamp formats to detect,
// ordered roughly by specificity (more specific patterns first).
func DefaultFormats() []*TimestampFormat {
	return []*TimestampFormat{
		{
			Name:     "ISO 8601 with fractional seconds",
			Extract:  `(?P<y>\d{4})-(?P<m>\d{2})-(?P<d>\d{2})[T ](?P<H>\d{2}):(?P<M>\d{2}):(?P<S>\d{2})\.(?P<f>\d{1,6})`,
			Examples: []string{"2024-01-15T10:30:00.123", "2024-01-15 10:30:00.123456"},
		},
		{
			Name:     "ISO 8601",
			Extract:  `(?P<y>\d{4})-(?P<m>\d{2})-(?P<d>\d{2})[T ](?P<H>\d{2}):(?P<M>\d{2}):(?P<S>\d{2})`,
			Examples: []string{"2024-01-15T10:30:00", "2024-01-15 10:30:00"},
		},
		{
			Name:     "nginx access log",
			Extract:  `\[(?P<d>\d{2})/(?P<b>[A-Z][a-z]{2})/(?P<y>\d{4}):(?P<H>\d{2}):(?P<M>\d{2}):(?P<S>\d{2})`,
			Examples: []string{"[15/Jan/2024:10:30:00 +0000]"},
		},
		{
			Name:     "Syslog (BSD)",
			Extract:  `^(?P<b>[A-Z][a-z]{2}) +(?P<d>\d{1,2}) (?P<H>\d{2}):(?P<M>\d{2}):(?P<S>\d{2})`,
			Examples: []string{"Jun 14 15:16:01", "Jan  5 09:30:00"},
		},
		{
			Name:     "US slash date",
			Extract:  `(?P<m>\d{1,2})/(?P<d>\d{1,2})/(?P<y>\d{2,4}) (?P<H>\d{1,2}):(?P<M>\d{2}):(?P<S>\d{2})`,
			Examples: []string{"1/15/2024 10:30:00", "01/15/24 9:30:00"},
		},
		{
			Name:     "Unix epoch seconds",
			Extract:  `(?:^|[\s=\[])(?P<s>\d{10}(?:\.\d{1,6})?)(?:$|[\s\],])`,
			Examples: []string{"1705314600", "ts=1705314600.123456"},
		},
	}
}
