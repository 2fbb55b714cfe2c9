package cli

import (
	"fmt"
	"strings"
)

// runSpec is the parsed form of an interleave invocation.
type runSpec struct {
	// groups holds one entry per extraction pattern, in command-line order.
	// Files given before any -r form a leading group with an empty pattern
	// (the built-in default).
	groups []sourceGroup

	configPath string
	format     string
	verbose    bool
	help       bool
}

// sourceGroup pairs one pattern with the files that follow it.
type sourceGroup struct {
	pattern string // empty means parser.DefaultPattern
	files   []string
}

// parseRunArgs groups raw command-line tokens. Grouping is order-sensitive
// (-r applies to the files after it), which rules out ordinary flag parsing:
// pflag records values but discards their position relative to positionals.
func parseRunArgs(tokens []string) (*runSpec, error) {
	spec := &runSpec{}

	var defaultFiles []string
	var current *sourceGroup
	literal := false

	value := func(i int, flag string) (string, error) {
		if i+1 >= len(tokens) {
			return "", fmt.Errorf("flag %s requires a value", flag)
		}
		return tokens[i+1], nil
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if literal || tok == "-" || !strings.HasPrefix(tok, "-") {
			if current != nil {
				current.files = append(current.files, tok)
			} else {
				defaultFiles = append(defaultFiles, tok)
			}
			continue
		}

		switch tok {
		case "--":
			literal = true
		case "-r", "--regex":
			v, err := value(i, tok)
			if err != nil {
				return nil, err
			}
			i++
			spec.groups = append(spec.groups, sourceGroup{pattern: v})
			current = &spec.groups[len(spec.groups)-1]
		case "-c", "--config":
			v, err := value(i, tok)
			if err != nil {
				return nil, err
			}
			i++
			spec.configPath = v
		case "-o", "--output":
			v, err := value(i, tok)
			if err != nil {
				return nil, err
			}
			i++
			spec.format = v
		case "-v", "--verbose":
			spec.verbose = true
		case "-h", "--help":
			spec.help = true
		default:
			return nil, fmt.Errorf("unknown flag: %s", tok)
		}
	}

	for _, g := range spec.groups {
		if len(g.files) == 0 {
			return nil, fmt.Errorf("-r %q: at least one file must follow the regex", g.pattern)
		}
	}

	// Unlabelled files form a leading group using the default pattern.
	if len(defaultFiles) > 0 {
		spec.groups = append([]sourceGroup{{files: defaultFiles}}, spec.groups...)
	}

	return spec, nil
}
