package fields

import "regexp"

// namedPattern is one step of an ordered fallback chain.
type namedPattern struct {
	name string
	re   *regexp.Regexp
}

func chain(pairs ...string) []namedPattern {
	out := make([]namedPattern, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, namedPattern{name: pairs[i], re: regexp.MustCompile(pairs[i+1])})
	}
	return out
}

// firstSubmatch returns group 1 of the first pattern in the chain that matches.
func firstSubmatch(patterns []namedPattern, text string) (string, string, bool) {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return m[1], p.name, true
		}
	}
	return "", "", false
}
