package domain

import "strings"

// Corporate suffixes stripped from registered airline names before display.
var airlineNameSuffixes = []string{
	" D/B/A", " LTD.", " LTD", " INC.", " INC", " CORP.", " CORP",
	" CO.", " CO", " S.A.", " S.A", " SA", " AG", " GMBH",
	" LLC", " PLC", " GROUP", " HOLDINGS", " ENTERPRISES",
	" PTY", " NV", " BV", " SE",
}

// CleanAirlineName strips corporate suffixes and title-cases the result.
// Short all-caps names like "KLM" or "SAS" are preserved as-is.
func CleanAirlineName(raw string) string {
	if len(raw) <= 2 {
		return raw
	}

	name := strings.ToUpper(raw)
	changed := true
	for changed {
		changed = false
		for _, suffix := range airlineNameSuffixes {
			if strings.HasSuffix(name, suffix) {
				name = strings.TrimRight(strings.TrimSuffix(name, suffix), " ")
				changed = true
			}
		}
	}

	if len(name) <= 3 {
		return name
	}

	return titleCase(name)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return strings.Join(words, " ")
}
