package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Absent is the sentinel assigned to every metadata field whose value is
// blank, unknown, or one of the registry's missing-value markers.
const Absent = "absent"

// missingValues holds the registry sentinels treated as absent, lowercased.
var missingValues = map[string]struct{}{
	"":                  {},
	"missing":           {},
	"not collected":     {},
	"not applicable":    {},
	"not provided":      {},
	"not available":     {},
	"not determined":    {},
	"restricted access": {},
	"na":                {},
	"n/a":               {},
	"none":              {},
	"unknown":           {},
	"unspecified":       {},
	"-":                 {},
}

var titleCaser = cases.Title(language.English)

// IsMissing reports whether value is blank or a known missing-value sentinel.
func IsMissing(value string) bool {
	_, ok := missingValues[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// Year reduces a collection date to a 4-digit year. Well-formed 4-digit years
// pass through unchanged; composite dates such as "2015-06-01", "15-Jun-2015",
// or "2015/2016" yield their first 4-digit year. Anything else is Absent.
func Year(value string) string {
	value = strings.TrimSpace(value)
	if IsMissing(value) {
		return Absent
	}
	for i := 0; i+4 <= len(value); i++ {
		if !isDigit(value[i]) || !isDigit(value[i+1]) || !isDigit(value[i+2]) || !isDigit(value[i+3]) {
			continue
		}
		if i > 0 && isDigit(value[i-1]) {
			continue
		}
		if i+4 < len(value) && isDigit(value[i+4]) {
			continue
		}
		year := value[i : i+4]
		if year[0] == '1' || year[0] == '2' {
			return year
		}
	}
	return Absent
}

// Country reduces a geographic location to its leading country token. The
// registry writes locations as "Country: region, locality"; everything after
// the first ':' or ',' is dropped. Lowercase words are title-cased while
// acronyms such as "USA" are preserved.
func Country(value string) string {
	value = strings.TrimSpace(value)
	if IsMissing(value) {
		return Absent
	}
	if idx := strings.IndexAny(value, ":,"); idx >= 0 {
		value = value[:idx]
	}
	value = strings.TrimSpace(value)
	if IsMissing(value) {
		return Absent
	}
	words := strings.Fields(value)
	for i, word := range words {
		if word == strings.ToLower(word) {
			words[i] = titleCaser.String(word)
		}
	}
	return strings.Join(words, " ")
}

// Host passes a host organism through unchanged apart from whitespace
// trimming; blank and unknown values become Absent.
func Host(value string) string {
	value = strings.TrimSpace(value)
	if IsMissing(value) {
		return Absent
	}
	return value
}

// Source lowercases an isolation source so case variants of the same label
// aggregate together; blank and unknown values become Absent.
func Source(value string) string {
	value = strings.TrimSpace(value)
	if IsMissing(value) {
		return Absent
	}
	return strings.ToLower(value)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
