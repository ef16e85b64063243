// Package phone extracts a dialable WhatsApp number from free-text sheet cells.
package phone

import (
	"regexp"
	"strings"
)

// CountryCode is prepended to numbers that do not already carry it.
const CountryCode = "55"

const (
	minDigits = 10
	maxDigits = 13
)

var (
	digitRuns = regexp.MustCompile(`[0-9]+`)
	stripper  = strings.NewReplacer("-", "", "(", "", ")", "", " ", "")
)

// Normalize returns the first run of 10 to 13 digits in raw, prefixed with the country
// code when missing. A nil raw or a cell without such a run yields ok == false.
func Normalize(raw *string) (number string, ok bool) {
	if raw == nil {
		return "", false
	}
	return NormalizeString(*raw)
}

// NormalizeString is Normalize for a cell value that is always present.
func NormalizeString(raw string) (string, bool) {
	cleaned := stripper.Replace(raw)

	// Runs are maximal, so a 14+ digit run is rejected whole instead of being truncated.
	for _, run := range digitRuns.FindAllString(cleaned, -1) {
		if len(run) < minDigits || len(run) > maxDigits {
			continue
		}
		if strings.HasPrefix(run, CountryCode) {
			return run, true
		}
		return CountryCode + run, true
	}
	return "", false
}
