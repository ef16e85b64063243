package util

import (
	"fmt"
	"sort"
	"strings"
)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// FormatKm renders a distance the way result cards show it, one decimal place.
func FormatKm(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}

// TrimAll trims every entry and drops the blank ones.
func TrimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DistinctSorted returns the unique non-blank values of in, sorted.
func DistinctSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := []string{}
	for _, s := range TrimAll(in) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
