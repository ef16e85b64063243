package phone

import (
	"strings"
	"testing"
)

func ptr(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		input  *string
		want   string
		wantOK bool
	}{
		{"formatted mobile", ptr("(11) 99999-0000"), "5511999990000", true},
		{"already prefixed", ptr("5511999990000"), "5511999990000", true},
		{"landline ten digits", ptr("11 3333-4444"), "551133334444", true},
		{"letters only", ptr("abc"), "", false},
		{"nil", nil, "", false},
		{"empty", ptr(""), "", false},
		{"too short", ptr("9999-0000"), "", false},
		{"run longer than thirteen is never matched", ptr("12345678901234"), "", false},
		{"first qualifying run wins", ptr("Ana: 21 98888-7777 / Bia: 11 97777-6666"), "5521988887777", true},
		{"short run skipped before qualifying run", ptr("ramal 123, 11987654321"), "5511987654321", true},
		{"plus sign kept as separator", ptr("+55 (21) 98888-7777"), "5521988887777", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Normalize() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeOutputShape(t *testing.T) {
	inputs := []string{
		"(11) 99999-0000", "11999990000", "5511999990000", "21 3333 4444",
		"tel 0800 123 4567", "x", "1234567890123456", "(31)98765-4321 ou (31)3222-1111",
	}

	for _, in := range inputs {
		got, ok := NormalizeString(in)
		if !ok {
			continue
		}
		if !strings.HasPrefix(got, CountryCode) {
			t.Errorf("NormalizeString(%q) = %q, missing country code", in, got)
		}
		for _, r := range got {
			if r < '0' || r > '9' {
				t.Errorf("NormalizeString(%q) = %q, contains non-digit %q", in, got, r)
			}
		}
	}
}
