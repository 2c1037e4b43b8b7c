package domain

import "testing"

func TestNormalizeCountryCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"GR", "GR"},
		{"gr", "GR"},
		{" us ", "US"},
		{"It", "IT"},
	}
	for _, tc := range cases {
		got, err := NormalizeCountryCode(tc.in)
		if err != nil {
			t.Errorf("NormalizeCountryCode(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeCountryCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeCountryCodeRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "G", "GRE", "G1", "ΕΛ", "12", "g-"} {
		if _, err := NormalizeCountryCode(in); err == nil {
			t.Errorf("NormalizeCountryCode(%q): expected error, got nil", in)
		}
	}
}
