package scoreboard

import "testing"

func TestCountryCode(t *testing.T) {
	cases := []struct {
		dial int
		want string
	}{
		{381, "rs"},
		{34, "es"},
		{44, "gb"},
		{1, "us"},
		{420, "cz"},
	}
	for _, tc := range cases {
		if got := CountryCode(tc.dial); got != tc.want {
			t.Errorf("CountryCode(%d) = %q, want %q", tc.dial, got, tc.want)
		}
	}
}

func TestCountryCodeFallback(t *testing.T) {
	if got := CountryCode(999); got != "us" {
		t.Errorf("Expected fallback us, got %q", got)
	}
	if got := CountryCode(0); got != "us" {
		t.Errorf("Expected fallback us for zero, got %q", got)
	}
}
