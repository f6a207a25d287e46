package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"us number with formatting", "(555) 555-0123", "(555) 555-0123"},
		{"valid us number", "212-555-0123", "+12125550123"},
		{"already e164", "+12125550123", "+12125550123"},
		{"whitespace trimmed", "  212-555-0123  ", "+12125550123"},
		{"empty", "", ""},
		{"garbage passes through", "not a number", "not a number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input); got != tc.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
