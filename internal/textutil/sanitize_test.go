package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Escherichia coli", "escherichia_coli"},
		{"USA: California", "usa__california"},
		{"  spaced  ", "spaced"},
		{"", "unknown"},
		{"___", "unknown"},
		{"Homo-sapiens", "homo-sapiens"},
	}
	for _, tc := range cases {
		if got := SanitizeToken(tc.in); got != tc.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
