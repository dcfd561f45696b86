package normalize

import "testing"

func TestYear(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2015", "2015"},
		{"2015-06-01", "2015"},
		{"15-Jun-2015", "2015"},
		{"Jun-2015", "2015"},
		{"2015/2016", "2015"},
		{"1998-11", "1998"},
		{"", Absent},
		{"missing", Absent},
		{"Not Collected", Absent},
		{"not applicable", Absent},
		{"unknown", Absent},
		{"-", Absent},
		{"sometime", Absent},
		{"0815", Absent},
		{"20151", Absent},
	}
	for _, tc := range cases {
		if got := Year(tc.in); got != tc.want {
			t.Errorf("Year(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCountry(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"USA: California", "USA"},
		{"USA:CA", "USA"},
		{"Viet Nam: Hanoi", "Viet Nam"},
		{"viet nam", "Viet Nam"},
		{"Germany", "Germany"},
		{"Brazil, Sao Paulo", "Brazil"},
		{"", Absent},
		{"missing", Absent},
		{"not collected", Absent},
		{": somewhere", Absent},
	}
	for _, tc := range cases {
		if got := Country(tc.in); got != tc.want {
			t.Errorf("Country(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHost(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Homo sapiens", "Homo sapiens"},
		{"  Sus scrofa  ", "Sus scrofa"},
		{"", Absent},
		{"not applicable", Absent},
		{"Unknown", Absent},
		{"N/A", Absent},
	}
	for _, tc := range cases {
		if got := Host(tc.in); got != tc.want {
			t.Errorf("Host(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSource(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Blood", "blood"},
		{"Wound swab", "wound swab"},
		{"", Absent},
		{"missing", Absent},
		{"restricted access", Absent},
	}
	for _, tc := range cases {
		if got := Source(tc.in); got != tc.want {
			t.Errorf("Source(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsMissing(t *testing.T) {
	if !IsMissing("  MISSING ") {
		t.Fatal("expected missing")
	}
	if IsMissing("Homo sapiens") {
		t.Fatal("unexpected missing")
	}
}
