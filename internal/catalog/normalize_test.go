package catalog

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"1.2.3", "1.2.3", true},
		{"v1.2.3", "1.2.3", true},
		{"V1.2.3", "1.2.3", true},
		{"^2.0.0", "2.0.0", true},
		{"~3.1.4", "3.1.4", true},
		{"=4.0.0", "4.0.0", true},
		{"  5.0.0  ", "5.0.0", true},
		{"6", "6.0.0", true},
		{"7.1", "7.1.0", true},
		{"8.0.0-beta.3", "8.0.0-beta.3", true},
		{"v9.0.0-nightly.20250101", "9.0.0-nightly.20250101", true},
		{"10.0.0+build.5", "10.0.0+build.5", true},
		{"", "", false},
		{"not-a-version", "", false},
		{"v", "", false},
		{"1.2.3.4", "", false},
		{"beta", "", false},
	}

	for _, tc := range cases {
		got, valid := Normalize(tc.in)
		if valid != tc.valid {
			t.Errorf("Normalize(%q) valid = %v, want %v", tc.in, valid, tc.valid)
			continue
		}
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "1.0.0", 1},
		{"1.2.0", "1.10.0", -1},
		{"1.0.1", "1.0.0", 1},
		{"1.0", "1.0.0", 0},
		{"1.0.0-beta.1", "1.0.0", -1},
		{"1.0.0", "1.0.0-beta.1", 1},
		{"1.0.0-alpha.1", "1.0.0-beta.1", -1},
		{"1.0.0-beta.1", "1.0.0-beta.1", 0},
	}

	for _, tc := range cases {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSortDescending(t *testing.T) {
	records := []VersionRecord{
		{Version: "35.0.0"},
		{Version: "37.0.0-beta.2"},
		{Version: "37.0.0"},
		{Version: "36.1.0"},
		{Version: "36.0.0-nightly.20250301"},
	}
	SortDescending(records)

	want := []string{"37.0.0", "37.0.0-beta.2", "36.1.0", "36.0.0-nightly.20250301", "35.0.0"}
	for i, w := range want {
		if records[i].Version != w {
			t.Fatalf("position %d = %q, want %q (full order: %v)", i, records[i].Version, w, records)
		}
	}
}

func TestIsExpectedFormat(t *testing.T) {
	if !IsExpectedFormat(nil) {
		t.Error("nil slice should be valid")
	}
	if !IsExpectedFormat([]VersionRecord{}) {
		t.Error("empty slice should be valid")
	}
	if !IsExpectedFormat([]VersionRecord{{Version: "1.0.0"}, {Version: "2.0.0", Name: "two"}}) {
		t.Error("records with versions should be valid")
	}
	if IsExpectedFormat([]VersionRecord{{Version: "1.0.0"}, {Name: "no version"}}) {
		t.Error("record without version should be invalid")
	}
}
