package semver

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"1.9.8", Version{Major: 1, Minor: 9, Patch: 8, Raw: "1.9.8"}, false},
		{"0.75.10", Version{Major: 0, Minor: 75, Patch: 10, Raw: "0.75.10"}, false},
		{"v1.9.8", Version{}, true},
		{"1.9", Version{}, true},
		{"1.10.0-alpha1", Version{}, true},
		{"latest", Version{}, true},
		{"", Version{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestCompareIsNumericNotLexicographic(t *testing.T) {
	a, _ := Parse("1.9.8")
	b, _ := Parse("1.10.0")

	if a.Compare(b) != -1 {
		t.Errorf("expected 1.9.8 < 1.10.0 numerically")
	}
	if b.Compare(a) != 1 {
		t.Errorf("expected 1.10.0 > 1.9.8 numerically")
	}
	if a.Compare(a) != 0 {
		t.Errorf("expected 1.9.8 == 1.9.8")
	}
}

func TestSortStrings(t *testing.T) {
	candidates := []string{"1.9.7", "1.10.0-alpha1", "1.9.8", "1.8.5", "v2.0.0", "1.10.2"}

	got := SortStrings(candidates)
	want := []string{"1.10.2", "1.9.8", "1.9.7", "1.8.5"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortStrings = %v, want %v", got, want)
	}
}

func TestAtLeastMajor(t *testing.T) {
	v, _ := Parse("1.4.6")

	if !v.AtLeastMajor(1) {
		t.Errorf("expected 1.4.6 to be at least major 1")
	}
	if v.AtLeastMajor(2) {
		t.Errorf("expected 1.4.6 to be below major 2")
	}
}
