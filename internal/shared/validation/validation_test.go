package validation

import (
	"reflect"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  deep work  ", "deep work"},
		{"strips null bytes", "dee\x00p work", "deep work"},
		{"drops invalid utf8", "work\xff", "work"},
		{"preserves special characters", `o'brien "deep" <work>`, `o'brien "deep" <work>`},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeString(tc.input); got != tc.want {
				t.Fatalf("SanitizeString(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeWorkDays(t *testing.T) {
	got, ok := NormalizeWorkDays([]string{" Mon", "TUE", "wed"})
	if !ok {
		t.Fatal("expected valid work days")
	}
	if !reflect.DeepEqual(got, []string{"mon", "tue", "wed"}) {
		t.Fatalf("unexpected normalization: %v", got)
	}

	if _, ok := NormalizeWorkDays([]string{"mon", "funday"}); ok {
		t.Fatal("expected unknown token to be rejected")
	}
	if _, ok := NormalizeWorkDays([]string{"mon", "MON"}); ok {
		t.Fatal("expected duplicates to be rejected")
	}

	empty, ok := NormalizeWorkDays(nil)
	if !ok || len(empty) != 0 {
		t.Fatalf("expected empty list to pass through, got %v ok=%v", empty, ok)
	}
}
