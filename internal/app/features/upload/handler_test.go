// internal/app/features/upload/handler_test.go
package upload

import "testing"

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"arena-floor.png", "arena-floor.png"},
		{"../../etc/passwd", "passwd"},
		{"floor plan (v2).png", "floor_plan__v2_.png"},
		{"???", "___"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFilename_TruncatesLongNames(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "abcdefghij"
	}
	got := sanitizeFilename(long + ".png")
	if len(got) > 100 {
		t.Errorf("got %d chars, want at most 100", len(got))
	}
	if got[len(got)-4:] != ".png" {
		t.Errorf("extension not preserved: got %q", got[len(got)-8:])
	}
}
