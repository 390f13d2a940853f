package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzValidateUsername fuzzes the username validator with random strings.
func FuzzValidateUsername(f *testing.F) {
	for _, seed := range []string{"octocat", "mona-lisa", "-bad", "", "a/b", "x--y"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, username string) {
		if err := ValidateUsername(username); err == nil {
			if len(username) == 0 || len(username) > 39 {
				t.Fatalf("accepted username with invalid length: %q", username)
			}
			if !utf8.ValidString(username) {
				t.Fatalf("accepted invalid UTF-8: %q", username)
			}
		}
	})
}

// FuzzTruncateText fuzzes TruncateText with random text and widths.
func FuzzTruncateText(f *testing.F) {
	f.Add("hello-world", 5)
	f.Add("", 0)
	f.Add("日本語のリポジトリ", 4)

	f.Fuzz(func(t *testing.T, text string, width int) {
		out := TruncateText(text, width)
		if width > 3 && utf8.RuneCountInString(out) > max(width, 0) && utf8.RuneCountInString(text) > width {
			t.Fatalf("truncated %q to %q exceeds width %d", text, out, width)
		}
	})
}
