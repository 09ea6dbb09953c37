package chat

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"FÜCK!!", "fuck"},
		{"hello world", "helloworld"},
		{"f u c k", "fuck"},
		{"f.u.c.k", "fuck"},
		{"Héllo123", "hello123"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilterValidate(t *testing.T) {
	f := NewFilter(230, DefaultBannedWords)

	cases := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"plain message", "hello world", nil},
		{"trimmed ok", "  hello  ", nil},
		{"empty", "", ErrEmpty},
		{"whitespace only", "   \t ", ErrEmpty},
		{"too long", strings.Repeat("a", 231), ErrTooLong},
		{"exactly max length", strings.Repeat("a", 230), nil},
		{"http link", "check this out http://x.com", ErrLink},
		{"https link", "https://example.com", ErrLink},
		{"uppercase protocol", "HTTP://EXAMPLE.COM", ErrLink},
		{"www link", "visit www.example.com", ErrLink},
		{"circled glyphs", "hⓔllo", ErrUnsupportedChars},
		{"box drawing", "┌─┐", ErrUnsupportedChars},
		{"fullwidth", "ＨＥＬＬＯ", ErrUnsupportedChars},
		{"math alphanumerics", "\U0001d5a1\U0001d5ba\U0001d5bd", ErrUnsupportedChars},
		{"profanity plain", "fuck this", ErrProfanity},
		{"profanity spaced", "f u c k this", ErrProfanity},
		{"profanity diacritics", "FÜCK!!", ErrProfanity},
		{"profanity embedded", "what the sh-i-t", ErrProfanity},
		{"clean emoji", "gg 🎉", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Validate(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate(%q) err = %v; want %v", tc.in, err, tc.wantErr)
			}
		})
	}
}

func TestFilterValidateReturnsTrimmed(t *testing.T) {
	f := NewFilter(230, DefaultBannedWords)

	got, err := f.Validate("  hello world  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("Validate returned %q; want %q", got, "hello world")
	}
}

func TestFilterCustomWordList(t *testing.T) {
	f := NewFilter(230, []string{"banana"})

	if _, err := f.Validate("b a n a n a split"); !errors.Is(err, ErrProfanity) {
		t.Fatalf("expected custom banned word to reject, got %v", err)
	}
	if _, err := f.Validate("fuck"); err != nil {
		t.Fatalf("stock list should not apply with custom list, got %v", err)
	}
}

func TestFilterLengthCountsRunes(t *testing.T) {
	f := NewFilter(10, nil)

	// 10 multibyte runes must pass; byte length is irrelevant
	if _, err := f.Validate(strings.Repeat("é", 10)); err != nil {
		t.Fatalf("10 runes rejected: %v", err)
	}
	if _, err := f.Validate(strings.Repeat("é", 11)); !errors.Is(err, ErrTooLong) {
		t.Fatalf("11 runes accepted")
	}
}
