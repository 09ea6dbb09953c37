// Package chat holds the pure message-moderation rules applied before a
// chat message is accepted: length and link policy, decorative-glyph
// rejection and the profanity screen.
package chat

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmpty            = errors.New("message cannot be empty")
	ErrTooLong          = errors.New("message too long")
	ErrLink             = errors.New("links are not allowed")
	ErrUnsupportedChars = errors.New("unsupported characters")
	ErrProfanity        = errors.New("profanity rejected")
)

var urlPattern = regexp.MustCompile(`(?i)(https?://|www\.)`)

// Circled/enclosed glyphs, box drawing and arrows, phonetic extensions,
// mathematical alphanumerics, fullwidth forms.
var fancyCharPattern = regexp.MustCompile(
	`[\x{2460}-\x{24FF}\x{2500}-\x{2BFF}\x{1D00}-\x{1D7F}\x{1D400}-\x{1D7FF}\x{FF00}-\x{FFEF}]`,
)

// DefaultBannedWords is the stock banned-word list. Matching runs on
// normalized text, so spaced-out and punctuated variants are caught too.
var DefaultBannedWords = []string{
	"fuck",
	"shit",
	"bitch",
	"asshole",
	"slut",
	"dick",
	"cunt",
	"nigga",
	"nigger",
	"whore",
	"fag",
	"bastard",
	"motherfucker",
	"retard",
}

// Filter validates chat content against the moderation policy. The word
// list and length cap are injected so tests can substitute their own.
type Filter struct {
	maxLength   int
	bannedWords []string
}

func NewFilter(maxLength int, bannedWords []string) *Filter {
	return &Filter{maxLength: maxLength, bannedWords: bannedWords}
}

// Validate trims the raw content and runs the checks in pipeline order.
// The first failing rule wins. On success it returns the trimmed content.
func (f *Filter) Validate(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", ErrEmpty
	}

	if utf8.RuneCountInString(content) > f.maxLength {
		return "", ErrTooLong
	}

	if urlPattern.MatchString(content) {
		return "", ErrLink
	}

	if fancyCharPattern.MatchString(content) {
		return "", ErrUnsupportedChars
	}

	normalized := Normalize(content)
	for _, word := range f.bannedWords {
		if strings.Contains(normalized, word) {
			return "", ErrProfanity
		}
	}

	return content, nil
}

// MaxLength returns the configured content length cap.
func (f *Filter) MaxLength() int {
	return f.maxLength
}

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize prepares content for the profanity screen: lowercase, NFKD
// decomposition with combining marks stripped, then everything but ASCII
// letters and digits removed. "FÜCK!!" normalizes to "fuck".
func Normalize(s string) string {
	s = strings.ToLower(s)
	decomposed, _, err := transform.String(stripMarks, s)
	if err != nil {
		decomposed = s
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
