package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"atlas3-backend/internal/utils/random"
)

const (
	maxLength = 80
	fallback  = "giveaway"

	// SuffixLength is the number of random characters appended on collision.
	SuffixLength = 6
)

// Make lowercases name, folds accents, drops punctuation and joins words with '-'.
func Make(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range norm.NFKD.String(name) {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining marks left over from accent folding
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/' || r == '.':
			pendingDash = true
		}
	}

	s := b.String()
	if len(s) > maxLength {
		s = strings.TrimRight(s[:maxLength], "-")
	}
	if s == "" {
		return fallback
	}
	return s
}

// WithSuffix appends a crypto-random suffix to base.
func WithSuffix(base string) (string, error) {
	suffix, err := random.String(SuffixLength)
	if err != nil {
		return "", err
	}
	return base + "-" + suffix, nil
}

// Random returns a slug that is not derived from any name.
func Random(n int) (string, error) {
	return random.String(n)
}
