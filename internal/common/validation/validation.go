package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength        = 150
	MaxDescriptionLength = 5000
)

// Twitter handles: letters, digits and underscores, up to 15 characters.
var twitterUsernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

// ExceedsLength reports whether s is longer than max characters.
func ExceedsLength(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// ValidateTwitterUsername checks a handle, with or without the leading '@'.
func ValidateTwitterUsername(username string) error {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return fmt.Errorf("twitter username is required")
	}
	if !twitterUsernameRegex.MatchString(username) {
		return fmt.Errorf("invalid twitter username: %q", username)
	}
	return nil
}
