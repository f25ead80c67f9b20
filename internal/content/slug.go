package content

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// SlugTakenFunc reports whether a slug candidate is already in use.
type SlugTakenFunc func(ctx context.Context, candidate string) (bool, error)

const maxSlugAttempts = 1000

// UniqueSlug returns base when free, otherwise base-2, base-3, ...
func UniqueSlug(ctx context.Context, base string, taken SlugTakenFunc) (string, error) {
	if base == "" {
		base = "item"
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		used, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q", base)
}
