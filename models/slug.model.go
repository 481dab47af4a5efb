package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"hugox-backend/apperror"
)

// Slugify lowercases s, strips diacritics and symbols and joins words with
// single hyphens. "Áo thun Nam (2024)!" becomes "ao-thun-nam-2024".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.NewReplacer("đ", "d", "Đ", "d").Replace(folded)
	folded = strings.ToLower(folded)

	var b strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case r == ' ' || r == '-' || r == '_' || r == '\t':
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// resolveSlug normalises an explicit slug, or derives one from name when
// creating. A blank slug on update means "keep the current one". Input that
// leaves nothing URL-safe is rejected.
func resolveSlug(entity string, slug, name *string, create bool) (*string, error) {
	if slug != nil && strings.TrimSpace(*slug) == "" {
		slug = nil
	}
	if slug == nil && !create {
		return nil, nil
	}
	var s string
	switch {
	case slug != nil:
		s = Slugify(*slug)
	case name != nil:
		s = Slugify(*name)
	}
	if s == "" {
		return nil, apperror.Validation("slug", entity+" slug is required")
	}
	return &s, nil
}
