package matcher

import (
	"strings"
	"unicode"
)

const DefaultMaxTextLength = 1_000_000

// TextNormalizer lowercases text, collapses whitespace runs to single spaces
// and replaces everything outside word characters, whitespace, hyphens and
// periods with a space. Input is capped at maxLength to bound downstream cost.
type TextNormalizer struct {
	maxLength int
}

func NewTextNormalizer(maxLength int) *TextNormalizer {
	if maxLength <= 0 {
		maxLength = DefaultMaxTextLength
	}
	return &TextNormalizer{maxLength: maxLength}
}

func (n *TextNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) > n.maxLength {
		runes = runes[:n.maxLength]
	}

	var sb strings.Builder
	sb.Grow(len(runes))

	lastWasSpace := true
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.':
			sb.WriteRune(unicode.ToLower(r))
			lastWasSpace = false
		default:
			// Whitespace and stripped punctuation both collapse to one space.
			if !lastWasSpace {
				sb.WriteRune(' ')
				lastWasSpace = true
			}
		}
	}

	return strings.TrimRight(sb.String(), " ")
}
