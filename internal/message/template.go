// Package message renders outbound order messages: placeholder substitution,
// length clamping and WhatsApp link building. Every function here is pure.
package message

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// Vars maps placeholder names to values. A missing key leaves the placeholder
// untouched; a present key with an empty value blanks it.
type Vars map[string]string

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

func ApplyTemplate(tpl string, vars Vars) string {
	return placeholder.ReplaceAllStringFunc(tpl, func(m string) string {
		key := m[1 : len(m)-1]
		if v, ok := vars[key]; ok {
			return v
		}
		return m
	})
}

// ClampText cuts text to at most maxLen characters, without ellipsis.
func ClampText(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}

func SanitizePhone(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// EncodeForURL percent-encodes like encodeURIComponent (spaces become %20).
func EncodeForURL(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func WhatsAppURL(number, text string) string {
	return "https://wa.me/" + SanitizePhone(number) + "?text=" + EncodeForURL(text)
}

// JoinBlocks joins non-empty blocks with a blank line between them.
func JoinBlocks(blocks ...string) string {
	kept := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if strings.TrimFunc(b, unicode.IsSpace) != "" {
			kept = append(kept, strings.TrimRight(b, "\n"))
		}
	}
	return strings.Join(kept, "\n\n")
}
