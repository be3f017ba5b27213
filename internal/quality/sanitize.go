package quality

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	defaultMaxSectionLength = 4000
	maxProfessionLength     = 120
)

var (
	roleTagPattern     = regexp.MustCompile(`(?i)<\s*(/?)\s*(system|assistant|user|instructions?)\s*>`)
	roleBracketPattern = regexp.MustCompile(`(?i)\[\s*(/?)\s*(system|assistant|user|inst|instructions?)\s*\]`)

	delimiterReplacer = strings.NewReplacer(
		`"""`, `'''`,
		"```", "'''",
		"<|", "< |",
		"|>", "| >",
		"<<SYS>>", "(SYS)",
		"<</SYS>>", "(/SYS)",
	)
)

// Sanitize prepares untrusted section text for embedding in a prompt: control
// characters are removed, delimiter and role-marker sequences are defused and
// the result is capped at maxRunes.
func Sanitize(text string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = defaultMaxSectionLength
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		default:
			return r
		}
	}, text)

	text = delimiterReplacer.Replace(text)
	text = roleTagPattern.ReplaceAllString(text, "($1$2)")
	text = roleBracketPattern.ReplaceAllString(text, "($1$2)")
	text = strings.TrimSpace(text)

	if runes := []rune(text); len(runes) > maxRunes {
		text = strings.TrimSpace(string(runes[:maxRunes]))
	}
	return text
}

// sanitizeLine is Sanitize for single-line values such as the profession.
func sanitizeLine(text string, maxRunes int) string {
	text = Sanitize(text, maxRunes)
	text = strings.Join(strings.Fields(text), " ")
	return strings.ReplaceAll(text, `"`, "'")
}
