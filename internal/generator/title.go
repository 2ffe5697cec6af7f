package generator

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

const DefaultTitle = "My Project"

// Tried in order; the first capture group is the title. Possessives and
// articles between the preposition and the subject are skipped.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:landing page|página|site|page)(?:\s+\S+)?\s+(?:para|da|de|for)\s+(?:(?:minha|meu|uma|um|a|o|my|the|an)\s+)?([\p{L}\d]+)`),
	regexp.MustCompile(`(?i)(?:criar|crie|faça|gere|create|build|make)\s+(?:uma|um|a|an)\s+(?:página|site|landing)\s+(?:para|da|de|for)\s+(?:(?:minha|meu|a|o|my|the)\s+)?([\p{L}\d]+)`),
	regexp.MustCompile(`(?i)(?:app|aplicativo)\s+(?:para|da|de|for)\s+(?:(?:minha|meu|uma|um|a|o|my|the|an)\s+)?([\p{L}\d]+)`),
}

// ExtractTitle derives a short project title from the prompt.
func ExtractTitle(prompt string) string {
	for _, pattern := range titlePatterns {
		if m := pattern.FindStringSubmatch(prompt); m != nil {
			return capitalize(m[1])
		}
	}
	return DefaultTitle
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
