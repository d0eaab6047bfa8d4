package teams

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Team represents one side of a game. Code3 is always upper-case and at most three letters;
// a side with no upstream data is a Team with empty fields, never a missing Team.
type Team struct {
	Code3 string  `json:"code3"`
	Name  string  `json:"name"`
	Score *string `json:"score"`
	Shots *int    `json:"shots,omitempty"`
}

// New builds a Team, deriving Code3 from the abbreviation or, failing that, the display name.
func New(abbreviation, name string, score *string) Team {
	name = strings.TrimSpace(name)
	return Team{
		Code3: Code3(abbreviation, name),
		Name:  name,
		Score: score,
	}
}

// Code3 returns an upper-case code of at most three letters.
func Code3(abbreviation, name string) string {
	if code := fold(abbreviation); code != "" {
		return truncate(code)
	}
	return truncate(fold(name))
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold upper-cases and drops diacritics and anything that is not a letter or digit.
func fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}
