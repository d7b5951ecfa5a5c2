package appinfo

import (
	"fmt"
	"regexp"
	"strings"
)

var unescapeRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\\\\n`), ""}, // line continuation
	{regexp.MustCompile(`\\\n`), ""},  // line continuation
	{regexp.MustCompile(`^\\\\`), `\`},
	{regexp.MustCompile(`([^\\])\\\\`), `${1}\`},
	{regexp.MustCompile(`^\\'`), `'`},
	{regexp.MustCompile(`([^\\])\\'`), `${1}'`},
	{regexp.MustCompile(`^\\"`), `"`},
	{regexp.MustCompile(`([^\\])\\"`), `${1}"`},
}

var (
	escapedControl = regexp.MustCompile(`\\[btnfr]`)
	whitespaceRun  = regexp.MustCompile(`[ \n\t\r\f]+`)
)

// UnescapeString turns the text of a property into the string the
// application sees at run time: escaped backslashes and quotes are
// unescaped and line continuations removed. Internal whitespace is kept.
func UnescapeString(s string) string {
	for _, rule := range unescapeRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	return s
}

// CleanString unescapes s until no escape sequence is left, replaces
// escaped control characters with a space, collapses whitespace runs and
// trims the result. CleanString(CleanString(s)) == CleanString(s).
func CleanString(s string) string {
	// Every rule shortens the string, so this terminates.
	for {
		u := UnescapeString(s)
		if u == s {
			break
		}
		s = u
	}
	s = escapedControl.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// EscapeInvalidChars replaces control characters that are not allowed in
// XML 1.0 with numeric character references. Tab, newline, vertical tab,
// form feed and carriage return are kept.
func EscapeInvalidChars(s string) string {
	if !strings.ContainsFunc(s, invalidChar) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if invalidChar(r) {
			fmt.Fprintf(&b, "&#x%02X;", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func invalidChar(r rune) bool {
	return r < 0x09 || (r > 0x0D && r < 0x20)
}
