package db

import "strings"

// EscapeToken escapes a query token for safe interpolation into an FT.SEARCH
// query string.
func EscapeToken(s string) string {
	return tokenEscaper.Replace(s)
}

var tokenEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`&`, `\&`,
	`+`, `\+`,
	`=`, `\=`,
	`:`, `\:`,
	`;`, `\;`,
	`,`, `\,`,
	`/`, `\/`,
	` `, `\ `,
)

// PrefixUnion joins terms into an OR group of prefix tokens: "tok1*|tok2*".
// Returns "" when terms is empty.
func PrefixUnion(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		parts = append(parts, EscapeToken(t)+"*")
	}
	return strings.Join(parts, "|")
}
