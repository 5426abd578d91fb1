package airtable

import (
	"fmt"
	"strings"
)

// Expr is a node of a filterByFormula expression. Serialization goes
// through Formula() so every value reaches the upstream query language
// as a properly escaped string literal; handlers never concatenate
// user input into a formula directly.
type Expr interface {
	Formula() string
}

// Equals compares a column against a quoted string literal.
type Equals struct {
	Field string
	Value string
}

func (e Equals) Formula() string {
	return fmt.Sprintf("{%s} = '%s'", escapeField(e.Field), escapeValue(e.Value))
}

// EqualsRaw compares a column against a bare token. The upstream schema
// does not guarantee the container-type column is text, so type filters
// match both the quoted and unquoted representation. The token is
// stripped to alphanumerics, which keeps it inert in formula position.
type EqualsRaw struct {
	Field string
	Token string
}

func (e EqualsRaw) Formula() string {
	return fmt.Sprintf("{%s} = %s", escapeField(e.Field), sanitizeToken(e.Token))
}

// Contains is a case-insensitive substring match on a column.
type Contains struct {
	Field string
	Value string
}

func (e Contains) Formula() string {
	return fmt.Sprintf("FIND(LOWER('%s'), LOWER({%s})) > 0", escapeValue(e.Value), escapeField(e.Field))
}

type And []Expr

func (e And) Formula() string {
	return combine("AND", e)
}

type Or []Expr

func (e Or) Formula() string {
	return combine("OR", e)
}

func combine(op string, exprs []Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, ex := range exprs {
		parts = append(parts, ex.Formula())
	}
	return op + "(" + strings.Join(parts, ", ") + ")"
}

// escapeValue makes a string safe inside a single-quoted formula
// literal: a quote in user input must not terminate the literal.
func escapeValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}

func escapeField(f string) string {
	f = strings.ReplaceAll(f, "{", "")
	return strings.ReplaceAll(f, "}", "")
}

func sanitizeToken(t string) string {
	var b strings.Builder
	for _, r := range t {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "BLANK()"
	}
	return b.String()
}
