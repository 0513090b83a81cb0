// Package models defines data structures for scraped records and configuration.
package models

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Quote is a single scraped quotation.
type Quote struct {
	Text   string `json:"text" yaml:"text"`
	Author string `json:"author" yaml:"author"`
	Tags   Tags   `json:"tags" yaml:"tags"`
}

// QuoteFields returns the declared field order, used as the CSV header.
func QuoteFields() []string {
	return []string{"text", "author", "tags"}
}

// Record returns the quote as a CSV row in QuoteFields order.
func (q Quote) Record() []string {
	return []string{q.Text, q.Author, q.Tags.String()}
}

// Equal reports whether two quotes have identical fields.
func (q Quote) Equal(other Quote) bool {
	return q.Text == other.Text && q.Author == other.Author && slices.Equal(q.Tags, other.Tags)
}

// Tags is the ordered list of tags attached to a quote.
type Tags []string

// String renders the tags as a list literal, e.g. ['love', 'life'].
// This is the form the CSV tags column has always carried; it is not a
// delimiter-joined string.
func (t Tags) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, tag := range t {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteLiteral(tag))
	}
	sb.WriteByte(']')
	return sb.String()
}

// quoteLiteral wraps s in single quotes, switching to double quotes when s
// contains a single quote but no double quote. Non-printable runes are
// written as \xNN, \uNNNN or \UNNNNNNNN escapes.
func quoteLiteral(s string) string {
	delim := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		delim = '"'
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(delim)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == rune(delim):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case !unicode.IsPrint(r):
			switch {
			case r <= 0xff:
				fmt.Fprintf(&sb, `\x%02x`, r)
			case r <= 0xffff:
				fmt.Fprintf(&sb, `\u%04x`, r)
			default:
				fmt.Fprintf(&sb, `\U%08x`, r)
			}
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(delim)
	return sb.String()
}
