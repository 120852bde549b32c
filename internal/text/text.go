// Package text formats fragments of diagnostic messages.
package text

import (
	"strconv"
	"strings"
)

// Quote renders s as a double-quoted Go string literal.
func Quote(s string) string { return strconv.Quote(s) }

// QuoteAll quotes every element of ss.
func QuoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = Quote(s)
	}
	return out
}

// AndList joins items with commas and a final "and", using the serial comma
// for three or more items: "a", "a and b", "a, b, and c".
func AndList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
