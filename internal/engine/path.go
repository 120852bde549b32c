package engine

import (
	"strconv"
	"strings"
)

var keyEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// FormatKey renders an object member access as ['key'], escaping quotes and
// backslashes inside the key.
func FormatKey(key string) string {
	return "['" + keyEscaper.Replace(key) + "']"
}

// FormatIndex renders an array element access as [N].
func FormatIndex(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
