// Package search implements the query codec and the relevance scorer used
// to rank catalog rows against free-form search queries.
package search

import (
	"net/url"
	"strings"
)

// Reserved operator characters and their transport-safe placeholders. The
// query travels inside a URL path segment, so the operators are substituted
// first and the result is percent-encoded on top.
var operatorPlaceholders = []string{
	"*", "_AST_",
	"+", "_AND_",
	">", "_GT_",
	"<", "_LT_",
	"(", "_PO_",
	")", "_PC_",
	"~", "_LOW_",
	`"`, "_QUO_",
}

var (
	encodeReplacer = strings.NewReplacer(operatorPlaceholders...)
	decodeReplacer = strings.NewReplacer(reversePairs(operatorPlaceholders)...)
)

func reversePairs(pairs []string) []string {
	out := make([]string, len(pairs))
	for i := 0; i < len(pairs); i += 2 {
		out[i] = pairs[i+1]
		out[i+1] = pairs[i]
	}
	return out
}

// Encode substitutes reserved search operators with transport-safe tokens
// and percent-encodes the result for embedding in a URL path segment.
//
// The round-trip Decode(Encode(q)) == q holds unless q itself contains one
// of the literal placeholder substrings; that case is undefined.
func Encode(q string) string {
	return url.QueryEscape(encodeReplacer.Replace(q))
}

// Decode reverses Encode.
func Decode(q string) (string, error) {
	unescaped, err := url.QueryUnescape(q)
	if err != nil {
		return "", err
	}

	return decodeReplacer.Replace(unescaped), nil
}

// Advanced reports whether q uses boolean query syntax. Any single operator
// character flips the whole query into advanced mode.
func Advanced(q string) bool {
	return strings.ContainsAny(q, `*+->()<~"`)
}
