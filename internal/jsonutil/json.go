// internal/jsonutil/json.go
package jsonutil

import (
	"encoding/json"
	"io"
)

// EncodePretty writes v as two-space indented JSON followed by a newline.
// HTML escaping is off so accessions keep their '<' and '&' verbatim.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// EncodeList is EncodePretty for a slice; an empty or nil list is written
// as [] rather than null.
func EncodeList[T any](w io.Writer, list []T) error {
	if list == nil {
		list = []T{}
	}
	return EncodePretty(w, list)
}
