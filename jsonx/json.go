// Package jsonx routes JSON through json-iterator with encoding/json semantics.
// Receipts and ledger results are decoded here.
package jsonx

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var jsonx = jsoniter.ConfigCompatibleWithStandardLibrary

func Marshal(v interface{}) ([]byte, error) {
	return jsonx.Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return jsonx.Unmarshal(data, v)
}

// NewIndentEncoder writes two-space indented documents to w
func NewIndentEncoder(w io.Writer) *jsoniter.Encoder {
	enc := jsonx.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc
}
