package keycodec

import (
	"strings"

	"github.com/mezonai/devkit/errors"
	"github.com/mr-tron/base58"
)

// DecodeBase58 decodes a base58 string to raw bytes.
// Surrounding whitespace is ignored and empty text decodes to an empty slice.
func DecodeBase58(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []byte{}, nil
	}
	bytes, err := base58.Decode(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEncoding, err, errors.ErrMsgInvalidEncoding)
	}
	return bytes, nil
}

// EncodeBase58 encodes bytes directly to base58
func EncodeBase58(bytes []byte) string {
	return base58.Encode(bytes)
}
