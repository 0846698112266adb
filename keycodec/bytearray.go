package keycodec

import (
	"strconv"
	"strings"

	"github.com/mezonai/devkit/errors"
)

// ParseByteArray parses "[1, 2, 3]" or "1,2,3" into bytes.
func ParseByteArray(text string) ([]byte, error) {
	body := strings.TrimSpace(text)

	hasOpen := strings.HasPrefix(body, "[")
	hasClose := strings.HasSuffix(body, "]")
	if hasOpen != hasClose {
		return nil, errors.NewError(errors.ErrCodeMalformedArray, errors.ErrMsgMalformedArray)
	}
	if hasOpen {
		body = body[1 : len(body)-1]
	}
	if strings.ContainsAny(body, "[]") {
		return nil, errors.NewError(errors.ErrCodeMalformedArray, errors.ErrMsgMalformedArray)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return []byte{}, nil
	}

	tokens := strings.Split(body, ",")
	out := make([]byte, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		v, err := strconv.ParseUint(tok, 10, 8)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s: token %d %q", errors.ErrMsgInvalidFormat, i, tok)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// FormatByteArray renders bytes as "[1,2,3]", the keypair file layout
func FormatByteArray(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b)*4 + 2)
	sb.WriteByte('[')
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(v)))
	}
	sb.WriteByte(']')
	return sb.String()
}
