package transaction

import (
	"bytes"
	"fmt"
)

// encodeCompactU16 writes n as the ledger's compact-u16 (7 bits per byte, high bit continues)
func encodeCompactU16(buf *bytes.Buffer, n int) error {
	if n < 0 || n > 0xffff {
		return fmt.Errorf("compact-u16 out of range: %d", n)
	}
	rem := uint16(n)
	for {
		b := byte(rem & 0x7f)
		rem >>= 7
		if rem == 0 {
			buf.WriteByte(b)
			return nil
		}
		buf.WriteByte(b | 0x80)
	}
}
