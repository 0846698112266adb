package types

import (
	"fmt"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/keycodec"
)

const HashSize = 32

// Hash is a 32-byte ledger hash, used here as the recent blockhash
type Hash [HashSize]byte

func HashFromBase58(s string) (Hash, error) {
	var h Hash
	b, err := keycodec.DecodeBase58(s)
	if err != nil {
		return h, fmt.Errorf("hash %q: %w", s, err)
	}
	if len(b) != HashSize {
		return h, errors.NewError(errors.ErrCodeInvalidEncoding, "hash must be %d bytes, got %d", HashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash) String() string {
	return keycodec.EncodeBase58(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}
