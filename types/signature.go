package types

import (
	"fmt"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/keycodec"
)

const SignatureSize = 64

// Signature is an ed25519 signature; the first signature of a transaction is its id
type Signature [SignatureSize]byte

func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureSize {
		return sig, errors.NewError(errors.ErrCodeInvalidEncoding, "signature must be %d bytes, got %d", SignatureSize, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

func SignatureFromBase58(s string) (Signature, error) {
	b, err := keycodec.DecodeBase58(s)
	if err != nil {
		return Signature{}, fmt.Errorf("signature %q: %w", s, err)
	}
	return SignatureFromBytes(b)
}

func (s Signature) String() string {
	return keycodec.EncodeBase58(s[:])
}

func (s Signature) IsZero() bool {
	return s == Signature{}
}
