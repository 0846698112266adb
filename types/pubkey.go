package types

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/keycodec"
)

const PublicKeySize = 32

// PublicKey is a 32-byte account address, either an ed25519 public key or a program-derived address
type PublicKey [PublicKeySize]byte

// SystemProgramID is the native system program, base58 "11111111111111111111111111111111"
var SystemProgramID = PublicKey{}

func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, errors.NewError(errors.ErrCodeInvalidEncoding, "public key must be %d bytes, got %d", PublicKeySize, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

func PublicKeyFromBase58(s string) (PublicKey, error) {
	b, err := keycodec.DecodeBase58(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("public key %q: %w", s, err)
	}
	return PublicKeyFromBytes(b)
}

// MustPublicKeyFromBase58 panics on invalid input; for package-level constants only
func MustPublicKeyFromBase58(s string) PublicKey {
	pk, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func (p PublicKey) String() string {
	return keycodec.EncodeBase58(p[:])
}

func (p PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeySize)
	copy(b, p[:])
	return b
}

func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

// IsOnCurve reports whether the key decodes to a valid ed25519 point, i.e. could have a private key
func (p PublicKey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}

func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PublicKey) UnmarshalText(text []byte) error {
	pk, err := PublicKeyFromBase58(string(text))
	if err != nil {
		return err
	}
	*p = pk
	return nil
}
