package wallet

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/keycodec"
	"github.com/mezonai/devkit/types"
)

// SecretKeySize is seed (32) followed by public key (32)
const SecretKeySize = ed25519.PrivateKeySize

// Keypair holds a 64-byte ed25519 secret key for the duration of a signing operation.
type Keypair struct {
	secret ed25519.PrivateKey
}

// NewKeypair generates a new random keypair.
func NewKeypair() (*Keypair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Keypair{secret: priv}, nil
}

// KeypairFromBytes validates and copies a 64-byte secret key
func KeypairFromBytes(b []byte) (*Keypair, error) {
	if len(b) != SecretKeySize {
		return nil, errors.NewError(errors.ErrCodeInvalidEncoding, "secret key must be %d bytes, got %d", SecretKeySize, len(b))
	}
	derived := ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], b[ed25519.SeedSize:]) {
		return nil, errors.NewError(errors.ErrCodeInvalidEncoding, "public key half does not match secret seed")
	}
	return &Keypair{secret: derived}, nil
}

func KeypairFromBase58(s string) (*Keypair, error) {
	b, err := keycodec.DecodeBase58(s)
	if err != nil {
		return nil, err
	}
	return KeypairFromBytes(b)
}

func KeypairFromByteArray(s string) (*Keypair, error) {
	b, err := keycodec.ParseByteArray(s)
	if err != nil {
		return nil, err
	}
	return KeypairFromBytes(b)
}

func (k *Keypair) PublicKey() types.PublicKey {
	var pk types.PublicKey
	copy(pk[:], k.secret[ed25519.SeedSize:])
	return pk
}

func (k *Keypair) Sign(message []byte) (types.Signature, error) {
	var sig types.Signature
	copy(sig[:], ed25519.Sign(k.secret, message))
	return sig, nil
}

// Bytes returns a copy of the 64-byte secret key
func (k *Keypair) Bytes() []byte {
	out := make([]byte, SecretKeySize)
	copy(out, k.secret)
	return out
}

// Base58 renders the secret key the way wallets export it
func (k *Keypair) Base58() string {
	return keycodec.EncodeBase58(k.secret)
}

// Verify checks a signature made by the owner of pub.
func Verify(pub types.PublicKey, message []byte, sig types.Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), message, sig[:])
}
