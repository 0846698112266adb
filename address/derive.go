package address

import (
	"crypto/sha256"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/types"
)

const (
	MaxSeedLength = 32
	MaxSeeds      = 16
)

const pdaMarker = "ProgramDerivedAddress"

// errOnCurve is returned as is so FindProgramAddress can tell it from seed errors
var errOnCurve = &errors.Error{Code: errors.ErrCodeInvalidSeeds, Message: errors.ErrMsgInvalidSeeds}

var isOnCurve = func(pk types.PublicKey) bool { return pk.IsOnCurve() }

// CreateProgramAddress hashes seeds, program id and the PDA marker. The result
// is rejected when it is a valid curve point, since such an address could sign.
func CreateProgramAddress(seeds [][]byte, programID types.PublicKey) (types.PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return types.PublicKey{}, errors.NewError(errors.ErrCodeMaxSeedsExceeded, errors.ErrMsgMaxSeedsExceeded, MaxSeeds)
	}
	if err := validateSeeds(seeds); err != nil {
		return types.PublicKey{}, err
	}

	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	var addr types.PublicKey
	copy(addr[:], h.Sum(nil))
	if isOnCurve(addr) {
		return types.PublicKey{}, errOnCurve
	}
	return addr, nil
}

// FindProgramAddress appends a one-byte bump to seeds, starting at 255 and
// counting down, and returns the first address off the curve.
func FindProgramAddress(seeds [][]byte, programID types.PublicKey) (types.PublicKey, uint8, error) {
	// the bump takes one seed slot
	if len(seeds) >= MaxSeeds {
		return types.PublicKey{}, 0, errors.NewError(errors.ErrCodeMaxSeedsExceeded, errors.ErrMsgMaxSeedsExceeded, MaxSeeds-1)
	}
	if err := validateSeeds(seeds); err != nil {
		return types.PublicKey{}, 0, err
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bump := []byte{0}
	withBump[len(seeds)] = bump

	for b := 255; b >= 0; b-- {
		bump[0] = uint8(b)
		addr, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return addr, uint8(b), nil
		}
		if err != errOnCurve {
			return types.PublicKey{}, 0, err
		}
	}
	return types.PublicKey{}, 0, errors.NewError(errors.ErrCodeNoValidAddressFound, errors.ErrMsgNoValidAddressFound)
}

func validateSeeds(seeds [][]byte) error {
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return errors.NewError(errors.ErrCodeSeedTooLong, errors.ErrMsgSeedTooLong+" (seed %d has %d)", MaxSeedLength, i, len(seed))
		}
	}
	return nil
}

// Deriver derives addresses owned by a single program
type Deriver struct {
	ProgramID types.PublicKey
}

func NewDeriver(programID types.PublicKey) Deriver {
	return Deriver{ProgramID: programID}
}

// Derive returns the canonical program address and its bump for the ordered seeds
func (d Deriver) Derive(seeds ...[]byte) (types.PublicKey, uint8, error) {
	return FindProgramAddress(seeds, d.ProgramID)
}
