package instruction

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/mezonai/devkit/address"
	"github.com/mezonai/devkit/types"
)

const DefaultEnrollmentMethod = "complete"

// Discriminator is the 8-byte method selector, sha256("global:<method>")[:8]
func Discriminator(method string) [8]byte {
	var d [8]byte
	sum := sha256.Sum256([]byte("global:" + method))
	copy(d[:], sum[:8])
	return d
}

// CompleteArgs are the arguments of the enrollment "complete" call
type CompleteArgs struct {
	Github []byte
}

// MarshalBinary uses borsh layout: u32 little-endian length, then the bytes
func (a CompleteArgs) MarshalBinary() ([]byte, error) {
	out := make([]byte, 4+len(a.Github))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(a.Github)))
	copy(out[4:], a.Github)
	return out, nil
}

// EnrollmentPayload is discriminator || borsh(CompleteArgs)
func EnrollmentPayload(method string, github []byte) []byte {
	d := Discriminator(method)
	args, _ := CompleteArgs{Github: github}.MarshalBinary()
	return append(d[:], args...)
}

// BuildEnrollmentInstruction fixes the account order the program expects:
// signer, derived address, system program.
func BuildEnrollmentInstruction(programID, signer, derived, systemProgram types.PublicKey, payload []byte) Instruction {
	return New(programID, []AccountMeta{
		NewAccountMeta(signer, true, true),
		NewAccountMeta(derived, false, true),
		NewAccountMeta(systemProgram, false, false),
	}, payload)
}

// EnrollmentProgram binds the program id and the leading seed used for enrollment accounts.
type EnrollmentProgram struct {
	ProgramID types.PublicKey
	Seed      []byte
	Method    string
}

// DeriveEnrollmentAddress derives the enrollment account for signer from seeds [Seed, signer]
func (p EnrollmentProgram) DeriveEnrollmentAddress(signer types.PublicKey) (types.PublicKey, uint8, error) {
	return address.NewDeriver(p.ProgramID).Derive(p.Seed, signer[:])
}

// Complete builds the enrollment instruction for signer with the given github handle
func (p EnrollmentProgram) Complete(signer types.PublicKey, github []byte) (Instruction, types.PublicKey, error) {
	derived, _, err := p.DeriveEnrollmentAddress(signer)
	if err != nil {
		return Instruction{}, types.PublicKey{}, err
	}
	method := p.Method
	if method == "" {
		method = DefaultEnrollmentMethod
	}
	ix := BuildEnrollmentInstruction(p.ProgramID, signer, derived, types.SystemProgramID, EnrollmentPayload(method, github))
	return ix, derived, nil
}
