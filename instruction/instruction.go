package instruction

import (
	"github.com/mezonai/devkit/types"
)

// AccountMeta represents an account reference of an instruction.
type AccountMeta struct {
	PublicKey  types.PublicKey
	IsSigner   bool
	IsWritable bool
}

func NewAccountMeta(pk types.PublicKey, isSigner, isWritable bool) AccountMeta {
	return AccountMeta{PublicKey: pk, IsSigner: isSigner, IsWritable: isWritable}
}

// Instruction is a single program invocation: program, ordered accounts and opaque data.
type Instruction struct {
	ProgramID types.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// New copies accounts and data so the instruction does not alias caller memory
func New(programID types.PublicKey, accounts []AccountMeta, data []byte) Instruction {
	acc := make([]AccountMeta, len(accounts))
	copy(acc, accounts)
	d := make([]byte, len(data))
	copy(d, data)
	return Instruction{ProgramID: programID, Accounts: acc, Data: d}
}

// Signers lists the accounts flagged as signers, in order
func (ix Instruction) Signers() []types.PublicKey {
	var out []types.PublicKey
	for _, a := range ix.Accounts {
		if a.IsSigner {
			out = append(out, a.PublicKey)
		}
	}
	return out
}
