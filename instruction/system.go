package instruction

import (
	"encoding/binary"

	"github.com/mezonai/devkit/types"
)

// system program instruction index for Transfer
const systemTransferIndex uint32 = 2

// Transfer moves lamports from a signer-owned system account.
func Transfer(from, to types.PublicKey, lamports uint64) Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], systemTransferIndex)
	binary.LittleEndian.PutUint64(data[4:12], lamports)

	return New(types.SystemProgramID, []AccountMeta{
		NewAccountMeta(from, true, true),
		NewAccountMeta(to, false, true),
	}, data)
}

// TransferAmount decodes the lamports of a system transfer, ok is false for any other instruction
func TransferAmount(ix Instruction) (lamports uint64, ok bool) {
	if ix.ProgramID != types.SystemProgramID || len(ix.Data) != 12 {
		return 0, false
	}
	if binary.LittleEndian.Uint32(ix.Data[0:4]) != systemTransferIndex {
		return 0, false
	}
	return binary.LittleEndian.Uint64(ix.Data[4:12]), true
}
