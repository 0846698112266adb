package types

// Checkpoint is a recent blockhash plus the last block height at which it is still accepted
type Checkpoint struct {
	Blockhash            Hash
	LastValidBlockHeight uint64
}

type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

// Reached reports whether c is at least as strong as target
func (c Commitment) Reached(target Commitment) bool {
	return commitmentRank(c) >= commitmentRank(target)
}

func commitmentRank(c Commitment) int {
	switch c {
	case CommitmentProcessed:
		return 1
	case CommitmentConfirmed:
		return 2
	case CommitmentFinalized:
		return 3
	}
	return 0
}

// SignatureStatus is the ledger's view of a submitted transaction
type SignatureStatus struct {
	Slot               uint64
	Confirmations      *uint64
	Err                string
	ConfirmationStatus Commitment
}
