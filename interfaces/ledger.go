package interfaces

import (
	"context"

	"github.com/mezonai/devkit/transaction"
	"github.com/mezonai/devkit/types"
)

// Ledger is the remote ledger service consumed by the toolkit.
type Ledger interface {
	RequestAirdrop(ctx context.Context, addr types.PublicKey, lamports uint64) (types.Signature, error)
	GetBalance(ctx context.Context, addr types.PublicKey) (uint64, error)
	GetLatestCheckpoint(ctx context.Context) (types.Checkpoint, error)
	// EstimateFee quotes the fee for a draft message at the message's own blockhash
	EstimateFee(ctx context.Context, msg *transaction.Message) (uint64, error)
	SubmitTransaction(ctx context.Context, tx *transaction.Transaction) (types.Signature, error)
}

// StatusSource answers confirmation queries for submitted transactions
type StatusSource interface {
	GetSignatureStatus(ctx context.Context, sig types.Signature) (*types.SignatureStatus, error)
	GetBlockHeight(ctx context.Context) (uint64, error)
}

type LedgerClient interface {
	Ledger
	StatusSource
	Close() error
}
