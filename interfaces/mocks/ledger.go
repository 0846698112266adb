package mocks

import (
	"context"

	"github.com/mezonai/devkit/interfaces"
	"github.com/mezonai/devkit/transaction"
	"github.com/mezonai/devkit/types"
	"github.com/stretchr/testify/mock"
)

var _ interfaces.LedgerClient = (*Ledger)(nil)

// Ledger is a testify mock of interfaces.LedgerClient
type Ledger struct {
	mock.Mock
}

func (m *Ledger) RequestAirdrop(ctx context.Context, addr types.PublicKey, lamports uint64) (types.Signature, error) {
	args := m.Called(ctx, addr, lamports)
	return args.Get(0).(types.Signature), args.Error(1)
}

func (m *Ledger) GetBalance(ctx context.Context, addr types.PublicKey) (uint64, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Ledger) GetLatestCheckpoint(ctx context.Context) (types.Checkpoint, error) {
	args := m.Called(ctx)
	return args.Get(0).(types.Checkpoint), args.Error(1)
}

func (m *Ledger) EstimateFee(ctx context.Context, msg *transaction.Message) (uint64, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Ledger) SubmitTransaction(ctx context.Context, tx *transaction.Transaction) (types.Signature, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(types.Signature), args.Error(1)
}

func (m *Ledger) GetSignatureStatus(ctx context.Context, sig types.Signature) (*types.SignatureStatus, error) {
	args := m.Called(ctx, sig)
	status, _ := args.Get(0).(*types.SignatureStatus)
	return status, args.Error(1)
}

func (m *Ledger) GetBlockHeight(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Ledger) Close() error {
	return m.Called().Error(0)
}
