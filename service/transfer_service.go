package service

import (
	"context"

	"github.com/mezonai/devkit/interfaces"
	"github.com/mezonai/devkit/logx"
	"github.com/mezonai/devkit/planner"
	"github.com/mezonai/devkit/store"
	"github.com/mezonai/devkit/transaction"
	"github.com/mezonai/devkit/types"
)

type TransferService struct {
	tx      *TxService
	ledger  interfaces.Ledger
	planner *planner.Planner
}

func NewTransferService(tx *TxService) *TransferService {
	return &TransferService{tx: tx, ledger: tx.ledger, planner: planner.NewPlanner(tx.ledger)}
}

// SweepBalance moves the whole balance of signer, less the fee, to `to`.
// A fresh checkpoint is fetched for every call and never reused.
func (s *TransferService) SweepBalance(ctx context.Context, signer transaction.Signer, to types.PublicKey) (*Result, error) {
	checkpoint, err := s.ledger.GetLatestCheckpoint(ctx)
	if err != nil {
		return nil, err
	}

	signed, plan, err := s.planner.BuildSigned(ctx, signer, to, checkpoint)
	if err != nil {
		return nil, err
	}
	logx.Info("TRANSFER", "Sweeping ", plan.Amount, " lamports (fee ", plan.Fee, ") from ", plan.From, " to ", plan.To)

	sig, err := s.tx.Send(ctx, signed)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Signature:   sig,
		Account:     to,
		Amount:      plan.Amount,
		Fee:         plan.Fee,
		ExplorerURL: s.tx.ExplorerURL(sig),
	}
	err = s.tx.Confirm(ctx, sig, checkpoint)
	res.Confirmed = err == nil
	s.tx.record(store.ReceiptTransfer, plan.From, res)
	return res, err
}
