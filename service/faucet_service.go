package service

import (
	"context"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/logx"
	"github.com/mezonai/devkit/store"
	"github.com/mezonai/devkit/types"
)

// DefaultAirdropLamports is 2 SOL
const DefaultAirdropLamports uint64 = 2_000_000_000

type FaucetService struct {
	tx *TxService
}

func NewFaucetService(tx *TxService) *FaucetService {
	return &FaucetService{tx: tx}
}

// RequestFunds asks the ledger for test funds. lamports of 0 means the default.
func (s *FaucetService) RequestFunds(ctx context.Context, addr types.PublicKey, lamports uint64) (*Result, error) {
	if lamports == 0 {
		lamports = DefaultAirdropLamports
	}

	sig, err := s.tx.ledger.RequestAirdrop(ctx, addr, lamports)
	if err != nil {
		if errors.CodeOf(err) != errors.ErrCodeSubmissionFailed {
			err = errors.SubmissionFailed(err.Error(), err)
		}
		return nil, err
	}
	logx.Info("FAUCET", "Requested ", lamports, " lamports for ", addr, ": ", sig)

	res := &Result{
		Signature:   sig,
		Account:     addr,
		Amount:      lamports,
		ExplorerURL: s.tx.ExplorerURL(sig),
	}

	// airdrops carry no checkpoint of ours, so bound the wait by the current one
	checkpoint, err := s.tx.ledger.GetLatestCheckpoint(ctx)
	if err == nil {
		err = s.tx.Confirm(ctx, sig, checkpoint)
	}
	res.Confirmed = err == nil
	s.tx.record(store.ReceiptAirdrop, addr, res)
	return res, err
}
