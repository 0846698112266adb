package service

import (
	"context"
	"time"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/interfaces"
	"github.com/mezonai/devkit/logx"
	"github.com/mezonai/devkit/types"
)

const DefaultPollInterval = 500 * time.Millisecond

// Tracker polls the ledger until a submitted transaction reaches the
// target commitment or its checkpoint ages out.
type Tracker struct {
	source     interfaces.StatusSource
	commitment types.Commitment
	interval   time.Duration
}

func NewTracker(source interfaces.StatusSource, commitment types.Commitment, interval time.Duration) *Tracker {
	if commitment == "" {
		commitment = types.CommitmentConfirmed
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{source: source, commitment: commitment, interval: interval}
}

// Wait blocks until sig is confirmed, fails on-chain, or can no longer land
// because the block height passed lastValidBlockHeight. ctx bounds the wait.
func (t *Tracker) Wait(ctx context.Context, sig types.Signature, lastValidBlockHeight uint64) (*types.SignatureStatus, error) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		status, err := t.source.GetSignatureStatus(ctx, sig)
		if err != nil {
			return nil, err
		}
		if status != nil {
			if status.Err != "" {
				return status, errors.SubmissionFailed(status.Err, nil)
			}
			if status.ConfirmationStatus.Reached(t.commitment) {
				logx.Info("TRACKER", "Transaction ", sig.Short(), " reached ", status.ConfirmationStatus)
				return status, nil
			}
		} else {
			height, err := t.source.GetBlockHeight(ctx)
			if err != nil {
				return nil, err
			}
			if height > lastValidBlockHeight {
				logx.Warn("TRACKER", "Transaction ", sig.Short(), " expired at block height ", height)
				return nil, errors.CheckpointExpired(nil)
			}
		}

		select {
		case <-ctx.Done():
			return status, logx.Errorf("waiting for confirmation of %s: %w", sig, ctx.Err())
		case <-ticker.C:
		}
	}
}
