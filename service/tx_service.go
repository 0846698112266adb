package service

import (
	"context"
	"time"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/instruction"
	"github.com/mezonai/devkit/interfaces"
	"github.com/mezonai/devkit/logx"
	"github.com/mezonai/devkit/store"
	"github.com/mezonai/devkit/transaction"
	"github.com/mezonai/devkit/types"
)

// Result describes one submitted transaction
type Result struct {
	Signature   types.Signature
	Account     types.PublicKey
	Amount      uint64
	Fee         uint64
	Confirmed   bool
	ExplorerURL string
}

type TxService struct {
	ledger   interfaces.LedgerClient
	tracker  *Tracker
	receipts store.ReceiptStore
	cluster  string
}

// NewTxService wires the submitter. receipts may be nil to disable the journal.
func NewTxService(ledger interfaces.LedgerClient, tracker *Tracker, receipts store.ReceiptStore, cluster string) *TxService {
	return &TxService{ledger: ledger, tracker: tracker, receipts: receipts, cluster: cluster}
}

// Submit assembles the instructions at checkpoint, signs with every required
// signer and sends the result. No retry is attempted.
func (s *TxService) Submit(ctx context.Context, instructions []instruction.Instruction, feePayer types.PublicKey, signers []transaction.Signer, checkpoint types.Checkpoint) (types.Signature, error) {
	tx, err := transaction.New(instructions, feePayer, checkpoint.Blockhash)
	if err != nil {
		return types.Signature{}, err
	}
	if err := tx.Sign(signers...); err != nil {
		return types.Signature{}, err
	}
	return s.Send(ctx, tx)
}

// Send submits an already signed transaction
func (s *TxService) Send(ctx context.Context, tx *transaction.Transaction) (types.Signature, error) {
	if err := tx.VerifySignatures(); err != nil {
		return types.Signature{}, err
	}

	sig, err := s.ledger.SubmitTransaction(ctx, tx)
	if err != nil {
		switch errors.CodeOf(err) {
		case errors.ErrCodeCheckpointExpired, errors.ErrCodeSubmissionFailed:
			return types.Signature{}, err
		}
		return types.Signature{}, errors.SubmissionFailed(err.Error(), err)
	}

	logx.Info("TX_SERVICE", "Submitted transaction ", sig.Short(), " fee payer ", tx.Message.FeePayer().Short())
	if amount, ok := instruction.TransferAmount(tx.Message.Instruction(0)); ok {
		logx.Debug("TX_SERVICE", "Transfer of ", amount, " lamports in ", sig.Short())
	}
	return sig, nil
}

// Confirm waits for sig through the tracker
func (s *TxService) Confirm(ctx context.Context, sig types.Signature, checkpoint types.Checkpoint) error {
	if s.tracker == nil {
		return nil
	}
	_, err := s.tracker.Wait(ctx, sig, checkpoint.LastValidBlockHeight)
	return err
}

// SubmitAndConfirm submits and then waits for confirmation. Once the
// transaction is accepted its signature is returned even if confirmation fails.
func (s *TxService) SubmitAndConfirm(ctx context.Context, instructions []instruction.Instruction, feePayer types.PublicKey, signers []transaction.Signer, checkpoint types.Checkpoint) (types.Signature, error) {
	sig, err := s.Submit(ctx, instructions, feePayer, signers, checkpoint)
	if err != nil {
		return types.Signature{}, err
	}
	return sig, s.Confirm(ctx, sig, checkpoint)
}

func (s *TxService) ExplorerURL(sig types.Signature) string {
	return ExplorerURL(s.cluster, sig.String())
}

// record journals a submitted transaction. Journal failures are logged and
// never fail the operation, the transaction is already on its way.
func (s *TxService) record(kind store.ReceiptKind, payer types.PublicKey, res *Result) {
	if s.receipts == nil {
		return
	}
	r := &store.Receipt{
		Kind:        kind,
		Signature:   res.Signature.String(),
		Payer:       payer.String(),
		Amount:      res.Amount,
		Fee:         res.Fee,
		Confirmed:   res.Confirmed,
		CreatedAt:   time.Now(),
		ExplorerURL: res.ExplorerURL,
	}
	if !res.Account.IsZero() {
		r.Recipient = res.Account.String()
	}
	if err := s.receipts.Save(r); err != nil {
		logx.Warn("TX_SERVICE", "Could not journal receipt ", r.Signature, ": ", err)
	}
}
