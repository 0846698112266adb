package service

import (
	"context"

	"github.com/mezonai/devkit/instruction"
	"github.com/mezonai/devkit/logx"
	"github.com/mezonai/devkit/store"
	"github.com/mezonai/devkit/transaction"
)

type EnrollService struct {
	tx      *TxService
	program instruction.EnrollmentProgram
}

func NewEnrollService(tx *TxService, program instruction.EnrollmentProgram) *EnrollService {
	return &EnrollService{tx: tx, program: program}
}

// Enroll submits the enrollment "complete" call for signer. Result.Account
// is the derived enrollment address.
func (s *EnrollService) Enroll(ctx context.Context, signer transaction.Signer, github []byte) (*Result, error) {
	payer := signer.PublicKey()
	ix, derived, err := s.program.Complete(payer, github)
	if err != nil {
		return nil, err
	}
	logx.Info("ENROLL", "Enrollment account for ", payer, " is ", derived)

	checkpoint, err := s.tx.ledger.GetLatestCheckpoint(ctx)
	if err != nil {
		return nil, err
	}

	sig, err := s.tx.SubmitAndConfirm(ctx, []instruction.Instruction{ix}, payer, []transaction.Signer{signer}, checkpoint)
	if sig.IsZero() {
		return nil, err
	}

	res := &Result{
		Signature:   sig,
		Account:     derived,
		Confirmed:   err == nil,
		ExplorerURL: s.tx.ExplorerURL(sig),
	}
	s.tx.record(store.ReceiptEnroll, payer, res)
	return res, err
}
