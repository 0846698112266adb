package planner

import (
	"context"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/instruction"
	"github.com/mezonai/devkit/interfaces"
	"github.com/mezonai/devkit/logx"
	"github.com/mezonai/devkit/transaction"
	"github.com/mezonai/devkit/types"
)

// Plan is a full-balance transfer with its fee already deducted
type Plan struct {
	From    types.PublicKey
	To      types.PublicKey
	Balance uint64
	Fee     uint64
	Amount  uint64
}

// PlanFullBalanceTransfer moves everything but the fee. The amount is never zero.
func PlanFullBalanceTransfer(from, to types.PublicKey, balance, fee uint64) (Plan, error) {
	if balance <= fee {
		return Plan{}, errors.NewError(errors.ErrCodeInsufficientBalance, errors.ErrMsgInsufficientBalance, balance, fee)
	}
	return Plan{
		From:    from,
		To:      to,
		Balance: balance,
		Fee:     fee,
		Amount:  balance - fee,
	}, nil
}

type Planner struct {
	Ledger interfaces.Ledger
}

func NewPlanner(ledger interfaces.Ledger) *Planner {
	return &Planner{Ledger: ledger}
}

// Plan quotes the fee on a draft that transfers the whole balance. The fee
// depends on the message layout only, so the draft is representative of
// the final transaction.
func (p *Planner) Plan(ctx context.Context, from, to types.PublicKey, checkpoint types.Checkpoint) (Plan, error) {
	balance, err := p.Ledger.GetBalance(ctx, from)
	if err != nil {
		return Plan{}, err
	}

	draft, err := transaction.NewMessage(
		[]instruction.Instruction{instruction.Transfer(from, to, balance)},
		from,
		checkpoint.Blockhash,
	)
	if err != nil {
		return Plan{}, err
	}

	fee, err := p.Ledger.EstimateFee(ctx, draft)
	if err != nil {
		return Plan{}, err
	}

	logx.Debug("PLANNER", "balance=", balance, " fee=", fee, " from=", from)
	return PlanFullBalanceTransfer(from, to, balance, fee)
}

// BuildSigned plans a sweep and returns the final transaction carrying the
// corrected amount, signed by signer at the same checkpoint.
func (p *Planner) BuildSigned(ctx context.Context, signer transaction.Signer, to types.PublicKey, checkpoint types.Checkpoint) (*transaction.Transaction, Plan, error) {
	from := signer.PublicKey()
	plan, err := p.Plan(ctx, from, to, checkpoint)
	if err != nil {
		return nil, Plan{}, err
	}

	tx, err := transaction.New(
		[]instruction.Instruction{instruction.Transfer(from, to, plan.Amount)},
		from,
		checkpoint.Blockhash,
	)
	if err != nil {
		return nil, Plan{}, err
	}
	if err := tx.Sign(signer); err != nil {
		return nil, Plan{}, err
	}
	return tx, plan, nil
}
