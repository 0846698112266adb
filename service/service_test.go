package service

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/mezonai/devkit/db"
	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/instruction"
	"github.com/mezonai/devkit/interfaces/mocks"
	"github.com/mezonai/devkit/keycodec"
	"github.com/mezonai/devkit/store"
	"github.com/mezonai/devkit/transaction"
	"github.com/mezonai/devkit/types"
	"github.com/mezonai/devkit/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testCheckpoint = types.Checkpoint{Blockhash: types.Hash{4, 5, 6}, LastValidBlockHeight: 200}
	testSig        = types.Signature{0xaa, 0xbb}
	confirmed      = &types.SignatureStatus{Slot: 10, ConfirmationStatus: types.CommitmentConfirmed}
)

func fixedKeypair(t *testing.T) *wallet.Keypair {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	text := keycodec.FormatByteArray(ed25519.NewKeyFromSeed(seed))
	kp, err := wallet.KeypairFromByteArray(text)
	require.NoError(t, err)
	return kp
}

func newMemReceipts(t *testing.T) *store.GenericReceiptStore {
	t.Helper()
	provider, err := db.NewMemLevelDBProvider()
	require.NoError(t, err)
	rs, err := store.NewGenericReceiptStore(provider)
	require.NoError(t, err)
	t.Cleanup(rs.MustClose)
	return rs
}

func newTxService(ledger *mocks.Ledger, receipts store.ReceiptStore) *TxService {
	tracker := NewTracker(ledger, types.CommitmentConfirmed, time.Millisecond)
	return NewTxService(ledger, tracker, receipts, "devnet")
}

func TestSweepBalanceEndToEnd(t *testing.T) {
	kp := fixedKeypair(t)
	to := types.PublicKey{0x42}
	receipts := newMemReceipts(t)

	ledger := new(mocks.Ledger)
	ledger.On("GetLatestCheckpoint", mock.Anything).Return(testCheckpoint, nil)
	ledger.On("GetBalance", mock.Anything, kp.PublicKey()).Return(uint64(2_000_000_000), nil)
	ledger.On("EstimateFee", mock.Anything, mock.Anything).Return(uint64(5000), nil)
	ledger.On("SubmitTransaction", mock.Anything, mock.MatchedBy(func(tx *transaction.Transaction) bool {
		if len(tx.Message.Instructions) != 1 || tx.VerifySignatures() != nil {
			return false
		}
		amount, ok := instruction.TransferAmount(tx.Message.Instruction(0))
		return ok && amount == 1_999_995_000
	})).Return(testSig, nil)
	ledger.On("GetSignatureStatus", mock.Anything, testSig).Return(confirmed, nil)

	res, err := NewTransferService(newTxService(ledger, receipts)).SweepBalance(context.Background(), kp, to)
	require.NoError(t, err)
	ledger.AssertExpectations(t)

	assert.Equal(t, testSig, res.Signature)
	assert.NotEmpty(t, res.Signature.String())
	assert.Equal(t, uint64(1_999_995_000), res.Amount)
	assert.Equal(t, uint64(5000), res.Fee)
	assert.True(t, res.Confirmed)
	assert.Equal(t, "https://explorer.solana.com/tx/"+testSig.String()+"?cluster=devnet", res.ExplorerURL)

	r, err := receipts.Get(testSig.String())
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, store.ReceiptTransfer, r.Kind)
	assert.Equal(t, to.String(), r.Recipient)
	assert.Equal(t, kp.PublicKey().String(), r.Payer)
}

func TestSweepBalanceInsufficient(t *testing.T) {
	kp := fixedKeypair(t)

	ledger := new(mocks.Ledger)
	ledger.On("GetLatestCheckpoint", mock.Anything).Return(testCheckpoint, nil)
	ledger.On("GetBalance", mock.Anything, kp.PublicKey()).Return(uint64(4000), nil)
	ledger.On("EstimateFee", mock.Anything, mock.Anything).Return(uint64(5000), nil)

	_, err := NewTransferService(newTxService(ledger, nil)).SweepBalance(context.Background(), kp, types.PublicKey{1})
	assert.ErrorIs(t, err, errors.ErrInsufficientBalance)
	ledger.AssertNotCalled(t, "SubmitTransaction", mock.Anything, mock.Anything)
}

func TestSubmitMissingSignature(t *testing.T) {
	payer := fixedKeypair(t)
	other, err := wallet.NewKeypair()
	require.NoError(t, err)

	ix := instruction.Transfer(other.PublicKey(), types.PublicKey{3}, 1)
	ledger := new(mocks.Ledger)

	_, err = newTxService(ledger, nil).Submit(context.Background(), []instruction.Instruction{ix}, payer.PublicKey(), []transaction.Signer{payer}, testCheckpoint)
	assert.ErrorIs(t, err, errors.ErrMissingSignature)
	assert.Contains(t, err.Error(), other.PublicKey().String())
	ledger.AssertNotCalled(t, "SubmitTransaction", mock.Anything, mock.Anything)
}

func TestSubmitLedgerErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
	}{
		{"expired passes through", errors.CheckpointExpired(nil), errors.ErrCodeCheckpointExpired},
		{"rejection passes through", errors.SubmissionFailed("custom program error", nil), errors.ErrCodeSubmissionFailed},
		{"transport error becomes submission failure", context.DeadlineExceeded, errors.ErrCodeSubmissionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp := fixedKeypair(t)
			ledger := new(mocks.Ledger)
			ledger.On("SubmitTransaction", mock.Anything, mock.Anything).Return(types.Signature{}, tt.err)

			ix := instruction.Transfer(kp.PublicKey(), types.PublicKey{3}, 1)
			_, err := newTxService(ledger, nil).Submit(context.Background(), []instruction.Instruction{ix}, kp.PublicKey(), []transaction.Signer{kp}, testCheckpoint)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.True(t, errors.Retryable(err))
		})
	}
}

func TestEnroll(t *testing.T) {
	kp := fixedKeypair(t)
	program := instruction.EnrollmentProgram{
		ProgramID: types.MustPublicKeyFromBase58("ADcaide4vBtKuyZQqdU689YqEGZMCmS4tL35bdTv9wJa"),
		Seed:      []byte("prereq"),
	}
	derived, _, err := program.DeriveEnrollmentAddress(kp.PublicKey())
	require.NoError(t, err)
	receipts := newMemReceipts(t)

	ledger := new(mocks.Ledger)
	ledger.On("GetLatestCheckpoint", mock.Anything).Return(testCheckpoint, nil)
	ledger.On("SubmitTransaction", mock.Anything, mock.MatchedBy(func(tx *transaction.Transaction) bool {
		ix := tx.Message.Instruction(0)
		if ix.ProgramID != program.ProgramID || len(ix.Accounts) != 3 {
			return false
		}
		return ix.Accounts[0].PublicKey == kp.PublicKey() &&
			ix.Accounts[1].PublicKey == derived &&
			ix.Accounts[2].PublicKey == types.SystemProgramID &&
			string(ix.Data) == string(instruction.EnrollmentPayload("complete", []byte("octocat")))
	})).Return(testSig, nil)
	ledger.On("GetSignatureStatus", mock.Anything, testSig).Return(confirmed, nil)

	res, err := NewEnrollService(newTxService(ledger, receipts), program).Enroll(context.Background(), kp, []byte("octocat"))
	require.NoError(t, err)
	ledger.AssertExpectations(t)
	assert.Equal(t, derived, res.Account)
	assert.True(t, res.Confirmed)

	r, err := receipts.Get(testSig.String())
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, store.ReceiptEnroll, r.Kind)
}

func TestEnrollExpiredKeepsSignature(t *testing.T) {
	kp := fixedKeypair(t)
	program := instruction.EnrollmentProgram{
		ProgramID: types.MustPublicKeyFromBase58("ADcaide4vBtKuyZQqdU689YqEGZMCmS4tL35bdTv9wJa"),
		Seed:      []byte("prereq"),
	}
	receipts := newMemReceipts(t)

	ledger := new(mocks.Ledger)
	ledger.On("GetLatestCheckpoint", mock.Anything).Return(testCheckpoint, nil)
	ledger.On("SubmitTransaction", mock.Anything, mock.Anything).Return(testSig, nil)
	ledger.On("GetSignatureStatus", mock.Anything, testSig).Return((*types.SignatureStatus)(nil), nil)
	ledger.On("GetBlockHeight", mock.Anything).Return(uint64(201), nil)

	res, err := NewEnrollService(newTxService(ledger, receipts), program).Enroll(context.Background(), kp, []byte("octocat"))
	require.ErrorIs(t, err, errors.ErrCheckpointExpired)
	require.NotNil(t, res)
	assert.Equal(t, testSig, res.Signature)
	assert.False(t, res.Confirmed)

	r, err := receipts.Get(testSig.String())
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.False(t, r.Confirmed)
}

func TestSubmitAndConfirm(t *testing.T) {
	kp := fixedKeypair(t)
	ix := instruction.Transfer(kp.PublicKey(), types.PublicKey{3}, 1)

	t.Run("confirmed", func(t *testing.T) {
		ledger := new(mocks.Ledger)
		ledger.On("SubmitTransaction", mock.Anything, mock.Anything).Return(testSig, nil)
		ledger.On("GetSignatureStatus", mock.Anything, testSig).Return(confirmed, nil)

		sig, err := newTxService(ledger, nil).SubmitAndConfirm(context.Background(), []instruction.Instruction{ix}, kp.PublicKey(), []transaction.Signer{kp}, testCheckpoint)
		require.NoError(t, err)
		assert.Equal(t, testSig, sig)
		ledger.AssertExpectations(t)
	})

	t.Run("expired after submit", func(t *testing.T) {
		ledger := new(mocks.Ledger)
		ledger.On("SubmitTransaction", mock.Anything, mock.Anything).Return(testSig, nil)
		ledger.On("GetSignatureStatus", mock.Anything, testSig).Return((*types.SignatureStatus)(nil), nil)
		ledger.On("GetBlockHeight", mock.Anything).Return(uint64(201), nil)

		sig, err := newTxService(ledger, nil).SubmitAndConfirm(context.Background(), []instruction.Instruction{ix}, kp.PublicKey(), []transaction.Signer{kp}, testCheckpoint)
		assert.ErrorIs(t, err, errors.ErrCheckpointExpired)
		assert.Equal(t, testSig, sig)
	})

	t.Run("rejected", func(t *testing.T) {
		ledger := new(mocks.Ledger)
		ledger.On("SubmitTransaction", mock.Anything, mock.Anything).Return(types.Signature{}, errors.SubmissionFailed("rejected", nil))

		sig, err := newTxService(ledger, nil).SubmitAndConfirm(context.Background(), []instruction.Instruction{ix}, kp.PublicKey(), []transaction.Signer{kp}, testCheckpoint)
		assert.ErrorIs(t, err, errors.ErrSubmissionFailed)
		assert.True(t, sig.IsZero())
		ledger.AssertNotCalled(t, "GetSignatureStatus", mock.Anything, mock.Anything)
	})
}

func TestRequestFundsDefaultAmount(t *testing.T) {
	addr := fixedKeypair(t).PublicKey()

	ledger := new(mocks.Ledger)
	ledger.On("RequestAirdrop", mock.Anything, addr, DefaultAirdropLamports).Return(testSig, nil)
	ledger.On("GetLatestCheckpoint", mock.Anything).Return(testCheckpoint, nil)
	ledger.On("GetSignatureStatus", mock.Anything, testSig).Return(confirmed, nil)

	res, err := NewFaucetService(newTxService(ledger, nil)).RequestFunds(context.Background(), addr, 0)
	require.NoError(t, err)
	ledger.AssertExpectations(t)
	assert.Equal(t, uint64(2_000_000_000), res.Amount)
	assert.True(t, res.Confirmed)
}

func TestRequestFundsRejected(t *testing.T) {
	ledger := new(mocks.Ledger)
	ledger.On("RequestAirdrop", mock.Anything, mock.Anything, uint64(5)).Return(types.Signature{}, context.DeadlineExceeded)

	_, err := NewFaucetService(newTxService(ledger, nil)).RequestFunds(context.Background(), types.PublicKey{1}, 5)
	assert.ErrorIs(t, err, errors.ErrSubmissionFailed)
}

func TestTrackerPollsUntilConfirmed(t *testing.T) {
	processed := &types.SignatureStatus{Slot: 9, ConfirmationStatus: types.CommitmentProcessed}

	ledger := new(mocks.Ledger)
	ledger.On("GetSignatureStatus", mock.Anything, testSig).Return((*types.SignatureStatus)(nil), nil).Once()
	ledger.On("GetBlockHeight", mock.Anything).Return(uint64(150), nil).Once()
	ledger.On("GetSignatureStatus", mock.Anything, testSig).Return(processed, nil).Once()
	ledger.On("GetSignatureStatus", mock.Anything, testSig).Return(confirmed, nil)

	status, err := NewTracker(ledger, types.CommitmentConfirmed, time.Millisecond).Wait(context.Background(), testSig, 200)
	require.NoError(t, err)
	assert.Equal(t, types.CommitmentConfirmed, status.ConfirmationStatus)
	ledger.AssertNumberOfCalls(t, "GetSignatureStatus", 3)
}

func TestTrackerCheckpointExpired(t *testing.T) {
	ledger := new(mocks.Ledger)
	ledger.On("GetSignatureStatus", mock.Anything, testSig).Return((*types.SignatureStatus)(nil), nil)
	ledger.On("GetBlockHeight", mock.Anything).Return(uint64(201), nil)

	_, err := NewTracker(ledger, types.CommitmentConfirmed, time.Millisecond).Wait(context.Background(), testSig, 200)
	assert.ErrorIs(t, err, errors.ErrCheckpointExpired)
}

func TestTrackerOnChainFailure(t *testing.T) {
	failed := &types.SignatureStatus{Slot: 9, Err: `{"InstructionError":[0,{"Custom":1}]}`, ConfirmationStatus: types.CommitmentConfirmed}

	ledger := new(mocks.Ledger)
	ledger.On("GetSignatureStatus", mock.Anything, testSig).Return(failed, nil)

	_, err := NewTracker(ledger, types.CommitmentConfirmed, time.Millisecond).Wait(context.Background(), testSig, 200)
	require.ErrorIs(t, err, errors.ErrSubmissionFailed)
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Contains(t, e.Reason, "InstructionError")
}

func TestTrackerContextDeadline(t *testing.T) {
	ledger := new(mocks.Ledger)
	ledger.On("GetSignatureStatus", mock.Anything, testSig).Return((*types.SignatureStatus)(nil), nil)
	ledger.On("GetBlockHeight", mock.Anything).Return(uint64(10), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewTracker(ledger, types.CommitmentConfirmed, 2*time.Millisecond).Wait(ctx, testSig, 200)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExplorerURL(t *testing.T) {
	assert.Equal(t, "https://explorer.solana.com/tx/abc?cluster=devnet", ExplorerURL("devnet", "abc"))
	assert.Equal(t, "https://explorer.solana.com/tx/abc", ExplorerURL("mainnet-beta", "abc"))
	assert.Equal(t, "https://explorer.solana.com/tx/abc", ExplorerURL("", "abc"))
}
