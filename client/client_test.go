package client

import (
	"context"
	"crypto/ed25519"
	"net/http/httptest"
	"testing"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/instruction"
	"github.com/mezonai/devkit/transaction"
	"github.com/mezonai/devkit/types"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBlockhash = types.Hash{7, 7, 7}

func newTestServer(t *testing.T, methods handler.Map) *RpcClient {
	t.Helper()
	bridge := jhttp.NewBridge(methods, nil)
	srv := httptest.NewServer(bridge)
	t.Cleanup(func() {
		srv.Close()
		bridge.Close()
	})

	cli, err := NewClient(Config{Endpoint: srv.URL})
	require.NoError(t, err)
	t.Cleanup(func() { cli.Close() })
	return cli
}

func testKey(seed byte) types.PublicKey {
	s := make([]byte, ed25519.SeedSize)
	s[0] = seed
	pub := ed25519.NewKeyFromSeed(s).Public().(ed25519.PublicKey)
	var pk types.PublicKey
	copy(pk[:], pub)
	return pk
}

func testMessage(t *testing.T) *transaction.Message {
	t.Helper()
	from, to := testKey(1), testKey(2)
	msg, err := transaction.NewMessage([]instruction.Instruction{instruction.Transfer(from, to, 10)}, from, testBlockhash)
	require.NoError(t, err)
	return msg
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, errors.ErrConfigurationMissing)
}

func TestGetBalance(t *testing.T) {
	addr := testKey(1)
	cli := newTestServer(t, handler.Map{
		MethodGetBalance: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			var params []interface{}
			if err := req.UnmarshalParams(&params); err != nil {
				return nil, err
			}
			if params[0] != addr.String() {
				return nil, jrpc2.Errorf(jrpc2.InvalidParams, "unexpected address %v", params[0])
			}
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 10},
				"value":   1000000,
			}, nil
		}),
	})

	balance, err := cli.GetBalance(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000000), balance)
}

func TestGetBalanceFailure(t *testing.T) {
	cli := newTestServer(t, handler.Map{
		MethodGetBalance: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			return nil, jrpc2.Errorf(-32005, "node is behind")
		}),
	})

	_, err := cli.GetBalance(context.Background(), testKey(1))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeLedgerRequestFailed, errors.CodeOf(err))
}

func TestGetLatestCheckpoint(t *testing.T) {
	cli := newTestServer(t, handler.Map{
		MethodGetLatestBlockhash: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 10},
				"value": map[string]interface{}{
					"blockhash":            testBlockhash.String(),
					"lastValidBlockHeight": 150,
				},
			}, nil
		}),
	})

	cp, err := cli.GetLatestCheckpoint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testBlockhash, cp.Blockhash)
	assert.Equal(t, uint64(150), cp.LastValidBlockHeight)
}

func TestEstimateFee(t *testing.T) {
	msg := testMessage(t)
	encoded, err := msg.ToBase64()
	require.NoError(t, err)

	cli := newTestServer(t, handler.Map{
		MethodGetFeeForMessage: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			var params []interface{}
			if err := req.UnmarshalParams(&params); err != nil {
				return nil, err
			}
			if params[0] != encoded {
				return nil, jrpc2.Errorf(jrpc2.InvalidParams, "unexpected message")
			}
			return map[string]interface{}{"context": map[string]interface{}{"slot": 1}, "value": 5000}, nil
		}),
	})

	fee, err := cli.EstimateFee(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), fee)
}

func TestEstimateFeeExpiredCheckpoint(t *testing.T) {
	cli := newTestServer(t, handler.Map{
		MethodGetFeeForMessage: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			return map[string]interface{}{"context": map[string]interface{}{"slot": 1}, "value": nil}, nil
		}),
	})

	_, err := cli.EstimateFee(context.Background(), testMessage(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCheckpointExpired)
}

func TestSubmitTransaction(t *testing.T) {
	var sig types.Signature
	sig[0] = 9
	cli := newTestServer(t, handler.Map{
		MethodSendTransaction: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			return sig.String(), nil
		}),
	})

	tx := &transaction.Transaction{Signatures: []types.Signature{sig}, Message: testMessage(t)}
	got, err := cli.SubmitTransaction(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, sig, got)
}

func TestSubmitTransactionErrors(t *testing.T) {
	tests := []struct {
		name    string
		message string
		code    errors.ErrorCode
	}{
		{"blockhash not found", "Transaction simulation failed: Blockhash not found", errors.ErrCodeCheckpointExpired},
		{"rejected", "Transaction simulation failed: Attempt to debit an account but found no record of a prior credit.", errors.ErrCodeSubmissionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := newTestServer(t, handler.Map{
				MethodSendTransaction: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
					return nil, jrpc2.Errorf(-32002, "%s", tt.message)
				}),
			})

			tx := &transaction.Transaction{Signatures: []types.Signature{{}}, Message: testMessage(t)}
			_, err := cli.SubmitTransaction(context.Background(), tx)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestRequestAirdrop(t *testing.T) {
	var sig types.Signature
	sig[1] = 4
	cli := newTestServer(t, handler.Map{
		MethodRequestAirdrop: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			var params []interface{}
			if err := req.UnmarshalParams(&params); err != nil {
				return nil, err
			}
			if params[1].(float64) != 2000000000 {
				return nil, jrpc2.Errorf(jrpc2.InvalidParams, "unexpected amount")
			}
			return base58.Encode(sig[:]), nil
		}),
	})

	got, err := cli.RequestAirdrop(context.Background(), testKey(3), 2000000000)
	require.NoError(t, err)
	assert.Equal(t, sig, got)
}

func TestRequestAirdropRateLimited(t *testing.T) {
	cli := newTestServer(t, handler.Map{
		MethodRequestAirdrop: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			return nil, jrpc2.Errorf(429, "airdrop limit reached")
		}),
	})

	_, err := cli.RequestAirdrop(context.Background(), testKey(3), 1)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSubmissionFailed, errors.CodeOf(err))
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "airdrop limit reached", e.Reason)
}

func TestGetSignatureStatus(t *testing.T) {
	var sig types.Signature
	sig[0] = 1
	cli := newTestServer(t, handler.Map{
		MethodGetSignatureStatuses: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 50},
				"value": []interface{}{
					map[string]interface{}{
						"slot":               48,
						"confirmations":      2,
						"err":                nil,
						"confirmationStatus": "confirmed",
					},
				},
			}, nil
		}),
	})

	status, err := cli.GetSignatureStatus(context.Background(), sig)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, uint64(48), status.Slot)
	assert.Equal(t, types.CommitmentConfirmed, status.ConfirmationStatus)
	assert.Empty(t, status.Err)
	require.NotNil(t, status.Confirmations)
	assert.Equal(t, uint64(2), *status.Confirmations)
}

func TestGetSignatureStatusUnknown(t *testing.T) {
	cli := newTestServer(t, handler.Map{
		MethodGetSignatureStatuses: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 50},
				"value":   []interface{}{nil},
			}, nil
		}),
	})

	status, err := cli.GetSignatureStatus(context.Background(), types.Signature{})
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestGetSignatureStatusOnChainError(t *testing.T) {
	cli := newTestServer(t, handler.Map{
		MethodGetSignatureStatuses: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 50},
				"value": []interface{}{
					map[string]interface{}{
						"slot":               48,
						"err":                map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}},
						"confirmationStatus": "processed",
					},
				},
			}, nil
		}),
	})

	status, err := cli.GetSignatureStatus(context.Background(), types.Signature{})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Contains(t, status.Err, "InstructionError")
}

func TestGetBlockHeight(t *testing.T) {
	cli := newTestServer(t, handler.Map{
		MethodGetBlockHeight: handler.New(func(ctx context.Context, req *jrpc2.Request) (interface{}, error) {
			return 321, nil
		}),
	})

	height, err := cli.GetBlockHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(321), height)
}
