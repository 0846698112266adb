package client

import (
	"context"
	"encoding/json"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/interfaces"
	"github.com/mezonai/devkit/jsonx"
	"github.com/mezonai/devkit/logx"
	"github.com/mezonai/devkit/transaction"
	"github.com/mezonai/devkit/types"
)

// JSON-RPC method names of the ledger service
const (
	MethodRequestAirdrop       = "requestAirdrop"
	MethodGetBalance           = "getBalance"
	MethodGetLatestBlockhash   = "getLatestBlockhash"
	MethodGetFeeForMessage     = "getFeeForMessage"
	MethodSendTransaction      = "sendTransaction"
	MethodGetSignatureStatuses = "getSignatureStatuses"
	MethodGetBlockHeight       = "getBlockHeight"
)

var _ interfaces.LedgerClient = (*RpcClient)(nil)

type Config struct {
	Endpoint   string
	Commitment types.Commitment
}

type RpcClient struct {
	cfg Config
	rpc *jrpc2.Client
}

func NewClient(cfg Config) (*RpcClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.ConfigurationMissing("rpc_url")
	}
	if cfg.Commitment == "" {
		cfg.Commitment = types.CommitmentConfirmed
	}

	ch := jhttp.NewChannel(cfg.Endpoint, nil)
	return &RpcClient{
		cfg: cfg,
		rpc: jrpc2.NewClient(ch, nil),
	}, nil
}

func (c *RpcClient) commitment() map[string]interface{} {
	return map[string]interface{}{"commitment": string(c.cfg.Commitment)}
}

// call decodes the raw result with jsonx so response structs share one codec
func (c *RpcClient) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	var raw json.RawMessage
	if err := c.rpc.CallResult(ctx, method, params, &raw); err != nil {
		return err
	}
	if err := jsonx.Unmarshal(raw, out); err != nil {
		return logx.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

func (c *RpcClient) RequestAirdrop(ctx context.Context, addr types.PublicKey, lamports uint64) (types.Signature, error) {
	var sig string
	err := c.call(ctx, MethodRequestAirdrop, []interface{}{addr.String(), lamports, c.commitment()}, &sig)
	if err != nil {
		return types.Signature{}, errors.SubmissionFailed(rpcReason(err), err)
	}
	return types.SignatureFromBase58(sig)
}

func (c *RpcClient) GetBalance(ctx context.Context, addr types.PublicKey) (uint64, error) {
	var res contextResult[uint64]
	if err := c.call(ctx, MethodGetBalance, []interface{}{addr.String(), c.commitment()}, &res); err != nil {
		return 0, errors.Wrap(errors.ErrCodeLedgerRequestFailed, err, "getBalance %s", addr)
	}
	return res.Value, nil
}

func (c *RpcClient) GetLatestCheckpoint(ctx context.Context) (types.Checkpoint, error) {
	var res contextResult[latestBlockhash]
	if err := c.call(ctx, MethodGetLatestBlockhash, []interface{}{c.commitment()}, &res); err != nil {
		return types.Checkpoint{}, errors.Wrap(errors.ErrCodeLedgerRequestFailed, err, "getLatestBlockhash")
	}
	hash, err := types.HashFromBase58(res.Value.Blockhash)
	if err != nil {
		return types.Checkpoint{}, err
	}
	return types.Checkpoint{Blockhash: hash, LastValidBlockHeight: res.Value.LastValidBlockHeight}, nil
}

func (c *RpcClient) EstimateFee(ctx context.Context, msg *transaction.Message) (uint64, error) {
	encoded, err := msg.ToBase64()
	if err != nil {
		return 0, err
	}
	var res contextResult[*uint64]
	if err := c.call(ctx, MethodGetFeeForMessage, []interface{}{encoded, c.commitment()}, &res); err != nil {
		if isBlockhashNotFound(err) {
			return 0, errors.CheckpointExpired(err)
		}
		return 0, errors.Wrap(errors.ErrCodeLedgerRequestFailed, err, "getFeeForMessage")
	}
	// the service answers null once the message's blockhash is no longer valid
	if res.Value == nil {
		return 0, errors.CheckpointExpired(nil)
	}
	return *res.Value, nil
}

func (c *RpcClient) SubmitTransaction(ctx context.Context, tx *transaction.Transaction) (types.Signature, error) {
	encoded, err := tx.ToBase64()
	if err != nil {
		return types.Signature{}, err
	}
	opts := map[string]interface{}{
		"encoding":            "base64",
		"preflightCommitment": string(c.cfg.Commitment),
	}
	var sig string
	if err := c.call(ctx, MethodSendTransaction, []interface{}{encoded, opts}, &sig); err != nil {
		if isBlockhashNotFound(err) {
			return types.Signature{}, errors.CheckpointExpired(err)
		}
		return types.Signature{}, errors.SubmissionFailed(rpcReason(err), err)
	}
	return types.SignatureFromBase58(sig)
}

func (c *RpcClient) GetSignatureStatus(ctx context.Context, sig types.Signature) (*types.SignatureStatus, error) {
	var res contextResult[[]*signatureStatus]
	params := []interface{}{[]string{sig.String()}, map[string]interface{}{"searchTransactionHistory": true}}
	if err := c.call(ctx, MethodGetSignatureStatuses, params, &res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLedgerRequestFailed, err, "getSignatureStatuses")
	}
	if len(res.Value) == 0 || res.Value[0] == nil {
		return nil, nil
	}
	return res.Value[0].toStatus(), nil
}

func (c *RpcClient) GetBlockHeight(ctx context.Context) (uint64, error) {
	var height uint64
	if err := c.call(ctx, MethodGetBlockHeight, []interface{}{c.commitment()}, &height); err != nil {
		return 0, errors.Wrap(errors.ErrCodeLedgerRequestFailed, err, "getBlockHeight")
	}
	return height, nil
}

// Close closes the JSON-RPC client
func (c *RpcClient) Close() error {
	if c.rpc != nil {
		return c.rpc.Close()
	}
	return nil
}
