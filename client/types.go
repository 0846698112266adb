package client

import (
	"encoding/json"
	"strings"

	"github.com/creachadair/jrpc2"
	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/types"
)

type rpcContext struct {
	Slot uint64 `json:"slot"`
}

// contextResult is the {context, value} envelope used by most ledger queries
type contextResult[T any] struct {
	Context rpcContext `json:"context"`
	Value   T          `json:"value"`
}

type latestBlockhash struct {
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

type signatureStatus struct {
	Slot               uint64          `json:"slot"`
	Confirmations      *uint64         `json:"confirmations"`
	Err                json.RawMessage `json:"err"`
	ConfirmationStatus string          `json:"confirmationStatus"`
}

func (s *signatureStatus) toStatus() *types.SignatureStatus {
	out := &types.SignatureStatus{
		Slot:               s.Slot,
		Confirmations:      s.Confirmations,
		ConfirmationStatus: types.Commitment(s.ConfirmationStatus),
	}
	if len(s.Err) > 0 && string(s.Err) != "null" {
		out.Err = string(s.Err)
	}
	return out
}

func isBlockhashNotFound(err error) bool {
	var rpcErr *jrpc2.Error
	if !errors.As(err, &rpcErr) {
		return false
	}
	text := rpcErr.Message + " " + string(rpcErr.Data)
	return strings.Contains(text, "BlockhashNotFound") || strings.Contains(strings.ToLower(text), "blockhash not found")
}

func rpcReason(err error) string {
	var rpcErr *jrpc2.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Message
	}
	return err.Error()
}
