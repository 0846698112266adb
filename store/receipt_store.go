package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/mezonai/devkit/db"
	"github.com/mezonai/devkit/jsonx"
	"github.com/mezonai/devkit/logx"
)

type ReceiptKind string

const (
	ReceiptAirdrop  ReceiptKind = "airdrop"
	ReceiptTransfer ReceiptKind = "transfer"
	ReceiptEnroll   ReceiptKind = "enroll"
)

// Receipt records one submitted transaction. It never holds key material.
type Receipt struct {
	Kind        ReceiptKind `json:"kind"`
	Signature   string      `json:"signature"`
	Payer       string      `json:"payer"`
	Recipient   string      `json:"recipient,omitempty"`
	Amount      uint64      `json:"amount"`
	Fee         uint64      `json:"fee"`
	Confirmed   bool        `json:"confirmed"`
	CreatedAt   time.Time   `json:"created_at"`
	ExplorerURL string      `json:"explorer_url,omitempty"`
}

// ReceiptStore is the journal of submitted transactions
type ReceiptStore interface {
	Save(r *Receipt) error
	// List returns up to limit receipts, newest first. limit <= 0 means all.
	List(limit int) ([]*Receipt, error)
	// Get returns nil when no receipt exists for the signature
	Get(signature string) (*Receipt, error)
	MustClose()
}

type GenericReceiptStore struct {
	mu         sync.RWMutex
	dbProvider db.IterableProvider
}

func NewGenericReceiptStore(dbProvider db.IterableProvider) (*GenericReceiptStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericReceiptStore{
		dbProvider: dbProvider,
	}, nil
}

// NewLevelDBReceiptStore opens the journal stored under dir
func NewLevelDBReceiptStore(dir string) (*GenericReceiptStore, error) {
	provider, err := db.NewLevelDBProvider(dir)
	if err != nil {
		return nil, err
	}
	return NewGenericReceiptStore(provider)
}

func (rs *GenericReceiptStore) Save(r *Receipt) error {
	if r == nil || r.Signature == "" {
		return fmt.Errorf("receipt must carry a signature")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	data, err := jsonx.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt: %w", err)
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	batch := rs.dbProvider.Batch()
	defer batch.Close()

	// a re-saved signature replaces its previous entry
	if old, err := rs.dbProvider.Get(sigKey(r.Signature)); err == nil && old != nil {
		batch.Delete(old)
	}
	key := receiptKey(r.CreatedAt, r.Signature)
	batch.Put(key, data)
	batch.Put(sigKey(r.Signature), key)

	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to write receipt to database: %w", err)
	}

	logx.Debug("RECEIPT_STORE", "Saved ", r.Kind, " receipt ", r.Signature)
	return nil
}

func (rs *GenericReceiptStore) List(limit int) ([]*Receipt, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	receipts := make([]*Receipt, 0)
	var decodeErr error
	err := rs.dbProvider.ReverseIteratePrefix([]byte(PrefixReceipt), func(key, value []byte) bool {
		var r Receipt
		if err := jsonx.Unmarshal(value, &r); err != nil {
			decodeErr = fmt.Errorf("failed to unmarshal receipt %s: %w", key, err)
			return false
		}
		receipts = append(receipts, &r)
		return limit <= 0 || len(receipts) < limit
	})
	if err != nil {
		return nil, fmt.Errorf("could not list receipts: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return receipts, nil
}

func (rs *GenericReceiptStore) Get(signature string) (*Receipt, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	key, err := rs.dbProvider.Get(sigKey(signature))
	if err != nil {
		return nil, fmt.Errorf("could not get receipt %s from db: %w", signature, err)
	}
	if key == nil {
		return nil, nil
	}

	data, err := rs.dbProvider.Get(key)
	if err != nil {
		return nil, fmt.Errorf("could not get receipt %s from db: %w", signature, err)
	}
	if data == nil {
		return nil, nil
	}

	var r Receipt
	if err := jsonx.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal receipt %s: %w", signature, err)
	}
	return &r, nil
}

// MustClose closes the store and its provider
func (rs *GenericReceiptStore) MustClose() {
	if err := rs.dbProvider.Close(); err != nil {
		logx.Error("RECEIPT_STORE", "Failed to close provider: ", err)
	}
}

// zero-padded nanoseconds keep lexical order equal to time order
func receiptKey(at time.Time, signature string) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", PrefixReceipt, at.UnixNano(), signature))
}

func sigKey(signature string) []byte {
	return []byte(PrefixReceiptBySig + signature)
}
