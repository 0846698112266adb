package db

// DatabaseProvider abstracts the key/value backend behind the receipt journal
type DatabaseProvider interface {
	// Get retrieves a value by key, nil when the key is absent
	Get(key []byte) ([]byte, error)

	Put(key, value []byte) error

	Delete(key []byte) error

	Has(key []byte) (bool, error)

	Close() error

	// Batch returns a new batch for atomic operations
	Batch() DatabaseBatch
}

// IterableProvider extends DatabaseProvider with ordered iteration
type IterableProvider interface {
	DatabaseProvider

	// IteratePrefix visits keys with the given prefix in ascending order.
	// The callback returns false to stop iteration.
	IteratePrefix(prefix []byte, callback func(key, value []byte) bool) error

	// ReverseIteratePrefix is IteratePrefix in descending key order
	ReverseIteratePrefix(prefix []byte, callback func(key, value []byte) bool) error
}

// DatabaseBatch provides atomic batch operations
type DatabaseBatch interface {
	Put(key, value []byte)
	Delete(key []byte)
	Write() error
	Reset()
	Close()
}
