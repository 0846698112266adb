package store

// Declare database key prefix for objects
const (
	// PrefixReceipt keys are ordered by creation time
	PrefixReceipt = "receipt:"
	// PrefixReceiptBySig maps a signature to its PrefixReceipt key
	PrefixReceiptBySig = "receipt_sig:"
)
