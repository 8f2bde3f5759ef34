package repositories

import "context"

// KeyValueReader defines read operations on the durable string store.
type KeyValueReader interface {
	// Get returns the value stored under key. The boolean is false when the key was never written.
	Get(ctx context.Context, key string) (string, bool, error)
}

// KeyValueWriter defines write operations on the durable string store.
type KeyValueWriter interface {
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// KeyValueStoreFacade combines all durable store interfaces.
// Rate snapshots and the active currency preference are both persisted through it.
type KeyValueStoreFacade interface {
	KeyValueReader
	KeyValueWriter
}
