package executors

import (
	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/storage/access"
	"github.com/komorebi-db/komorebi/storage/buffer"
)

// ExecutorContext stores all the context necessary to run an executor:
// the catalog to resolve table metadata against, the buffer pool backing
// every page fetch, and the transaction the executor tree runs under.
type ExecutorContext struct {
	catalog *catalog.Catalog
	bpm     *buffer.BufferPoolManager
	txn     *access.Transaction
}

func NewExecutorContext(catalog *catalog.Catalog, bpm *buffer.BufferPoolManager, txn *access.Transaction) *ExecutorContext {
	return &ExecutorContext{catalog, bpm, txn}
}

func (e *ExecutorContext) GetCatalog() *catalog.Catalog {
	return e.catalog
}

func (e *ExecutorContext) GetBufferPoolManager() *buffer.BufferPoolManager {
	return e.bpm
}

func (e *ExecutorContext) GetTransaction() *access.Transaction {
	return e.txn
}

// GetLockManager returns the lock manager the catalog's table heaps
// were built against, so executors can take and release row locks
// explicitly instead of relying only on the storage layer's own locking.
func (e *ExecutorContext) GetLockManager() *access.LockManager {
	return e.catalog.Lock_manager
}
