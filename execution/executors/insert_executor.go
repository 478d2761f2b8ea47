package executors

import (
	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/storage/access"
	"github.com/komorebi-db/komorebi/storage/page"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
	"github.com/komorebi-db/komorebi/types"
)

// InsertExecutor inserts tuples into a table, one at a time, maintaining
// any indexes built on the target table as it goes. It runs in one of two
// modes: raw values embedded directly in the plan, or tuples pulled from
// a child executor (e.g. INSERT ... SELECT).
type InsertExecutor struct {
	context       *ExecutorContext
	plan          *plans.InsertPlanNode
	child         Executor
	tableMetadata *catalog.TableMetadata
	txn           *access.Transaction
	cursor        int
}

func NewInsertExecutor(context *ExecutorContext, plan *plans.InsertPlanNode, child Executor) *InsertExecutor {
	tableMetadata := context.GetCatalog().GetTableByOID(plan.GetTableOID())
	return &InsertExecutor{context, plan, child, tableMetadata, context.GetTransaction(), 0}
}

func (e *InsertExecutor) Init() {
	e.cursor = 0
	if e.child != nil {
		e.child.Init()
	}
}

// Next inserts the next tuple and returns it as it was stored, one row
// per call, so callers see insertion progress incrementally.
func (e *InsertExecutor) Next() (*tuple.Tuple, Done, error) {
	var t *tuple.Tuple

	if e.child != nil {
		childTuple, done, err := e.child.Next()
		if err != nil || done {
			return nil, true, err
		}
		childSchema := e.child.GetOutputSchema()
		colNum := len(childSchema.GetColumns())
		values := make([]types.Value, colNum)
		for i := 0; i < colNum; i++ {
			values[i] = childTuple.GetValue(childSchema, uint32(i))
		}
		t = tuple.NewTupleFromSchema(values, e.tableMetadata.Schema())
	} else {
		values := e.plan.GetRawValues()
		if e.cursor >= len(values) {
			return nil, true, nil
		}
		t = tuple.NewTupleFromSchema(values[e.cursor], e.tableMetadata.Schema())
		e.cursor++
	}

	rid, err := e.tableMetadata.Table().InsertTuple(t, e.txn, e.tableMetadata.OID())
	if err != nil {
		e.txn.SetState(access.ABORTED)
		return nil, true, err
	}
	t.SetRID(rid)

	// TableHeap.InsertTuple already took this exclusive lock internally;
	// taking it again here is a no-op fast path. It is requested
	// explicitly so the lock's lifetime is ours to manage below.
	lockManager := e.context.GetLockManager()
	if !lockManager.LockExclusive(e.txn, rid) {
		e.txn.SetState(access.ABORTED)
		return nil, true, access.NewTransactionAbortException(e.txn.GetTransactionId(), access.DEADLOCK)
	}

	colNum := int(e.tableMetadata.GetColumnNum())
	for i := 0; i < colNum; i++ {
		if idx := e.tableMetadata.GetIndex(i); idx != nil {
			idx.InsertEntry(t, *rid, e.txn)
		}
	}

	writeRecord := access.NewWriteRecord(*rid, access.INSERT, t, e.tableMetadata.Table(), e.tableMetadata.OID())
	e.txn.AddIntoWriteSet(writeRecord)

	// Under READ_COMMITTED and below there is no repeatable-read
	// guarantee to protect, so the lock can be released right away.
	// REPEATABLE_READ keeps it until commit/abort releases it in bulk.
	if e.txn.GetIsolationLevel() < access.REPEATABLE_READ {
		lockManager.Unlock(e.txn, []page.RID{*rid})
	}

	return t, false, nil
}

func (e *InsertExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *InsertExecutor) GetTableMetaData() *catalog.TableMetadata { return e.tableMetadata }
