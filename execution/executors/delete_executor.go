package executors

import (
	"errors"
	"fmt"

	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/storage/access"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
)

/**
 * DeleteExecutor deletes every tuple produced by its child executor.
 */
type DeleteExecutor struct {
	context *ExecutorContext
	plan    *plans.DeletePlanNode
	//tableMetadata *catalog.TableMetadata
	//it            *access.TableHeapIterator
	child Executor
	txn   *access.Transaction
}

func NewDeleteExecutor(context *ExecutorContext, plan *plans.DeletePlanNode, child Executor) Executor {
	//tableMetadata := context.GetCatalog().GetTableByOID(plan.GetTableOID())

	return &DeleteExecutor{context, plan, child, context.GetTransaction()}
}

func (e *DeleteExecutor) Init() {
	//e.it = e.tableMetadata.Table().Iterator(e.txn)
	e.child.Init()
}

// Next pulls the next tuple from the child executor, marks it deleted
// (the delete is applied at commit), removes its index entries and
// returns it
func (e *DeleteExecutor) Next() (*tuple.Tuple, Done, error) {

	// iterates through the table heap trying to select a tuple that matches the predicate
	for t, done, err := e.child.Next(); !done; t, done, err = e.child.Next() {
		if t == nil {
			err_ := errors.New("e.it.Next returned nil")
			e.txn.SetState(access.ABORTED)
			return nil, true, err_
		}
		if err != nil {
			e.txn.SetState(access.ABORTED)
			return nil, true, err
		}

		rid := t.GetRID()
		tableMetadata := e.child.GetTableMetaData()

		// Upgrade a held shared lock to exclusive, or take exclusive
		// outright, before mutating the row.
		lockManager := e.context.GetLockManager()
		if e.txn.IsSharedLocked(rid) {
			if !lockManager.LockUpgrade(e.txn, rid) {
				e.txn.SetState(access.ABORTED)
				return nil, true, access.NewTransactionAbortException(e.txn.GetTransactionId(), access.UPGRADE_CONFLICT)
			}
		} else if !e.txn.IsExclusiveLocked(rid) && !lockManager.LockExclusive(e.txn, rid) {
			e.txn.SetState(access.ABORTED)
			return nil, true, access.NewTransactionAbortException(e.txn.GetTransactionId(), access.DEADLOCK)
		}

		is_marked := tableMetadata.Table().MarkDelete(rid, tableMetadata.OID(), e.txn)
		if !is_marked {
			err := errors.New("marking tuple deleted failed. PageId:SlotNum = " + string(rid.GetPageId()) + ":" + fmt.Sprint(rid.GetSlotNum()))
			e.txn.SetState(access.ABORTED)
			return nil, false, err
		}

		e.txn.AddIntoWriteSet(access.NewWriteRecord(*rid, access.DELETE, t, tableMetadata.Table(), tableMetadata.OID()))

		// index entries of the deleted tuple are removed right away, not at commit

		colNum := tableMetadata.GetColumnNum()
		for ii := 0; ii < int(colNum); ii++ {
			ret := tableMetadata.GetIndex(ii)
			if ret == nil {
				continue
			} else {
				index_ := ret
				//index_.DeleteEntry(e.it.Current(), *rid, e.txn)
				index_.DeleteEntry(t, *rid, e.txn)
			}
		}

		return t, false, nil
	}

	return nil, true, nil
}

//// select evaluates an expression on the tuple
//func (e *DeleteExecutor) selects(tuple *tuple.Tuple, predicate expression.Expression) bool {
//	return predicate == nil || predicate.Evaluate(tuple, e.tableMetadata.Schema()).ToBoolean()
//}

func (e *DeleteExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *DeleteExecutor) GetTableMetaData() *catalog.TableMetadata { return e.child.GetTableMetaData() }
