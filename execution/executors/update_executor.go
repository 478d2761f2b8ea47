package executors

import (
	"errors"
	"fmt"
	"github.com/komorebi-db/komorebi/samehada/samehada_util"
	"github.com/komorebi-db/komorebi/storage/page"

	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/storage/access"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
)

/**
 * UpdateExecutor updates every tuple produced by its child executor.
 */
type UpdateExecutor struct {
	context *ExecutorContext
	plan    *plans.UpdatePlanNode
	//tableMetadata *catalog.TableMetadata
	//it            *access.TableHeapIterator
	child Executor
	txn   *access.Transaction
}

func NewUpdateExecutor(context *ExecutorContext, plan *plans.UpdatePlanNode, child Executor) Executor {
	//tableMetadata := context.GetCatalog().GetTableByOID(plan.GetTableOID())

	//return &UpdateExecutor{context, plan, tableMetadata, nil, context.GetTransaction()}
	return &UpdateExecutor{context, plan, child, context.GetTransaction()}
}

func (e *UpdateExecutor) Init() {
	//e.it = e.tableMetadata.Table().Iterator(e.txn)
	e.child.Init()
}

// Next pulls the next tuple from the child executor, updates it in the
// table heap and in every affected index, and returns the new tuple
func (e *UpdateExecutor) Next() (*tuple.Tuple, Done, error) {

	// t is tuple before update
	for t, done, err := e.child.Next(); !done; t, done, err = e.child.Next() {
		if t == nil {
			err_ := errors.New("e.it.Next returned nil")
			return nil, true, err_
		}
		if err != nil {
			return nil, true, err
		}
		if e.txn.GetState() == access.ABORTED {
			return nil, true, err
		}

		rid := t.GetRID()

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

		values := e.plan.GetRawValues()
		new_tuple := tuple.NewTupleFromSchema(values, e.child.GetTableMetaData().Schema())

		var is_updated bool
		var new_rid *page.RID
		if e.plan.GetUpdateColIdxs() == nil {
			is_updated, new_rid = e.child.GetTableMetaData().Table().UpdateTuple(new_tuple, nil, nil, e.child.GetTableMetaData().OID(), *rid, e.txn)
		} else {
			is_updated, new_rid = e.child.GetTableMetaData().Table().UpdateTuple(new_tuple, e.plan.GetUpdateColIdxs(), e.child.GetTableMetaData().Schema(), e.child.GetTableMetaData().OID(), *rid, e.txn)
		}
		updateTuple := new_tuple

		if !is_updated {
			err_ := errors.New("tuple update failed. PageId:SlotNum = " + string(rid.GetPageId()) + ":" + fmt.Sprint(rid.GetSlotNum()))
			return nil, false, err_
		}

		colNum := e.child.GetTableMetaData().GetColumnNum()
		updateIdxs := e.plan.GetUpdateColIdxs()
		for ii := 0; ii < int(colNum); ii++ {
			ret := e.child.GetTableMetaData().GetIndex(ii)
			if ret == nil {
				continue
			} else {
				index_ := ret
				if updateIdxs == nil || samehada_util.IsContainList[int](updateIdxs, ii) {
					if new_rid != nil {
						// when tuple is moved page location on update, RID is changed to new value
						// so the entry under the old RID is removed and one under the new RID inserted

						index_.DeleteEntry(t, *rid, e.txn)
						index_.InsertEntry(updateTuple, *new_rid, e.txn)
					} else {
						index_.DeleteEntry(t, *rid, e.txn)
						//index_.InsertEntry(new_tuple, *rid, e.txn)
						index_.InsertEntry(updateTuple, *rid, e.txn)
					}
				} else {
					if new_rid != nil {
						// when tuple is moved page location on update, RID is changed to new value
						// so the entry under the old RID is removed and one under the new RID inserted

						//index_.InsertEntry(t, *new_rid, e.txn)
						index_.DeleteEntry(t, *rid, e.txn)
						index_.InsertEntry(updateTuple, *new_rid, e.txn)
					} else {
						// update is not needed
					}
				}
			}
		}

		e.txn.AddIntoWriteSet(access.NewWriteRecord(*rid, access.UPDATE, t, e.child.GetTableMetaData().Table(), e.child.GetTableMetaData().OID()))

		return new_tuple, false, nil
	}

	return nil, true, nil
}

//// select evaluates an expression on the tuple
//func (e *UpdateExecutor) selects(tuple *tuple.Tuple, predicate expression.Expression) bool {
//	return predicate == nil || predicate.Evaluate(tuple, e.child.GetTableMetaData().Schema()).ToBoolean()
//}

func (e *UpdateExecutor) GetOutputSchema() *schema.Schema {
	return e.plan.OutputSchema()
}

func (e *UpdateExecutor) GetTableMetaData() *catalog.TableMetadata {
	//return e.tableMetadata
	return e.child.GetTableMetaData()
}
