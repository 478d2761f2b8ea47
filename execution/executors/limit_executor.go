package executors

import (
	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
)

// LimitExecutor skips GetOffset() rows from its child then yields at most
// GetLimit() rows after that.
type LimitExecutor struct {
	context  *ExecutorContext
	plan     *plans.LimitPlanNode
	child    Executor
	skipped  uint32
	yielded  uint32
}

func NewLimitExecutor(exec_ctx *ExecutorContext, plan *plans.LimitPlanNode, child Executor) *LimitExecutor {
	return &LimitExecutor{exec_ctx, plan, child, 0, 0}
}

func (e *LimitExecutor) Init() {
	e.child.Init()
	e.skipped = 0
	e.yielded = 0
}

func (e *LimitExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.yielded >= e.plan.GetLimit() {
		return nil, true, nil
	}

	for e.skipped < e.plan.GetOffset() {
		_, done, err := e.child.Next()
		if err != nil {
			return nil, true, err
		}
		if done {
			return nil, true, nil
		}
		e.skipped++
	}

	t, done, err := e.child.Next()
	if err != nil {
		return nil, true, err
	}
	if done {
		return nil, true, nil
	}
	e.yielded++
	return t, false, nil
}

func (e *LimitExecutor) GetOutputSchema() *schema.Schema { return e.child.GetOutputSchema() }

func (e *LimitExecutor) GetTableMetaData() *catalog.TableMetadata { return nil }
