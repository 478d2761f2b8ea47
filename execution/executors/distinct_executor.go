package executors

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
)

// DistinctExecutor removes duplicate rows from its child's output. A row's
// identity is the serialized byte string of its full value vector, tracked
// in a set rather than the original's unordered_map<DistinctKey, count> —
// only presence matters here, never a count.
type DistinctExecutor struct {
	context *ExecutorContext
	plan    *plans.DistinctPlanNode
	child   Executor
	seen    mapset.Set[string]
}

func NewDistinctExecutor(exec_ctx *ExecutorContext, plan *plans.DistinctPlanNode, child Executor) *DistinctExecutor {
	return &DistinctExecutor{exec_ctx, plan, child, mapset.NewSet[string]()}
}

func (e *DistinctExecutor) Init() {
	e.child.Init()
	e.seen = mapset.NewSet[string]()
}

func (e *DistinctExecutor) Next() (*tuple.Tuple, Done, error) {
	for {
		t, done, err := e.child.Next()
		if err != nil {
			return nil, true, err
		}
		if done {
			return nil, true, nil
		}

		key := e.makeDistinctKey(t)
		if e.seen.Contains(key) {
			continue
		}
		e.seen.Add(key)
		return t, false, nil
	}
}

func (e *DistinctExecutor) makeDistinctKey(t *tuple.Tuple) string {
	s := e.child.GetOutputSchema()
	var buf []byte
	for i := uint32(0); i < s.GetColumnCount(); i++ {
		v := t.GetValue(s, i)
		buf = append(buf, v.Serialize()...)
	}
	return string(buf)
}

func (e *DistinctExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *DistinctExecutor) GetTableMetaData() *catalog.TableMetadata { return nil }
