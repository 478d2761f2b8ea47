// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
	"github.com/komorebi-db/komorebi/types"
)

// NestedLoopJoinExecutor evaluates a join predicate between every left
// tuple and every right tuple, pulling from both children. It never
// materializes either side: the right child is rewound with Init for each
// new left tuple, matching a true pull-based nested loop.
type NestedLoopJoinExecutor struct {
	context   *ExecutorContext
	plan      *plans.NestedLoopJoinPlanNode
	left      Executor
	right     Executor
	leftTuple *tuple.Tuple
	leftDone  bool
}

func NewNestedLoopJoinExecutor(exec_ctx *ExecutorContext, plan *plans.NestedLoopJoinPlanNode, left Executor,
	right Executor) *NestedLoopJoinExecutor {
	return &NestedLoopJoinExecutor{exec_ctx, plan, left, right, nil, false}
}

func (e *NestedLoopJoinExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

func (e *NestedLoopJoinExecutor) Init() {
	e.left.Init()
	e.right.Init()

	t, done, _ := e.left.Next()
	e.leftTuple = t
	e.leftDone = done
}

func (e *NestedLoopJoinExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.leftDone {
		return nil, true, nil
	}

	for {
		rightTuple, rightDone, err := e.right.Next()
		if err != nil {
			return nil, true, err
		}
		if rightDone {
			nextLeft, leftDone, err := e.left.Next()
			if err != nil {
				return nil, true, err
			}
			if leftDone {
				e.leftDone = true
				return nil, true, nil
			}
			e.leftTuple = nextLeft
			e.right.Init()
			continue
		}

		pred := e.plan.OnPredicate()
		matched := pred == nil || pred.EvaluateJoin(e.leftTuple, e.left.GetOutputSchema(), rightTuple, e.right.GetOutputSchema()).ToBoolean()
		if matched {
			return e.MakeOutputTuple(e.leftTuple, rightTuple), false, nil
		}
	}
}

func (e *NestedLoopJoinExecutor) MakeOutputTuple(left_tuple *tuple.Tuple, right_tuple *tuple.Tuple) *tuple.Tuple {
	outputColumnCnt := int(e.GetOutputSchema().GetColumnCount())
	leftColumnCnt := int(e.left.GetOutputSchema().GetColumnCount())
	values := make([]types.Value, outputColumnCnt)
	for ii := 0; ii < outputColumnCnt; ii++ {
		if ii < leftColumnCnt {
			values[ii] = left_tuple.GetValue(e.left.GetOutputSchema(), uint32(ii))
		} else {
			values[ii] = right_tuple.GetValue(e.right.GetOutputSchema(), uint32(ii-leftColumnCnt))
		}
	}
	return tuple.NewTupleFromSchema(values, e.GetOutputSchema())
}

// can not be used
func (e *NestedLoopJoinExecutor) GetTableMetaData() *catalog.TableMetadata { return nil }
