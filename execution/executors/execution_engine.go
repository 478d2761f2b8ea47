package executors

import (
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/storage/tuple"
)

// ExecutionEngine drives a plan tree to completion, materializing every
// tuple it produces. Real query paths pull from the top executor one
// tuple at a time; this exists for callers (tests, the REPL) that want
// the whole result set at once.
type ExecutionEngine struct {
}

func (e *ExecutionEngine) Execute(plan plans.Plan, context *ExecutorContext) ([]*tuple.Tuple, error) {
	executor := e.CreateExecutor(plan, context)
	executor.Init()

	tuples := make([]*tuple.Tuple, 0)
	for {
		t, done, err := executor.Next()
		if err != nil {
			return tuples, err
		}
		if done {
			break
		}
		tuples = append(tuples, t)
	}

	return tuples, nil
}

// CreateExecutor recursively builds the executor tree for plan, building
// every child executor before the parent so that joins and other
// multi-child operators can wire them in directly.
func (e *ExecutionEngine) CreateExecutor(plan plans.Plan, context *ExecutorContext) Executor {
	switch p := plan.(type) {
	case *plans.SeqScanPlanNode:
		return NewSeqScanExecutor(context, p)
	case *plans.InsertPlanNode:
		var child Executor
		if childPlan := p.GetChildAt(0); childPlan != nil {
			child = e.CreateExecutor(childPlan, context)
		}
		return NewInsertExecutor(context, p, child)
	case *plans.DeletePlanNode:
		child := e.CreateExecutor(p.GetChildAt(0), context)
		return NewDeleteExecutor(context, p, child)
	case *plans.UpdatePlanNode:
		child := e.CreateExecutor(p.GetChildAt(0), context)
		return NewUpdateExecutor(context, p, child)
	case *plans.NestedLoopJoinPlanNode:
		left := e.CreateExecutor(p.GetLeftPlan(), context)
		right := e.CreateExecutor(p.GetRightPlan(), context)
		return NewNestedLoopJoinExecutor(context, p, left, right)
	case *plans.HashJoinPlanNode:
		left := e.CreateExecutor(p.GetLeftPlan(), context)
		right := e.CreateExecutor(p.GetRightPlan(), context)
		return NewHashJoinExecutor(context, p, left, right)
	case *plans.AggregationPlanNode:
		child := e.CreateExecutor(p.GetChildPlan(), context)
		return NewAggregationExecutor(context, p, child)
	case *plans.DistinctPlanNode:
		child := e.CreateExecutor(p.GetChildPlan(), context)
		return NewDistinctExecutor(context, p, child)
	case *plans.LimitPlanNode:
		child := e.CreateExecutor(p.GetChildAt(0), context)
		return NewLimitExecutor(context, p, child)
	}
	return nil
}
