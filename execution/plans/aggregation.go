package plans

import (
	"github.com/komorebi-db/komorebi/common"
	"github.com/komorebi-db/komorebi/execution/expression"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/types"
)

// AggregationType enumerates all the possible aggregation functions in the
// executor: COUNT(), SUM(), MIN() and MAX().
type AggregationType int32

const (
	COUNT_AGGREGATE AggregationType = iota
	SUM_AGGREGATE
	MIN_AGGREGATE
	MAX_AGGREGATE
)

// AggregationPlanNode represents a SQL aggregation: a single child feeds
// tuples that are grouped by group_bys_ and reduced by aggregates_/agg_types_,
// with having_ applied after the reduction completes.
type AggregationPlanNode struct {
	*AbstractPlanNode
	having_     expression.Expression
	group_bys_  []expression.Expression
	aggregates_ []expression.Expression
	agg_types_  []AggregationType
}

func NewAggregationPlanNode(output_schema *schema.Schema, child Plan, having expression.Expression,
	group_bys []expression.Expression, aggregates []expression.Expression, agg_types []AggregationType) *AggregationPlanNode {
	return &AggregationPlanNode{&AbstractPlanNode{output_schema, []Plan{child}}, having, group_bys, aggregates, agg_types}
}

func (p *AggregationPlanNode) GetType() PlanType { return Aggregation }

// GetChildPlan returns the child of this aggregation plan node.
func (p *AggregationPlanNode) GetChildPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 1, "Aggregation expected to only have one child.")
	return p.GetChildAt(0)
}

func (p *AggregationPlanNode) GetHaving() expression.Expression { return p.having_ }

func (p *AggregationPlanNode) GetGroupByAt(idx uint32) expression.Expression { return p.group_bys_[idx] }

func (p *AggregationPlanNode) GetGroupBys() []expression.Expression { return p.group_bys_ }

func (p *AggregationPlanNode) GetAggregateAt(idx uint32) expression.Expression { return p.aggregates_[idx] }

func (p *AggregationPlanNode) GetAggregates() []expression.Expression { return p.aggregates_ }

func (p *AggregationPlanNode) GetAggregateTypes() []AggregationType { return p.agg_types_ }

// AggregateKey is the group-by portion of a hash aggregation's key: the
// evaluated group-by expressions for one input tuple.
type AggregateKey struct {
	Group_bys_ []*types.Value
}

// CompareEquals compares two aggregate keys for equality.
func (key AggregateKey) CompareEquals(other AggregateKey) bool {
	if len(key.Group_bys_) != len(other.Group_bys_) {
		return false
	}
	for i := range key.Group_bys_ {
		if !key.Group_bys_[i].CompareEquals(*other.Group_bys_[i]) {
			return false
		}
	}
	return true
}

// AggregateValue is the running reduction for one group: one value per
// aggregate expression in the plan.
type AggregateValue struct {
	Aggregates_ []*types.Value
}
