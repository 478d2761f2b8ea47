// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
	"github.com/komorebi-db/komorebi/types"
)

type ComparisonType int

/** ComparisonType represents the type of comparison that we want to perform. */
const (
	Equal ComparisonType = iota
	NotEqual
)

/**
 * ComparisonExpression represents two expressions being compared.
 */
type Comparison struct {
	comparisonType ComparisonType
	children_left  Expression
	children_right Expression
	ret_type       types.TypeID
}

func NewComparison(left Expression, right Expression, comparisonType ComparisonType, ret_type types.TypeID) Expression {
	return &Comparison{comparisonType, left, right, ret_type}
}

func NewComparisonAsComparison(left Expression, right Expression, comparisonType ComparisonType, ret_type types.TypeID) *Comparison {
	return &Comparison{comparisonType, left, right, ret_type}
}

func (c *Comparison) Evaluate(tuple *tuple.Tuple, schema *schema.Schema) types.Value {
	lhs := c.children_left.Evaluate(tuple, schema)
	rhs := c.children_right.Evaluate(tuple, schema)
	return types.NewBoolean(c.performComparison(lhs, rhs))
}

func (c *Comparison) performComparison(lhs types.Value, rhs types.Value) bool {
	switch c.comparisonType {
	case Equal:
		return lhs.CompareEquals(rhs)
	case NotEqual:
		return lhs.CompareNotEquals(rhs)
	}
	return false
}

func (c *Comparison) GetLeftSideColIdx() uint32 {
	return c.children_left.(*ColumnValue).colIndex
}

func (c *Comparison) GetRightSideValue(tuple *tuple.Tuple, schema *schema.Schema) types.Value {
	return c.children_right.Evaluate(tuple, schema)
}

func (c *Comparison) GetComparisonType() ComparisonType {
	return c.comparisonType
}

func (c *Comparison) EvaluateJoin(left_tuple *tuple.Tuple, left_schema *schema.Schema, right_tuple *tuple.Tuple, right_schema *schema.Schema) types.Value {
	lhs := c.children_left.EvaluateJoin(left_tuple, left_schema, right_tuple, right_schema)
	rhs := c.children_right.EvaluateJoin(left_tuple, left_schema, right_tuple, right_schema)
	return types.NewBoolean(c.performComparison(lhs, rhs))
}

func (c *Comparison) EvaluateAggregate(group_bys []*types.Value, aggregates []*types.Value) types.Value {
	lhs := c.children_left.EvaluateAggregate(group_bys, aggregates)
	rhs := c.children_right.EvaluateAggregate(group_bys, aggregates)
	return types.NewBoolean(c.performComparison(lhs, rhs))
}

func (c *Comparison) GetChildAt(child_idx uint32) Expression {
	if child_idx == 0 {
		return c.children_left
	}
	if child_idx == 1 {
		return c.children_right
	}
	return nil
}

func (c *Comparison) GetReturnType() types.TypeID { return c.ret_type }

func (c *Comparison) GetType() ExpressionType { return EXPRESSION_TYPE_COMPARISON }
