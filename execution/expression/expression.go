// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
	"github.com/komorebi-db/komorebi/types"
)

// ExpressionType identifies the concrete kind of an Expression node, used
// by callers that need to switch on shape (e.g. plan printing) without a
// type assertion.
type ExpressionType int

const (
	EXPRESSION_TYPE_CONSTANT_VALUE ExpressionType = iota
	EXPRESSION_TYPE_COLUMN_VALUE
	EXPRESSION_TYPE_COMPARISON
	EXPRESSION_TYPE_LOGICAL_OP
	EXPRESSION_TYPE_AGGREGATE_VALUE
)

/**
 * Expression interface is the base of all the expressions in the system.
 * Expressions are modeled as trees, i.e. every expression may have a variable number of children.
 */
type Expression interface {
	// Evaluate computes the value of this expression for the given tuple.
	Evaluate(*tuple.Tuple, *schema.Schema) types.Value
	// EvaluateJoin computes the value of this expression when it spans a
	// left and a right tuple, e.g. an ON predicate.
	EvaluateJoin(left_tuple *tuple.Tuple, left_schema *schema.Schema, right_tuple *tuple.Tuple, right_schema *schema.Schema) types.Value
	// EvaluateAggregate computes the value of this expression against an
	// aggregation's already-reduced group-by and aggregate values.
	EvaluateAggregate(group_bys []*types.Value, aggregates []*types.Value) types.Value
	// GetChildAt returns the child_idx'th child of this expression, or nil
	// if there is none at that index.
	GetChildAt(child_idx uint32) Expression
	// GetReturnType returns the type this expression evaluates to.
	GetReturnType() types.TypeID
	// GetType identifies the concrete expression kind.
	GetType() ExpressionType
}
