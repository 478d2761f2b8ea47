package executors

import (
	"testing"

	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/execution/expression"
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/storage/table/column"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/testing/testing_util"
	"github.com/komorebi-db/komorebi/types"

	testingpkg "github.com/komorebi-db/komorebi/testing"
)

type Column struct {
	Name string
	Kind types.TypeID
}

type Predicate struct {
	LeftColumn  string
	Operator    expression.ComparisonType
	RightColumn interface{}
}

type Assertion struct {
	Column string
	Exp    interface{}
}

type SeqScanTestCase struct {
	Description     string
	ExecutionEngine *ExecutionEngine
	ExecutorContext *ExecutorContext
	TableMetadata   *catalog.TableMetadata
	Columns         []Column
	Predicate       Predicate
	Asserts         []Assertion
	TotalHits       uint32
}

func ExecuteSeqScanTestCase(t *testing.T, testCase SeqScanTestCase) {
	columns := []*column.Column{}
	for _, c := range testCase.Columns {
		columns = append(columns, column.NewColumn(c.Name, c.Kind, false))
	}
	outSchema := schema.NewSchema(columns)

	leftColIdx := testCase.TableMetadata.Schema().GetColIndex(testCase.Predicate.LeftColumn)
	rightVal := testing_util.GetValue(testCase.Predicate.RightColumn)
	leftColVal := expression.NewColumnValue(0, leftColIdx, rightVal.ValueType())
	rightConst := expression.NewConstantValue(rightVal, rightVal.ValueType())
	predicate := expression.NewComparison(leftColVal, rightConst, testCase.Predicate.Operator, types.Boolean)

	seqPlan := plans.NewSeqScanPlanNode(outSchema, predicate, testCase.TableMetadata.OID())

	results, err := testCase.ExecutionEngine.Execute(seqPlan, testCase.ExecutorContext)
	testingpkg.Ok(t, err)

	testingpkg.Equals(t, testCase.TotalHits, uint32(len(results)))
	for _, assert := range testCase.Asserts {
		colIndex := outSchema.GetColIndex(assert.Column)
		expVal := testing_util.GetValue(assert.Exp)
		testingpkg.Assert(t, expVal.CompareEquals(results[0].GetValue(outSchema, colIndex)), "value on column %s did not match expectation", assert.Column)
	}
}
