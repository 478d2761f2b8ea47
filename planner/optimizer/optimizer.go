package optimizer

import (
	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/parser"
	"github.com/komorebi-db/komorebi/storage/table/schema"
)

type Optimizer interface {
	// TODO: (SDB) need adding appropriate arguments and return values
	bestScan(*parser.SelectFieldExpression, *parser.BinaryOpExpression, *schema.Schema, *catalog.Catalog, *catalog.TableStatistics) (plans.Plan, error)
	bestJoin(*parser.BinaryOpExpression, plans.Plan, plans.Plan) (plans.Plan, error)
	Optimize() (plans.Plan, error)
}
