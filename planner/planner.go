package planner

import (
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/parser"
	"github.com/komorebi-db/komorebi/storage/access"
)

type Planner interface {
	MakePlan(*parser.QueryInfo, *access.Transaction) *plans.Plan
}
