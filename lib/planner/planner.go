package planner

import (
	"github.com/komorebi-db/komorebi/lib/execution/plans"
	"github.com/komorebi-db/komorebi/lib/parser"
	"github.com/komorebi-db/komorebi/lib/storage/access"
)

type Planner interface {
	MakePlan(*parser.QueryInfo, *access.Transaction) (error, plans.Plan)
}
