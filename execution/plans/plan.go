package plans

import "github.com/komorebi-db/komorebi/storage/table/schema"

type PlanType int

const (
	SeqScan PlanType = iota
	Insert
	Delete
	Update
	NestedLoopJoin
	HashJoin
	Aggregation
	Distinct
	Limit
)

// Plan is the root of a query plan tree. Every executor is built from one
// plan node; children are other plan nodes, pulled from in Volcano style.
type Plan interface {
	OutputSchema() *schema.Schema
	GetChildAt(childIndex uint32) Plan
	GetChildren() []Plan
	GetType() PlanType
}

// AbstractPlanNode holds the state common to every plan node: its output
// schema and its children. Concrete plan nodes embed this and add only
// what is specific to their operator.
type AbstractPlanNode struct {
	outputSchema *schema.Schema
	children     []Plan
}

func (p *AbstractPlanNode) OutputSchema() *schema.Schema { return p.outputSchema }

func (p *AbstractPlanNode) GetChildAt(childIndex uint32) Plan {
	if int(childIndex) >= len(p.children) {
		return nil
	}
	return p.children[childIndex]
}

func (p *AbstractPlanNode) GetChildren() []Plan { return p.children }
