package plans

// DistinctPlanNode removes duplicate rows from its child's output.
type DistinctPlanNode struct {
	*AbstractPlanNode
}

func NewDistinctPlanNode(child Plan) Plan {
	return &DistinctPlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}}
}

func (p *DistinctPlanNode) GetType() PlanType { return Distinct }

func (p *DistinctPlanNode) GetChildPlan() Plan { return p.GetChildAt(0) }
