package plans

import (
	"github.com/komorebi-db/komorebi/types"
)

// UpdatePlanNode identifies a table whose rows should be overwritten with
// rawValues. The rows to update are whatever its single child (typically a
// filtered SeqScanPlanNode) produces; update_col_idxs restricts the update
// to a subset of columns when non-nil.
type UpdatePlanNode struct {
	*AbstractPlanNode
	rawValues       []types.Value
	update_col_idxs []int
	tableOID        uint32
}

func NewUpdatePlanNode(rawValues []types.Value, update_col_idxs []int, child Plan, oid uint32) Plan {
	return &UpdatePlanNode{&AbstractPlanNode{nil, []Plan{child}}, rawValues, update_col_idxs, oid}
}

func (p *UpdatePlanNode) GetTableOID() uint32 {
	return p.tableOID
}

func (p *UpdatePlanNode) GetType() PlanType {
	return Update
}

// GetRawValues returns the raw values to overwrite matched rows with.
func (p *UpdatePlanNode) GetRawValues() []types.Value {
	return p.rawValues
}

func (p *UpdatePlanNode) GetUpdateColIdxs() []int {
	return p.update_col_idxs
}
