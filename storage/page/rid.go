package page

import "github.com/komorebi-db/komorebi/types"

// RID is the record identifier for the given page identifier and slot number
type RID struct {
	pageId  types.PageID
	slotNum uint32
}

func NewRID(pageId types.PageID, slot uint32) *RID {
	return &RID{pageId, slot}
}

// Set sets the recod identifier
func (r *RID) Set(pageId types.PageID, slot uint32) {
	r.pageId = pageId
	r.slotNum = slot
}

// GetPageId gets the page id
func (r *RID) GetPageId() types.PageID {
	return r.pageId
}

// GetSlot gets the slot number
func (r *RID) GetSlot() uint32 {
	return r.slotNum
}

// GetSlotNum is an alias for GetSlot kept for callers ported from the
// upstream C++ naming convention.
func (r *RID) GetSlotNum() uint32 {
	return r.slotNum
}
