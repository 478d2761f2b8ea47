package catalog

import (
	"github.com/komorebi-db/komorebi/storage/access"
	"github.com/komorebi-db/komorebi/storage/index"
	"github.com/komorebi-db/komorebi/storage/table/schema"
)

// TableMetadata binds a table's schema and heap storage together with the
// set of indexes (if any) built on its columns. Concrete index
// implementations live under storage/index.
type TableMetadata struct {
	schema  *schema.Schema
	name    string
	table   *access.TableHeap
	oid     uint32
	indexes map[uint32]index.Index
}

func (t *TableMetadata) Schema() *schema.Schema {
	return t.schema
}

func (t *TableMetadata) OID() uint32 {
	return t.oid
}

func (t *TableMetadata) Table() *access.TableHeap {
	return t.table
}

func (t *TableMetadata) GetColumnNum() uint32 {
	return t.schema.GetColumnCount()
}

// GetIndex returns the index built on the column at colIdx, or nil if no
// such index exists.
func (t *TableMetadata) GetIndex(colIdx int) index.Index {
	if t.indexes == nil {
		return nil
	}
	return t.indexes[uint32(colIdx)]
}

// CreateIndex registers idx as the index maintained on the column at colIdx.
func (t *TableMetadata) CreateIndex(colIdx uint32, idx index.Index) {
	if t.indexes == nil {
		t.indexes = make(map[uint32]index.Index)
	}
	t.indexes[colIdx] = idx
}
