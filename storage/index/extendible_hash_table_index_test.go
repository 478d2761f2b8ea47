package index

import (
	"testing"

	"github.com/komorebi-db/komorebi/storage/buffer"
	"github.com/komorebi-db/komorebi/storage/disk"
	"github.com/komorebi-db/komorebi/storage/page"
	"github.com/komorebi-db/komorebi/storage/table/column"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
	testingpkg "github.com/komorebi-db/komorebi/testing"
	"github.com/komorebi-db/komorebi/types"
)

func TestExtendibleHashTableIndexInsertAndScan(t *testing.T) {
	diskManager := disk.NewDiskManagerTest()
	defer diskManager.ShutDown()
	bpm := buffer.NewBufferPoolManager(20, diskManager)

	colA := column.NewColumn("a", types.Integer, false)
	colB := column.NewColumn("b", types.Varchar, false)
	tableSchema := schema.NewSchema([]*column.Column{colA, colB})

	metadata := NewIndexMetadata("idx_a", "t", tableSchema, []uint32{0})
	hidx := NewExtendibleHashTableIndex(metadata, bpm, tableSchema, 0)

	row := tuple.NewTupleFromSchema([]types.Value{types.NewInteger(42), types.NewVarchar("hello")}, tableSchema)
	rid := page.RID{PageId: 7, SlotNum: 3}

	hidx.InsertEntry(row, rid, nil)

	found := hidx.ScanKey(row)
	testingpkg.Equals(t, 1, len(found))
	testingpkg.Equals(t, rid.PageId, found[0].PageId)
	testingpkg.Equals(t, rid.SlotNum, found[0].SlotNum)

	hidx.DeleteEntry(row, rid, nil)
	testingpkg.Equals(t, 0, len(hidx.ScanKey(row)))

	bpm.FlushAllPages()
}
