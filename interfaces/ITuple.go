package interfaces

import (
	"github.com/komorebi-db/komorebi/storage/page"
	"github.com/komorebi-db/komorebi/types"
)

type ITuple interface {
	// NewTupleFromSchema creates a new tuple based on input value
	GetValue(schema *ISchema, colIndex uint32) types.Value
	Size() uint32
	Data() []byte
	GetRID() *page.RID
	Copy(offset uint32, data []byte)
}
