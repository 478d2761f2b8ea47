package catalog_interface

import (
	"github.com/komorebi-db/komorebi/lib/storage/index"
	"github.com/komorebi-db/komorebi/lib/storage/tuple"
	"github.com/komorebi-db/komorebi/lib/types"
)

type CatalogInterface interface {
	GetRollbackNeededIndexes(indexMap map[uint32][]index.Index, oid uint32) []index.Index
	GetColValFromTupleForRollback(tuple_ *tuple.Tuple, colIdx uint32, oid uint32) *types.Value
}
