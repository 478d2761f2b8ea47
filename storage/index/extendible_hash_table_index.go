package index

import (
	"github.com/komorebi-db/komorebi/container/hash"
	"github.com/komorebi-db/komorebi/samehada/samehada_util"
	"github.com/komorebi-db/komorebi/storage/buffer"
	"github.com/komorebi-db/komorebi/storage/page"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
)

// ExtendibleHashTableIndex is a secondary index backed by an extendible
// hash table: point lookups and equality scans only, no ordering, but
// O(1) GetValue/Insert/Remove, and unlike the fixed-size linear-probe
// table next to it the directory grows as buckets split. Grounded on
// extendible_hash_table.cpp's LinearProbeHashTableIndex sibling sketch
// in linear_probe_hash_table_index.go.
type ExtendibleHashTableIndex struct {
	container   *hash.ExtendibleHashTable
	metadata    *IndexMetadata
	tupleSchema *schema.Schema
	col_idx     uint32
}

func NewExtendibleHashTableIndex(metadata *IndexMetadata, bpm *buffer.BufferPoolManager, tupleSchema *schema.Schema, col_idx uint32) *ExtendibleHashTableIndex {
	ret := new(ExtendibleHashTableIndex)
	ret.container = hash.NewExtendibleHashTable(bpm)
	ret.metadata = metadata
	ret.tupleSchema = tupleSchema
	ret.col_idx = col_idx
	return ret
}

func (hidx *ExtendibleHashTableIndex) InsertEntry(t *tuple.Tuple, rid page.RID, txn interface{}) {
	key := t.GetValue(hidx.tupleSchema, hidx.col_idx)
	hidx.container.Insert(key.Serialize(), samehada_util.PackRIDtoUint32(&rid))
}

func (hidx *ExtendibleHashTableIndex) DeleteEntry(t *tuple.Tuple, rid page.RID, txn interface{}) {
	key := t.GetValue(hidx.tupleSchema, hidx.col_idx)
	hidx.container.Remove(key.Serialize(), samehada_util.PackRIDtoUint32(&rid))
}

// ScanKey returns every RID stored under the value t holds in the indexed
// column.
func (hidx *ExtendibleHashTableIndex) ScanKey(t *tuple.Tuple) []page.RID {
	key := t.GetValue(hidx.tupleSchema, hidx.col_idx)
	packed := hidx.container.GetValue(key.Serialize())

	result := make([]page.RID, 0, len(packed))
	for _, p := range packed {
		rid := samehada_util.UnpackUint32toRID(p)
		result = append(result, rid)
	}
	return result
}

func (hidx *ExtendibleHashTableIndex) GetMetadata() *IndexMetadata { return hidx.metadata }

func (hidx *ExtendibleHashTableIndex) GetGlobalDepth() uint32 { return hidx.container.GetGlobalDepth() }

func (hidx *ExtendibleHashTableIndex) VerifyIntegrity() { hidx.container.VerifyIntegrity() }
