package executors

import (
	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/container/hash"
	"github.com/komorebi-db/komorebi/execution/expression"
	"github.com/komorebi-db/komorebi/execution/plans"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
	"github.com/komorebi-db/komorebi/types"
)

// hashJoinEntry pairs the evaluated join keys of a left tuple with the
// tuple itself, so a bucket hit can be verified against a real key
// equality check rather than trusting the hash alone.
type hashJoinEntry struct {
	keys  []*types.Value
	tuple *tuple.Tuple
}

// SimpleHashJoinTable is an in-memory multimap from combined join-key hash
// to the left tuples that produced it. Kept entirely in memory: unlike the
// original implementation this never spills to a TmpTuplePage.
type SimpleHashJoinTable struct {
	buckets map[uint32][]hashJoinEntry
}

func NewSimpleHashJoinTable() *SimpleHashJoinTable {
	return &SimpleHashJoinTable{buckets: make(map[uint32][]hashJoinEntry)}
}

func (jht *SimpleHashJoinTable) Insert(h uint32, keys []*types.Value, t *tuple.Tuple) {
	jht.buckets[h] = append(jht.buckets[h], hashJoinEntry{keys, t})
}

func (jht *SimpleHashJoinTable) GetValue(h uint32) []hashJoinEntry {
	return jht.buckets[h]
}

// HashJoinExecutor performs an equi-join by building a hash table over the
// left child's join keys, then probing it once per right tuple.
type HashJoinExecutor struct {
	context      *ExecutorContext
	plan_        *plans.HashJoinPlanNode
	left_        Executor
	right_       Executor
	jht_         *SimpleHashJoinTable
	bucket_      []hashJoinEntry
	bucketIdx_   int
	rightTuple_  *tuple.Tuple
	rightKeys_   []*types.Value
}

func NewHashJoinExecutor(exec_ctx *ExecutorContext, plan *plans.HashJoinPlanNode, left Executor,
	right Executor) *HashJoinExecutor {
	return &HashJoinExecutor{
		context: exec_ctx,
		plan_:   plan,
		left_:   left,
		right_:  right,
		jht_:    NewSimpleHashJoinTable(),
	}
}

func (e *HashJoinExecutor) GetOutputSchema() *schema.Schema { return e.plan_.OutputSchema() }

func (e *HashJoinExecutor) Init() {
	e.left_.Init()
	e.right_.Init()

	for leftTuple, done, _ := e.left_.Next(); !done; leftTuple, done, _ = e.left_.Next() {
		keys := evaluateKeys(e.plan_.GetLeftKeys(), leftTuple, e.left_.GetOutputSchema())
		if h, ok := hashKeys(keys); ok {
			e.jht_.Insert(h, keys, leftTuple)
		}
	}
}

// Next probes the hash table with the next right tuple, returning every
// left tuple in its bucket whose keys actually match before advancing.
func (e *HashJoinExecutor) Next() (*tuple.Tuple, Done, error) {
	for {
		for e.bucketIdx_ == len(e.bucket_) {
			e.bucket_ = nil
			e.bucketIdx_ = 0

			rightTuple, done, err := e.right_.Next()
			if err != nil {
				return nil, true, err
			}
			if done {
				return nil, true, nil
			}
			e.rightTuple_ = rightTuple
			e.rightKeys_ = evaluateKeys(e.plan_.GetRightKeys(), rightTuple, e.right_.GetOutputSchema())
			if h, ok := hashKeys(e.rightKeys_); ok {
				e.bucket_ = e.jht_.GetValue(h)
			}
		}

		entry := e.bucket_[e.bucketIdx_]
		e.bucketIdx_++
		if keysEqual(entry.keys, e.rightKeys_) {
			return e.MakeOutputTuple(entry.tuple, e.rightTuple_), false, nil
		}
	}
}

func (e *HashJoinExecutor) MakeOutputTuple(left_tuple *tuple.Tuple, right_tuple *tuple.Tuple) *tuple.Tuple {
	outputColumnCnt := int(e.GetOutputSchema().GetColumnCount())
	leftColumnCnt := int(e.left_.GetOutputSchema().GetColumnCount())
	values := make([]types.Value, outputColumnCnt)
	for ii := 0; ii < outputColumnCnt; ii++ {
		if ii < leftColumnCnt {
			values[ii] = left_tuple.GetValue(e.left_.GetOutputSchema(), uint32(ii))
		} else {
			values[ii] = right_tuple.GetValue(e.right_.GetOutputSchema(), uint32(ii-leftColumnCnt))
		}
	}
	return tuple.NewTupleFromSchema(values, e.GetOutputSchema())
}

// can not be used
func (e *HashJoinExecutor) GetTableMetaData() *catalog.TableMetadata { return nil }

func evaluateKeys(exprs []expression.Expression, t *tuple.Tuple, s *schema.Schema) []*types.Value {
	keys := make([]*types.Value, len(exprs))
	for i, expr := range exprs {
		v := expr.Evaluate(t, s)
		keys[i] = &v
	}
	return keys
}

func hashKeys(keys []*types.Value) (uint32, bool) {
	var h uint32
	any := false
	for _, k := range keys {
		if k.IsNull() {
			continue
		}
		h = hash.CombineHashes(h, hash.HashValue(k))
		any = true
	}
	return h, any
}

func keysEqual(a, b []*types.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].IsNull() || b[i].IsNull() || !a[i].CompareEquals(*b[i]) {
			return false
		}
	}
	return true
}
