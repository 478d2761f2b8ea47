package executors

import (
	"github.com/komorebi-db/komorebi/catalog"
	"github.com/komorebi-db/komorebi/storage/table/schema"
	"github.com/komorebi-db/komorebi/storage/tuple"
)

// Done reports whether an executor's iteration has been exhausted. It is
// returned alongside every tuple from Next so callers can distinguish "no
// more tuples" from an in-progress result.
type Done = bool

// Executor is the pull-based (Volcano-style) interface every query
// operator implements. A plan tree is instantiated into a tree of
// executors; a parent calls Init once and then repeatedly calls Next on
// its children to pull tuples one at a time.
//
// Init initializes this executor.
// This function must be called before Next() is called!
//
// Next produces the next tuple from this executor, or reports Done=true
// once the executor is exhausted.
type Executor interface {
	Init()
	Next() (*tuple.Tuple, Done, error)
	GetOutputSchema() *schema.Schema
	GetTableMetaData() *catalog.TableMetadata
}
