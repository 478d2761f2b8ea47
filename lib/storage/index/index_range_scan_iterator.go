package index

import (
	"github.com/komorebi-db/komorebi/lib/storage/page"
	"github.com/komorebi-db/komorebi/lib/types"
)

type IndexRangeScanIterator interface {
	Next() (bool, error, *types.Value, *page.RID)
}
