package index

import (
	"github.com/komorebi-db/komorebi/storage/page"
	"github.com/komorebi-db/komorebi/types"
)

type IndexRangeScanIterator interface {
	Next() (bool, error, *types.Value, *page.RID)
}
