package catalog_interface

import "github.com/komorebi-db/komorebi/storage/index"

type CatalogInterface interface {
	GetRollbackNeededIndexes(map[uint32][]index.Index, uint32) []index.Index
}
