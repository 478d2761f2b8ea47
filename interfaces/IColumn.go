package interfaces

import "github.com/komorebi-db/komorebi/types"

type IColumn interface {
	IsInlined() bool
	GetType() types.TypeID
	GetOffset() uint32
	FixedLength() uint32
	VariableLength() uint32
	GetColumnName() string
}
