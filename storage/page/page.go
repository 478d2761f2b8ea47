// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"sync/atomic"

	"github.com/komorebi-db/komorebi/common"
	"github.com/komorebi-db/komorebi/types"
)

const SizePageHeader = 8
const OffsetPageStart = 0
const OffsetLSN = 4

// Page is the basic unit of storage within the database. It wraps a fixed
// size byte array held in memory by the buffer pool manager, plus the
// book-keeping the manager needs: pin count, dirty flag and a latch to
// serialize concurrent readers/writers of the page's bytes.
type Page struct {
	id       types.PageID
	pinCount int32
	isDirty  bool
	data     *[common.PageSize]byte
	rwlatch  common.ReaderWriterLatch
}

// New creates a page wrapping pre-loaded data, as read off disk.
func New(id types.PageID, isDirty bool, data *[common.PageSize]byte) *Page {
	return &Page{id, 1, isDirty, data, common.NewRWLatch()}
}

// NewEmpty creates a fresh zeroed page.
func NewEmpty(id types.PageID) *Page {
	return &Page{id, 1, false, &[common.PageSize]byte{}, common.NewRWLatch()}
}

func (p *Page) IncPinCount() {
	atomic.AddInt32(&p.pinCount, 1)
}

func (p *Page) DecPinCount() {
	if atomic.LoadInt32(&p.pinCount) > 0 {
		atomic.AddInt32(&p.pinCount, -1)
	}
}

func (p *Page) PinCount() int32 {
	return atomic.LoadInt32(&p.pinCount)
}

func (p *Page) GetPageId() types.PageID {
	return p.id
}

// ID is an alias for GetPageId kept for callers ported from brunocalza/go-bustub.
func (p *Page) ID() types.PageID {
	return p.id
}

func (p *Page) Data() *[common.PageSize]byte {
	return p.data
}

func (p *Page) GetData() *[common.PageSize]byte {
	return p.data
}

func (p *Page) SetIsDirty(isDirty bool) {
	p.isDirty = isDirty
}

func (p *Page) IsDirty() bool {
	return p.isDirty
}

// Copy copies data into the page's backing array at offset.
func (p *Page) Copy(offset uint32, data []byte) {
	copy(p.data[offset:], data)
}

func (p *Page) GetLSN() types.LSN {
	return types.NewLSNFromBytes(p.data[OffsetLSN : OffsetLSN+types.SizeOfLSN])
}

func (p *Page) SetLSN(lsn types.LSN) {
	copy(p.data[OffsetLSN:OffsetLSN+types.SizeOfLSN], lsn.Serialize())
}

// WLatch acquires the page's write latch. Buffer pool callers must hold
// this while mutating a page's bytes.
func (p *Page) WLatch() {
	p.rwlatch.WLock()
}

func (p *Page) WUnlatch() {
	p.rwlatch.WUnlock()
}

func (p *Page) RLatch() {
	p.rwlatch.RLock()
}

func (p *Page) RUnlatch() {
	p.rwlatch.RUnlock()
}

func (p *Page) PrintMutexDebugInfo() {
	p.rwlatch.PrintDebugInfo()
}
