// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"container/list"
	"sync"
)

// FrameID is the type for frame id
type FrameID uint32

// LRUReplacer tracks every unpinned buffer frame and picks a victim for
// eviction in strict least-recently-used order. wait_list holds frame
// ids ordered by recency, most-recently-unpinned at the front; page2iter
// is the map of frame id to its element in wait_list, so Pin and a
// repeat Unpin can find and remove it in O(1).
type LRUReplacer struct {
	mutex     sync.Mutex
	wait_list *list.List
	page2iter map[FrameID]*list.Element
}

// NewLRUReplacer instantiates a new LRU replacer. poolSize bounds how
// many frames it will ever be asked to track; the list itself grows
// and shrinks with Unpin/Victim rather than being preallocated to it.
func NewLRUReplacer(poolSize uint32) *LRUReplacer {
	return &LRUReplacer{
		wait_list: list.New(),
		page2iter: make(map[FrameID]*list.Element),
	}
}

// Victim removes the least-recently-unpinned frame and returns it, or
// nil if no frame is currently evictable.
func (r *LRUReplacer) Victim() *FrameID {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	back := r.wait_list.Back()
	if back == nil {
		return nil
	}

	frameID := back.Value.(FrameID)
	r.wait_list.Remove(back)
	delete(r.page2iter, frameID)
	return &frameID
}

// Unpin marks id evictable. It only records the transition into the
// evictable set: if id is already tracked, this is a no-op and its
// recency is left untouched.
func (r *LRUReplacer) Unpin(id FrameID) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.page2iter[id]; ok {
		return
	}
	r.page2iter[id] = r.wait_list.PushFront(id)
}

// Pin removes id from the evictable set, indicating that it should not
// be victimized until it is unpinned again. No-op if id isn't tracked.
func (r *LRUReplacer) Pin(id FrameID) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	elem, ok := r.page2iter[id]
	if !ok {
		return
	}
	r.wait_list.Remove(elem)
	delete(r.page2iter, id)
}

// Size returns the number of frames currently eligible for eviction.
func (r *LRUReplacer) Size() uint32 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return uint32(r.wait_list.Len())
}
