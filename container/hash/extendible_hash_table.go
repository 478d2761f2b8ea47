// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package hash

import (
	"unsafe"

	"github.com/komorebi-db/komorebi/common"
	"github.com/komorebi-db/komorebi/storage/buffer"
	"github.com/komorebi-db/komorebi/storage/page"
	"github.com/komorebi-db/komorebi/types"
)

/**
 * Implementation of extendible hashing, which grows the number of buckets
 * by doubling the directory and splitting only the bucket that overflowed,
 * instead of rehashing the whole table like the linear-probe table next
 * to it does. Non-unique keys are supported; insertion hands off to
 * SplitInsert whenever the target bucket is full, grounded on
 * extendible_hash_table.cpp.
 */
type ExtendibleHashTable struct {
	bpm             *buffer.BufferPoolManager
	directoryPageId types.PageID
	table_latch     common.ReaderWriterLatch
}

// NewExtendibleHashTable allocates a directory page with two buckets, both
// at local depth 1, and a directory at global depth 1.
func NewExtendibleHashTable(bpm *buffer.BufferPoolManager) *ExtendibleHashTable {
	dirPage := bpm.NewPage()
	dirData := (*page.HashTableDirectoryPage)(unsafe.Pointer(dirPage.Data()))

	bucket0 := bpm.NewPage()
	bucket1 := bpm.NewPage()
	dirData.SetBucketPageId(0, bucket0.ID())
	dirData.SetLocalDepth(0, 1)
	dirData.SetBucketPageId(1, bucket1.ID())
	dirData.SetLocalDepth(1, 1)
	dirData.IncrGlobalDepth()
	dirData.SetPageId(dirPage.ID())

	bpm.UnpinPage(dirPage.ID(), true)
	bpm.UnpinPage(bucket0.ID(), false)
	bpm.UnpinPage(bucket1.ID(), false)

	return &ExtendibleHashTable{bpm, dirPage.ID(), common.NewRWLatch()}
}

func (ht *ExtendibleHashTable) fetchDirectoryPage() *page.HashTableDirectoryPage {
	data := ht.bpm.FetchPage(ht.directoryPageId).Data()
	return (*page.HashTableDirectoryPage)(unsafe.Pointer(data))
}

func (ht *ExtendibleHashTable) fetchBucketPage(bucketPageId types.PageID) *page.HashTableBucketPage {
	data := ht.bpm.FetchPage(bucketPageId).Data()
	return (*page.HashTableBucketPage)(unsafe.Pointer(data))
}

func (ht *ExtendibleHashTable) keyToDirectoryIndex(hash uint32, dir *page.HashTableDirectoryPage) uint32 {
	return hash & dir.GetGlobalDepthMask()
}

func (ht *ExtendibleHashTable) keyToPageId(hash uint32, dir *page.HashTableDirectoryPage) types.PageID {
	return dir.GetBucketPageId(ht.keyToDirectoryIndex(hash, dir))
}

// GetValue returns every value stored under key.
func (ht *ExtendibleHashTable) GetValue(key []byte) []uint32 {
	ht.table_latch.RLock()
	defer ht.table_latch.RUnlock()

	hash := GenHashMurMur(key)
	dir := ht.fetchDirectoryPage()
	bucketPageId := ht.keyToPageId(hash, dir)
	bucket := ht.fetchBucketPage(bucketPageId)

	result := []uint32{}
	bucket.GetValue(hash, &result)

	ht.bpm.UnpinPage(bucketPageId, false)
	ht.bpm.UnpinPage(ht.directoryPageId, false)
	return result
}

// Insert adds key/value to the table, splitting the target bucket (and
// growing the directory, if needed) when it is full.
func (ht *ExtendibleHashTable) Insert(key []byte, value uint32) bool {
	ht.table_latch.RLock()

	hash := GenHashMurMur(key)
	dir := ht.fetchDirectoryPage()
	bucketPageId := ht.keyToPageId(hash, dir)
	bucket := ht.fetchBucketPage(bucketPageId)

	if bucket.IsFull() {
		ht.bpm.UnpinPage(bucketPageId, false)
		ht.bpm.UnpinPage(ht.directoryPageId, false)
		ht.table_latch.RUnlock()
		return ht.splitInsert(key, value)
	}

	success := bucket.Insert(hash, value)
	ht.bpm.UnpinPage(bucketPageId, success)
	ht.bpm.UnpinPage(ht.directoryPageId, false)
	ht.table_latch.RUnlock()
	return success
}

// splitInsert grows the table one split at a time until key/value fits.
// Splitting may itself require growing the directory (doubling global
// depth) when the overflowing bucket's local depth already equals it.
func (ht *ExtendibleHashTable) splitInsert(key []byte, value uint32) bool {
	ht.table_latch.WLock()
	defer ht.table_latch.WUnlock()

	hash := GenHashMurMur(key)
	dir := ht.fetchDirectoryPage()
	isGrowing := false
	success := false

	for {
		oldGlobalDepth := dir.GetGlobalDepth()
		bucketIdx := ht.keyToDirectoryIndex(hash, dir)
		bucketPageId := ht.keyToPageId(hash, dir)
		bucket := ht.fetchBucketPage(bucketPageId)

		if !bucket.IsFull() {
			success = bucket.Insert(hash, value)
			ht.bpm.UnpinPage(bucketPageId, true)
			break
		}

		if dir.GetLocalDepth(bucketIdx) == dir.GetGlobalDepth() {
			dir.IncrGlobalDepth()
			isGrowing = true
		}

		dir.IncrLocalDepth(bucketIdx)
		splitBucketIdx := dir.GetSplitImageIndex(bucketIdx)
		splitPage := ht.bpm.NewPage()
		splitBucket := (*page.HashTableBucketPage)(unsafe.Pointer(splitPage.Data()))
		dir.SetBucketPageId(splitBucketIdx, splitPage.ID())
		dir.SetLocalDepth(splitBucketIdx, dir.GetLocalDepth(bucketIdx))

		localMask := (uint32(1) << dir.GetLocalDepth(bucketIdx)) - 1
		for i := 0; i < page.BucketArraySize; i++ {
			if !bucket.IsReadable(i) {
				continue
			}
			entryHash := bucket.KeyAt(i)
			whichBucket := entryHash & localMask
			if whichBucket == splitBucketIdx {
				bucket.RemoveAt(i)
				splitBucket.Insert(entryHash, bucket.ValueAt(i))
			}
		}
		ht.bpm.UnpinPage(splitPage.ID(), true)

		if isGrowing {
			for i := uint32(1) << oldGlobalDepth; i < dir.Size(); i++ {
				if i == splitBucketIdx {
					continue
				}
				redirectIdx := i & ((uint32(1) << oldGlobalDepth) - 1)
				dir.SetBucketPageId(i, dir.GetBucketPageId(redirectIdx))
				dir.SetLocalDepth(i, dir.GetLocalDepth(redirectIdx))
			}
		} else {
			for i := uint32(0); i < dir.Size(); i++ {
				if i == bucketIdx || i == splitBucketIdx {
					continue
				}
				if dir.GetBucketPageId(i) == bucketPageId {
					dir.SetLocalDepth(i, dir.GetLocalDepth(bucketIdx))
					if (i & dir.GetLocalDepthMask(splitBucketIdx)) == (splitBucketIdx & dir.GetLocalDepthMask(splitBucketIdx)) {
						dir.SetBucketPageId(i, splitPage.ID())
					}
				}
			}
		}

		ht.bpm.UnpinPage(bucketPageId, true)
	}

	ht.bpm.UnpinPage(ht.directoryPageId, isGrowing)
	return success
}

// Remove deletes key/value, merging the bucket's split image back in if
// doing so leaves it empty.
func (ht *ExtendibleHashTable) Remove(key []byte, value uint32) bool {
	ht.table_latch.RLock()

	hash := GenHashMurMur(key)
	dir := ht.fetchDirectoryPage()
	bucketPageId := ht.keyToPageId(hash, dir)
	bucket := ht.fetchBucketPage(bucketPageId)

	success := bucket.Remove(hash, value)

	if success && bucket.IsEmpty() {
		ht.bpm.UnpinPage(bucketPageId, success)
		ht.bpm.UnpinPage(ht.directoryPageId, false)
		ht.table_latch.RUnlock()
		ht.merge()
		return success
	}

	ht.bpm.UnpinPage(bucketPageId, success)
	ht.bpm.UnpinPage(ht.directoryPageId, false)
	ht.table_latch.RUnlock()
	return success
}

// merge sweeps the whole directory, collapsing any bucket that has become
// empty into its split image when they share a local depth, and shrinking
// the directory whenever every bucket's local depth allows it.
func (ht *ExtendibleHashTable) merge() {
	ht.table_latch.WLock()
	defer ht.table_latch.WUnlock()

	dir := ht.fetchDirectoryPage()

	for i := uint32(0); i < dir.Size(); i++ {
		oldLocalDepth := dir.GetLocalDepth(i)
		bucketPageId := dir.GetBucketPageId(i)
		bucket := ht.fetchBucketPage(bucketPageId)

		if oldLocalDepth > 1 && bucket.IsEmpty() {
			splitIdx := dir.GetSplitImageIndex(i)
			if dir.GetLocalDepth(splitIdx) == oldLocalDepth {
				dir.DecrLocalDepth(i)
				dir.DecrLocalDepth(splitIdx)
				dir.SetBucketPageId(i, dir.GetBucketPageId(splitIdx))
				newBucketPageId := dir.GetBucketPageId(i)

				for j := uint32(0); j < dir.Size(); j++ {
					if j == i || j == splitIdx {
						continue
					}
					cur := dir.GetBucketPageId(j)
					if cur == bucketPageId || cur == newBucketPageId {
						dir.SetLocalDepth(j, dir.GetLocalDepth(i))
						dir.SetBucketPageId(j, newBucketPageId)
					}
				}
			}
			if dir.CanShrink() {
				dir.DecrGlobalDepth()
			}
		}
		ht.bpm.UnpinPage(bucketPageId, false)
	}

	ht.bpm.UnpinPage(ht.directoryPageId, true)
}

// GetGlobalDepth returns the directory's current global depth.
func (ht *ExtendibleHashTable) GetGlobalDepth() uint32 {
	ht.table_latch.RLock()
	defer ht.table_latch.RUnlock()
	dir := ht.fetchDirectoryPage()
	depth := dir.GetGlobalDepth()
	ht.bpm.UnpinPage(ht.directoryPageId, false)
	return depth
}

// VerifyIntegrity checks the directory page's invariants.
func (ht *ExtendibleHashTable) VerifyIntegrity() {
	ht.table_latch.RLock()
	defer ht.table_latch.RUnlock()
	dir := ht.fetchDirectoryPage()
	dir.VerifyIntegrity()
	ht.bpm.UnpinPage(ht.directoryPageId, false)
}
