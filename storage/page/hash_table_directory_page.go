// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import "github.com/komorebi-db/komorebi/types"

// DirectoryArraySize bounds how many buckets a directory page can address:
// 2^9, so global depth can grow up to 9 before the directory itself would
// need to span more than one page.
const DirectoryArraySize = 512

/**
 * HashTableDirectoryPage format (size in bytes):
 * ----------------------------------------------------------------------------------
 * | LSN (4) | PageId(4) | GlobalDepth(4) | LocalDepths(512) | BucketPageIds(512*4)
 * ----------------------------------------------------------------------------------
 *
 * global_depth_ bits of a key's hash select an index into bucket_page_ids_;
 * local_depths_[i] records how many of those bits actually distinguish
 * bucket i's entries from its split image, GetSplitImageIndex(i).
 */
type HashTableDirectoryPage struct {
	pageId        types.PageID
	lsn           int
	globalDepth   uint32
	localDepths   [DirectoryArraySize]uint8
	bucketPageIds [DirectoryArraySize]types.PageID
}

func (d *HashTableDirectoryPage) GetPageId() types.PageID     { return d.pageId }
func (d *HashTableDirectoryPage) SetPageId(id types.PageID)   { d.pageId = id }
func (d *HashTableDirectoryPage) GetLSN() int                 { return d.lsn }
func (d *HashTableDirectoryPage) SetLSN(lsn int)              { d.lsn = lsn }

// GetGlobalDepth returns the number of low-order hash bits currently used
// to index into the directory.
func (d *HashTableDirectoryPage) GetGlobalDepth() uint32 { return d.globalDepth }

// IncrGlobalDepth doubles the directory. Callers are responsible for
// populating the newly exposed half of bucketPageIds/localDepths.
func (d *HashTableDirectoryPage) IncrGlobalDepth() { d.globalDepth++ }

func (d *HashTableDirectoryPage) DecrGlobalDepth() { d.globalDepth-- }

// GetGlobalDepthMask returns a mask with the low globalDepth bits set.
func (d *HashTableDirectoryPage) GetGlobalDepthMask() uint32 {
	return (uint32(1) << d.globalDepth) - 1
}

// GetLocalDepthMask returns a mask with the low local-depth-of-bucketIdx
// bits set.
func (d *HashTableDirectoryPage) GetLocalDepthMask(bucketIdx uint32) uint32 {
	return (uint32(1) << d.localDepths[bucketIdx]) - 1
}

// Size returns the number of directory slots currently in use, 2^globalDepth.
func (d *HashTableDirectoryPage) Size() uint32 {
	return uint32(1) << d.globalDepth
}

func (d *HashTableDirectoryPage) GetBucketPageId(bucketIdx uint32) types.PageID {
	return d.bucketPageIds[bucketIdx]
}

func (d *HashTableDirectoryPage) SetBucketPageId(bucketIdx uint32, pageId types.PageID) {
	d.bucketPageIds[bucketIdx] = pageId
}

func (d *HashTableDirectoryPage) GetLocalDepth(bucketIdx uint32) uint32 {
	return uint32(d.localDepths[bucketIdx])
}

func (d *HashTableDirectoryPage) SetLocalDepth(bucketIdx uint32, depth uint32) {
	d.localDepths[bucketIdx] = uint8(depth)
}

func (d *HashTableDirectoryPage) IncrLocalDepth(bucketIdx uint32) {
	d.localDepths[bucketIdx]++
}

func (d *HashTableDirectoryPage) DecrLocalDepth(bucketIdx uint32) {
	d.localDepths[bucketIdx]--
}

// GetSplitImageIndex returns the index of bucketIdx's split image: the
// bucket it was, or will be, paired with by flipping the bit at its local
// depth.
func (d *HashTableDirectoryPage) GetSplitImageIndex(bucketIdx uint32) uint32 {
	return bucketIdx ^ (uint32(1) << (d.localDepths[bucketIdx] - 1))
}

// CanShrink reports whether every bucket's local depth is strictly less
// than the global depth, meaning the directory can be halved without
// losing addressability of any bucket.
func (d *HashTableDirectoryPage) CanShrink() bool {
	for i := uint32(0); i < d.Size(); i++ {
		if d.localDepths[i] == uint8(d.globalDepth) {
			return false
		}
	}
	return true
}

// VerifyIntegrity checks two invariants that must hold after every split
// or merge: no local depth exceeds the global depth, and every directory
// entry pointing at the same bucket page agrees on that bucket's local
// depth. It panics on violation, mirroring the assertion-based check in
// the reference implementation.
func (d *HashTableDirectoryPage) VerifyIntegrity() {
	sizeToLocalDepths := make(map[types.PageID]uint32)
	for curIdx := uint32(0); curIdx < d.Size(); curIdx++ {
		curPageId := d.bucketPageIds[curIdx]
		curLd := d.localDepths[curIdx]

		if uint32(curLd) > d.globalDepth {
			panic("hash table directory: local depth exceeds global depth")
		}

		if seen, ok := sizeToLocalDepths[curPageId]; ok {
			if seen != uint32(curLd) {
				panic("hash table directory: bucket page reachable through entries with different local depths")
			}
		} else {
			sizeToLocalDepths[curPageId] = uint32(curLd)
		}
	}
}
