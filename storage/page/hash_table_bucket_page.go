// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

type hashTableBucketPair struct {
	hash  uint32
	value uint32
}

const sizeOfHashTableBucketPair = 8

// BucketArraySize bounds how many key/value pairs a single bucket page can
// hold before it must be split.
const BucketArraySize = 4 * 4096 / (4*sizeOfHashTableBucketPair + 1)

/**
 * Bucket page format, mirroring HashTableBlockPage but addressed by the
 * extendible hash table's directory rather than by linear probing:
 *  ---------------------------------------------------------------
 * | HASH(1) + VALUE(1) | HASH(2) + VALUE(2) | ... | HASH(n) + VALUE(n)
 *  ---------------------------------------------------------------
 *
 * The stored "hash" is the full 32-bit hash of the key, not the key
 * itself; keys of arbitrary shape are hashed down to this before ever
 * reaching the bucket, the same simplification the linear-probe hash
 * table above already relies on.
 */
type HashTableBucketPage struct {
	occupied [(BucketArraySize-1)/8 + 1]byte
	readable [(BucketArraySize-1)/8 + 1]byte
	array    [BucketArraySize]hashTableBucketPair
}

// GetValue appends the value of every occupied, readable slot whose hash
// matches to result, returning true if at least one match was found.
func (b *HashTableBucketPage) GetValue(hash uint32, result *[]uint32) bool {
	found := false
	for i := 0; i < BucketArraySize; i++ {
		if !b.IsReadable(i) {
			continue
		}
		if b.array[i].hash == hash {
			*result = append(*result, b.array[i].value)
			found = true
		}
	}
	return found
}

// Insert adds hash/value into the first free slot, refusing exact
// duplicates. Returns false if the bucket is full.
func (b *HashTableBucketPage) Insert(hash uint32, value uint32) bool {
	firstTombstone := -1
	for i := 0; i < BucketArraySize; i++ {
		if b.IsOccupied(i) && b.IsReadable(i) {
			if b.array[i].hash == hash && b.array[i].value == value {
				return false
			}
			continue
		}
		if !b.IsOccupied(i) {
			b.insertAt(i, hash, value)
			return true
		}
		if firstTombstone < 0 {
			firstTombstone = i
		}
	}
	if firstTombstone >= 0 {
		b.insertAt(firstTombstone, hash, value)
		return true
	}
	return false
}

func (b *HashTableBucketPage) insertAt(i int, hash uint32, value uint32) {
	b.array[i] = hashTableBucketPair{hash, value}
	b.occupied[i/8] |= 1 << (i % 8)
	b.readable[i/8] |= 1 << (i % 8)
}

// Remove deletes the slot holding hash/value, if any, returning whether it
// was found.
func (b *HashTableBucketPage) Remove(hash uint32, value uint32) bool {
	for i := 0; i < BucketArraySize; i++ {
		if b.IsReadable(i) && b.array[i].hash == hash && b.array[i].value == value {
			b.RemoveAt(i)
			return true
		}
	}
	return false
}

func (b *HashTableBucketPage) RemoveAt(i int) {
	b.readable[i/8] &^= 1 << (i % 8)
}

func (b *HashTableBucketPage) KeyAt(i int) uint32   { return b.array[i].hash }
func (b *HashTableBucketPage) ValueAt(i int) uint32 { return b.array[i].value }

func (b *HashTableBucketPage) IsOccupied(i int) bool {
	return (b.occupied[i/8] & (1 << (i % 8))) != 0
}

func (b *HashTableBucketPage) IsReadable(i int) bool {
	return (b.readable[i/8] & (1 << (i % 8))) != 0
}

// IsFull reports whether every slot is occupied by a live or tombstoned
// entry. Insert can still reuse a tombstoned slot of a full bucket.
func (b *HashTableBucketPage) IsFull() bool {
	for i := 0; i < BucketArraySize; i++ {
		if !b.IsOccupied(i) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the bucket holds no readable entries, making it
// a candidate for merging with its split image.
func (b *HashTableBucketPage) IsEmpty() bool {
	return b.NumReadable() == 0
}

// NumReadable counts live (non-tombstoned) entries.
func (b *HashTableBucketPage) NumReadable() uint32 {
	count := uint32(0)
	for i := 0; i < BucketArraySize; i++ {
		if b.IsReadable(i) {
			count++
		}
	}
	return count
}
