// package concurrency
// package lock
// package transaction
package access

//===----------------------------------------------------------------------===//
//
//                         BusTub
//
// lock_manager.cpp
//
// Identification: src/concurrency/lock_manager.cpp
//
// Copyright (c) 2015-2019, Carnegie Mellon University Database Group
//
//===----------------------------------------------------------------------===//

import (
	"sync"

	"github.com/komorebi-db/komorebi/common"
	"github.com/komorebi-db/komorebi/storage/page"
	"github.com/komorebi-db/komorebi/types"
)

// TwoPLMode selects between regular and strict two-phase locking.
type TwoPLMode int32

const (
	REGULAR TwoPLMode = iota
	STRICT
)

// DeadlockMode selects how the lock manager handles cycles in the
// waits-for graph: by preventing them (wound-wait) or by detecting
// them after the fact. Only PREVENTION is implemented.
type DeadlockMode int32

const (
	PREVENTION DeadlockMode = iota
	DETECTION
)

// SS2PL_MODE names the deadlock policy samehada boots with: strict
// strict two-phase locking paired with wound-wait prevention.
const SS2PL_MODE = PREVENTION

type LockMode int32

const (
	SHARED LockMode = iota
	EXCLUSIVE
)

type lockRequest struct {
	txnID    types.TxnID
	lockMode LockMode
	granted  bool
}

// lockRequestQueue is the per-RID wait queue. cond guards every field
// below it and is used both to block a requester and to wake one up
// once the resource it wants becomes available.
type lockRequestQueue struct {
	mu        sync.Mutex
	cond      *sync.Cond
	requests  []*lockRequest
	sharedCnt int
	writing   bool
	upgrading types.TxnID
}

func newLockRequestQueue() *lockRequestQueue {
	q := &lockRequestQueue{upgrading: types.TxnID(common.InvalidTxnID)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *lockRequestQueue) findRequest(txnID types.TxnID) *lockRequest {
	for _, r := range q.requests {
		if r.txnID == txnID {
			return r
		}
	}
	return nil
}

func (q *lockRequestQueue) removeRequest(txnID types.TxnID) {
	for i, r := range q.requests {
		if r.txnID == txnID {
			q.requests = append(q.requests[:i], q.requests[i+1:]...)
			return
		}
	}
}

/**
 * LockManager handles transactions asking for locks on records. It
 * implements wound-wait deadlock prevention: when an older transaction
 * (smaller txn id) requests a lock a younger transaction is already
 * holding in a conflicting mode, the younger one is wounded (aborted)
 * on the spot instead of being allowed to block the older one.
 */
type LockManager struct {
	two_pl_mode   TwoPLMode
	deadlock_mode DeadlockMode

	mutex     sync.Mutex
	lockTable map[page.RID]*lockRequestQueue
	// txnIndex lets woundWait reach a granted holder's Transaction by id
	// so it can flip that transaction's state to ABORTED.
	txnIndex map[types.TxnID]*Transaction
}

/**
* Creates a new lock manager configured for the given type of 2-phase locking and deadlock policy.
* @param two_pl_mode 2-phase locking mode
* @param deadlock_mode deadlock policy
 */
func NewLockManager(two_pl_mode TwoPLMode, deadlock_mode DeadlockMode) *LockManager {
	return &LockManager{
		two_pl_mode:   two_pl_mode,
		deadlock_mode: deadlock_mode,
		lockTable:     make(map[page.RID]*lockRequestQueue),
		txnIndex:      make(map[types.TxnID]*Transaction),
	}
}

func (lock_manager *LockManager) Detection() bool  { return lock_manager.deadlock_mode == DETECTION }
func (lock_manager *LockManager) Prevention() bool { return lock_manager.deadlock_mode == PREVENTION }

func (lock_manager *LockManager) queueFor(rid page.RID) *lockRequestQueue {
	lock_manager.mutex.Lock()
	defer lock_manager.mutex.Unlock()
	q, ok := lock_manager.lockTable[rid]
	if !ok {
		q = newLockRequestQueue()
		lock_manager.lockTable[rid] = q
	}
	return q
}

func (lock_manager *LockManager) registerTxn(txn *Transaction) {
	lock_manager.mutex.Lock()
	lock_manager.txnIndex[txn.GetTransactionId()] = txn
	lock_manager.mutex.Unlock()
}

// implicitAbort aborts txn and records why, mirroring
// Implicit_Abort/TransactionAbortException in the original: callers
// here get a plain false back instead of a thrown exception.
func (lock_manager *LockManager) implicitAbort(txn *Transaction, reason AbortReason) bool {
	txn.SetState(ABORTED)
	txn.SetDebugInfo(reason.String())
	return false
}

// woundWait aborts every already-granted holder of rid's queue that is
// younger than txn (larger txn id) and whose grant conflicts with the
// mode txn is requesting. Young waits for old; old kills young.
func (lock_manager *LockManager) woundWait(txn *Transaction, mode LockMode, q *lockRequestQueue) {
	wounded := false
	for _, req := range q.requests {
		if !req.granted || txn.GetTransactionId() >= req.txnID {
			continue
		}
		if mode == EXCLUSIVE || req.lockMode == EXCLUSIVE || req.txnID == q.upgrading {
			if req.lockMode == SHARED {
				q.sharedCnt--
			} else {
				q.writing = false
			}
			lock_manager.mutex.Lock()
			victim := lock_manager.txnIndex[req.txnID]
			lock_manager.mutex.Unlock()
			if victim != nil {
				victim.SetState(ABORTED)
				victim.SetDebugInfo(DEADLOCK.String())
			}
			wounded = true
		}
	}
	// Other goroutines already asleep on q.cond only recheck their
	// predicate on a wakeup, so nudge them now that counts moved.
	if wounded {
		q.cond.Broadcast()
	}
}

// checkDeadlockAbort reports whether txn was wounded while it held
// q.mu, removing its now-void request from the queue if so.
func (lock_manager *LockManager) checkDeadlockAbort(txn *Transaction, q *lockRequestQueue) bool {
	if txn.GetState() == ABORTED {
		q.removeRequest(txn.GetTransactionId())
		return true
	}
	return false
}

/*
* [LOCK_NOTE]: For all locking functions, we:
* 1. return false if the transaction is aborted; and
* 2. block on wait, return true when the lock request is granted; and
* 3. it is undefined behavior to try locking an already locked RID in the same transaction, i.e. the transaction
*    is responsible for keeping track of its current locks.
 */

/**
* Acquire a lock on RID in shared mode. See [LOCK_NOTE] in header file.
* @param txn the transaction requesting the shared lock
* @param rid the RID to be locked in shared mode
* @return true if the lock is granted, false otherwise
 */
func (lock_manager *LockManager) LockShared(txn *Transaction, rid *page.RID) bool {
	// A wounded (aborted) transaction fails at once, even on a row it holds.
	if txn.GetState() == ABORTED {
		return false
	}
	// READ_UNCOMMITTED never takes shared locks: it allows dirty reads.
	if txn.GetIsolationLevel() == READ_UNCOMMITTED {
		return lock_manager.implicitAbort(txn, LOCKSHARED_ON_READ_UNCOMMITTED)
	}
	// REPEATABLE_READ must follow strict 2PL: no new locks once shrinking.
	if txn.GetIsolationLevel() == REPEATABLE_READ && txn.GetState() == SHRINKING {
		txn.SetState(ABORTED)
		return false
	}
	if txn.IsSharedLocked(rid) || txn.IsExclusiveLocked(rid) {
		return true
	}

	lock_manager.registerTxn(txn)
	q := lock_manager.queueFor(*rid)

	q.mu.Lock()
	req := &lockRequest{txnID: txn.GetTransactionId(), lockMode: SHARED}
	q.requests = append(q.requests, req)

	lock_manager.woundWait(txn, SHARED, q)
	for txn.GetState() != ABORTED && q.writing {
		q.cond.Wait()
	}
	if lock_manager.checkDeadlockAbort(txn, q) {
		q.mu.Unlock()
		return false
	}
	q.sharedCnt++
	req.granted = true
	q.mu.Unlock()

	slock_set := append(txn.GetSharedLockSet(), *rid)
	txn.SetSharedLockSet(slock_set)
	return true
}

/**
* Acquire a lock on RID in exclusive mode. See [LOCK_NOTE] in header file.
* @param txn the transaction requesting the exclusive lock
* @param rid the RID to be locked in exclusive mode
* @return true if the lock is granted, false otherwise
 */
func (lock_manager *LockManager) LockExclusive(txn *Transaction, rid *page.RID) bool {
	if txn.GetState() == ABORTED {
		return false
	}
	if txn.GetIsolationLevel() == REPEATABLE_READ && txn.GetState() == SHRINKING {
		return lock_manager.implicitAbort(txn, LOCK_ON_SHRINKING)
	}
	if txn.IsExclusiveLocked(rid) {
		return true
	}

	lock_manager.registerTxn(txn)
	q := lock_manager.queueFor(*rid)

	q.mu.Lock()
	req := &lockRequest{txnID: txn.GetTransactionId(), lockMode: EXCLUSIVE}
	q.requests = append(q.requests, req)

	lock_manager.woundWait(txn, EXCLUSIVE, q)
	for txn.GetState() != ABORTED && (q.writing || q.sharedCnt > 0) {
		q.cond.Wait()
	}
	if lock_manager.checkDeadlockAbort(txn, q) {
		q.mu.Unlock()
		return false
	}
	req.granted = true
	q.writing = true
	q.mu.Unlock()

	exlock_set := append(txn.GetExclusiveLockSet(), *rid)
	txn.SetExclusiveLockSet(exlock_set)
	return true
}

/**
* Upgrade a lock from a shared lock to an exclusive access.
* @param txn the transaction requesting the lock upgrade
* @param rid the RID that should already be locked in shared mode by the requesting transaction
* @return true if the upgrade is successful, false otherwise
 */
func (lock_manager *LockManager) LockUpgrade(txn *Transaction, rid *page.RID) bool {
	if txn.GetState() == ABORTED {
		return false
	}
	if txn.GetIsolationLevel() == REPEATABLE_READ && txn.GetState() == SHRINKING {
		return lock_manager.implicitAbort(txn, LOCK_ON_SHRINKING)
	}
	if txn.IsExclusiveLocked(rid) {
		return true
	}
	// The caller must already hold the shared lock it wants to upgrade.
	if !txn.IsSharedLocked(rid) {
		return false
	}

	q := lock_manager.queueFor(*rid)
	q.mu.Lock()

	if q.upgrading != types.TxnID(common.InvalidTxnID) {
		q.mu.Unlock()
		return lock_manager.implicitAbort(txn, UPGRADE_CONFLICT)
	}

	req := q.findRequest(txn.GetTransactionId())
	if req == nil {
		// Defensive: our own shared request should still be queued.
		q.mu.Unlock()
		return false
	}
	req.granted = false
	req.lockMode = EXCLUSIVE
	q.sharedCnt--
	txn.SetSharedLockSet(removeRID(txn.GetSharedLockSet(), *rid))
	q.upgrading = txn.GetTransactionId()

	lock_manager.woundWait(txn, EXCLUSIVE, q)
	for txn.GetState() != ABORTED && (q.writing || q.sharedCnt > 0) {
		q.cond.Wait()
	}
	if lock_manager.checkDeadlockAbort(txn, q) {
		q.upgrading = types.TxnID(common.InvalidTxnID)
		q.mu.Unlock()
		return false
	}
	req.granted = true
	q.upgrading = types.TxnID(common.InvalidTxnID)
	q.writing = true
	q.mu.Unlock()

	exlock_set := append(txn.GetExclusiveLockSet(), *rid)
	txn.SetExclusiveLockSet(exlock_set)
	return true
}

/**
* Release every lock in rid_list held by txn. See [LOCK_NOTE] in header file.
* @param txn the transaction releasing the locks, it should actually hold them
* @param rid_list the RIDs locked by the transaction
* @return true if the unlock is successful, false otherwise
 */
func (lock_manager *LockManager) Unlock(txn *Transaction, rid_list []page.RID) bool {
	if txn.GetIsolationLevel() == REPEATABLE_READ && txn.GetState() == GROWING {
		txn.SetState(SHRINKING)
	}

	for _, rid := range rid_list {
		q := lock_manager.queueFor(rid)
		q.mu.Lock()

		wasShared := txn.IsSharedLocked(&rid)
		wasExclusive := txn.IsExclusiveLocked(&rid)
		q.removeRequest(txn.GetTransactionId())

		if wasShared {
			txn.SetSharedLockSet(removeRID(txn.GetSharedLockSet(), rid))
			q.sharedCnt--
		}
		if wasExclusive {
			txn.SetExclusiveLockSet(removeRID(txn.GetExclusiveLockSet(), rid))
			q.writing = false
		}
		if !q.writing {
			q.cond.Broadcast()
		}
		q.mu.Unlock()
	}
	return true
}

func removeRID(list []page.RID, rid page.RID) []page.RID {
	for i, r := range list {
		if r == rid {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

/*** Graph API ***/
/** Adds an edge from t1 -> t2. Only meaningful under DETECTION. */
func (lock_manager *LockManager) AddEdge(t1 types.TxnID, t2 types.TxnID) {}

/** Removes an edge from t1 -> t2. Only meaningful under DETECTION. */
func (lock_manager *LockManager) RemoveEdge(t1 types.TxnID, t2 types.TxnID) {}

/**
* Checks if the graph has a cycle, returning the newest transaction ID in the cycle if so.
* PREVENTION mode has no waits-for graph to check; it always reports no cycle.
 */
func (lock_manager *LockManager) HasCycle(txn_id *types.TxnID) bool {
	return false
}

/** Runs cycle detection in the background. Unused under PREVENTION. */
func (lock_manager *LockManager) RunCycleDetection() {
}
