package services

import (
	"sync"

	"github.com/google/uuid"
)

// ownerLocks serializes commit/replan per owner. Operations for different
// owners never contend; there is no global lock. Overlap is still re-checked
// at write time, so a second process racing this one degrades to block-level
// conflicts rather than corruption.
type ownerLocks struct {
	locks sync.Map
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{}
}

func (l *ownerLocks) forOwner(ownerID uuid.UUID) *sync.Mutex {
	mu, _ := l.locks.LoadOrStore(ownerID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
