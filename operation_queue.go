package space

import (
	"errors"
	"fmt"
)

type operationType int

const (
	opAdd operationType = iota
	opRemove
	opCanceled
)

type operation struct {
	typ    operationType
	entity Entity
}

// opQueue holds entity additions and removals requested while the registry is
// locked.
type opQueue struct {
	addOps        []operation
	removeOps     []operation
	pendingAdd    map[Entity]int
	pendingRemove map[Entity]struct{}
}

func newOpQueue() opQueue {
	return opQueue{
		pendingAdd:    make(map[Entity]int),
		pendingRemove: make(map[Entity]struct{}),
	}
}

// EnqueueAddEntity adds e now, or after the running phase when the registry
// is locked.
func (s *Space) EnqueueAddEntity(e Entity) error {
	if !s.registry.Locked() {
		return s.AddEntity(e)
	}
	if _, queued := s.opQueue.pendingAdd[e]; queued {
		return nil
	}
	s.opQueue.pendingAdd[e] = len(s.opQueue.addOps)
	s.opQueue.addOps = append(s.opQueue.addOps, operation{typ: opAdd, entity: e})
	return nil
}

// EnqueueRemoveEntity removes e now, or after the running phase when the
// registry is locked. Removing an entity whose addition is still queued
// cancels both.
func (s *Space) EnqueueRemoveEntity(e Entity) error {
	if !s.registry.Locked() {
		return s.RemoveEntity(e)
	}
	q := &s.opQueue
	if idx, queued := q.pendingAdd[e]; queued {
		q.addOps[idx].typ = opCanceled
		delete(q.pendingAdd, e)
		e.Destroy()
		return nil
	}
	if _, queued := q.pendingRemove[e]; queued {
		return nil
	}
	q.pendingRemove[e] = struct{}{}
	q.removeOps = append(q.removeOps, operation{typ: opRemove, entity: e})
	return nil
}

// processOperationQueue applies every queued operation, additions first. A
// failed addition destroys its entity; failures are joined, never skipped.
func (s *Space) processOperationQueue() error {
	q := &s.opQueue
	if len(q.addOps) == 0 && len(q.removeOps) == 0 {
		return nil
	}
	defer q.clear()

	var errs []error
	// Process additions first
	for _, op := range q.addOps {
		if op.typ != opAdd {
			continue
		}
		if err := s.AddEntity(op.entity); err != nil {
			op.entity.Destroy()
			errs = append(errs, fmt.Errorf("failed to process queued addition of %q: %w", op.entity.ID(), err))
		}
	}

	// Process removals last
	for _, op := range q.removeOps {
		if err := s.RemoveEntity(op.entity); err != nil {
			errs = append(errs, fmt.Errorf("failed to process queued removal of %q: %w", op.entity.ID(), err))
		}
	}
	return errors.Join(errs...)
}

func (q *opQueue) clear() {
	q.addOps = q.addOps[:0]
	q.removeOps = q.removeOps[:0]
	clear(q.pendingAdd)
	clear(q.pendingRemove)
}
