package space

import (
	"fmt"

	"github.com/TheBitDrifter/table"
)

// anchorFrame is the per-anchor row: the fixed offset from the body origin and
// the last global pose computed from it.
type anchorFrame struct {
	Offset Pose
	Global Pose
}

var anchorFrameType = table.FactoryNewElementType[anchorFrame]()

// AnchorStore keeps the frames of every anchor of a space in one table.
// Anchors hold entry ids; rows move on deletion, so the row of an anchor is
// resolved through the entry index on every access.
type AnchorStore struct {
	tbl    table.Table
	index  table.EntryIndex
	frames table.Accessor[anchorFrame]
}

func newAnchorStore() (*AnchorStore, error) {
	schema := table.Factory.NewSchema()
	schema.Register(anchorFrameType)
	index := table.Factory.NewEntryIndex()
	tbl, err := table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(index).
		WithElementTypes(anchorFrameType).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build anchor table: %w", err)
	}
	return &AnchorStore{
		tbl:    tbl,
		index:  index,
		frames: table.FactoryNewAccessor[anchorFrame](anchorFrameType),
	}, nil
}

// Len is the number of live anchors.
func (s *AnchorStore) Len() int {
	return s.tbl.Length()
}

func (s *AnchorStore) allocate(offset Pose) (table.EntryID, error) {
	entries, err := s.tbl.NewEntries(1)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate anchor: %w", err)
	}
	id := entries[0].ID()
	frame, err := s.frame(id)
	if err != nil {
		return 0, err
	}
	frame.Offset = offset
	frame.Global = offset
	return id, nil
}

// row is the current table row of id. Entry ids start at 1.
func (s *AnchorStore) row(id table.EntryID) (int, error) {
	entry, err := s.index.Entry(int(id) - 1)
	if err != nil {
		return 0, StaleAnchorError{ID: id, Err: err}
	}
	row := entry.Index()
	if row < 0 || row >= s.tbl.Length() {
		return 0, StaleAnchorError{ID: id}
	}
	// A released id the index could not recycle still points at a row.
	if live, err := s.tbl.Entry(row); err != nil || live.ID() != id {
		return 0, StaleAnchorError{ID: id, Err: err}
	}
	return row, nil
}

func (s *AnchorStore) frame(id table.EntryID) (*anchorFrame, error) {
	row, err := s.row(id)
	if err != nil {
		return nil, err
	}
	return s.frames.Get(row, s.tbl), nil
}

// release deletes the rows of ids in one batch. Rows are resolved up front
// since the deletion swaps rows around.
func (s *AnchorStore) release(ids ...table.EntryID) error {
	if len(ids) == 0 {
		return nil
	}
	rows := make([]int, 0, len(ids))
	for _, id := range ids {
		row, err := s.row(id)
		if err != nil {
			return fmt.Errorf("failed to release anchor: %w", err)
		}
		rows = append(rows, row)
	}
	if _, err := s.tbl.DeleteEntries(rows...); err != nil {
		return fmt.Errorf("failed to release anchors: %w", err)
	}
	return nil
}

// Anchor is a named frame attached to a body. Its pose follows the body and
// is readable only while the body is enabled.
type Anchor struct {
	name  string
	body  *Body
	id    table.EntryID
	store *AnchorStore
}

func (a *Anchor) Name() string {
	return a.name
}

// Offset is the fixed pose of the anchor in the body frame.
func (a *Anchor) Offset() (Pose, error) {
	frame, err := a.store.frame(a.id)
	if err != nil {
		return Pose{}, err
	}
	return frame.Offset, nil
}

func (a *Anchor) Pose() (Pose, error) {
	if !a.body.Enabled() {
		return Pose{}, AnchorDisabledError{Anchor: a.name, Entity: FullID(a.body)}
	}
	frame, err := a.store.frame(a.id)
	if err != nil {
		return Pose{}, err
	}
	return frame.Global, nil
}

func (a *Anchor) update(body Pose) error {
	frame, err := a.store.frame(a.id)
	if err != nil {
		return err
	}
	frame.Global = body.Compose(frame.Offset)
	return nil
}
