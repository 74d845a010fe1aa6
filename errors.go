package space

import (
	"fmt"
	"strings"

	"github.com/TheBitDrifter/table"
)

type ConfigurationError struct {
	Subject string
	Reason  string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Subject, e.Reason)
}

type DuplicateIdentityError struct {
	ID string
}

func (e DuplicateIdentityError) Error() string {
	return fmt.Sprintf("entity id %q is already in use", e.ID)
}

type UnknownTypeError struct {
	Type string
}

func (e UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown entity type %q", e.Type)
}

type UnknownEntityError struct {
	ID string
}

func (e UnknownEntityError) Error() string {
	return fmt.Sprintf("entity %q is not registered", e.ID)
}

type NoHousingEngineError struct {
	ID       string
	Position Vector3
}

func (e NoHousingEngineError) Error() string {
	return fmt.Sprintf("no physics engine can house entity %q at <%v>", e.ID, e.Position)
}

type AmbiguousEngineError struct {
	ID      string
	Engines []string
}

func (e AmbiguousEngineError) Error() string {
	return fmt.Sprintf(`multiple engines can house %q, but a movable entity can only be added to a single engine; conflicting engines: "%s"`,
		e.ID, strings.Join(e.Engines, `", "`))
}

type NotPlaceableError struct {
	Type string
}

func (e NotPlaceableError) Error() string {
	return fmt.Sprintf("cannot distribute entities that are neither positional nor embodied, and %q is neither", e.Type)
}

type PlacementExhaustedError struct {
	Type   string
	BaseID string
	Placed int
	Trials int
}

func (e PlacementExhaustedError) Error() string {
	return fmt.Sprintf("exceeded max trials (%d) when distributing entities of type %q with base id %q; placed only %d",
		e.Trials, e.Type, e.BaseID, e.Placed)
}

type GridExhaustedError struct {
	Capacity int
}

func (e GridExhaustedError) Error() string {
	return fmt.Sprintf("grid layout holds %d entities, check the distributed quantity", e.Capacity)
}

type GridRetryUnsupportedError struct {
	Placed int
}

func (e GridRetryUnsupportedError) Error() string {
	return fmt.Sprintf("impossible to place entity #%d in grid", e.Placed)
}

// InvalidRangeError unwraps to a ConfigurationError.
type InvalidRangeError struct {
	Min, Max Vector3
}

func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("uniform generator: min <%v> is not less than or equal to max <%v>", e.Min, e.Max)
}

func (e InvalidRangeError) Unwrap() error {
	return ConfigurationError{Subject: "uniform generator", Reason: "min > max"}
}

// InvalidLayoutError unwraps to a ConfigurationError.
type InvalidLayoutError struct {
	Layout [3]int
}

func (e InvalidLayoutError) Error() string {
	return fmt.Sprintf("grid generator: layout %v must be strictly positive on every axis", e.Layout)
}

func (e InvalidLayoutError) Unwrap() error {
	return ConfigurationError{Subject: "grid generator", Reason: "non-positive layout"}
}

type LockedRegistryError struct{}

func (e LockedRegistryError) Error() string {
	return "registry is currently locked"
}

type EntityRelationError struct {
	child, parent string
}

func (e EntityRelationError) Error() string {
	return fmt.Sprintf("child (%s) already has parent %s", e.child, e.parent)
}

type NotRootError struct {
	ID string
}

func (e NotRootError) Error() string {
	return fmt.Sprintf("entity %q has a parent, only root entities can be added or removed", e.ID)
}

type UnknownAnchorError struct {
	Anchor string
	Entity string
}

func (e UnknownAnchorError) Error() string {
	return fmt.Sprintf("entity %q has no anchor %q", e.Entity, e.Anchor)
}

type AnchorDisabledError struct {
	Anchor string
	Entity string
}

func (e AnchorDisabledError) Error() string {
	return fmt.Sprintf("anchor %q of %q is read while its body is disabled", e.Anchor, e.Entity)
}

// StaleAnchorError reports an anchor id that no longer owns a row of the
// anchor table.
type StaleAnchorError struct {
	ID  table.EntryID
	Err error
}

func (e StaleAnchorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("anchor entry %d is not live: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("anchor entry %d is not live", e.ID)
}

func (e StaleAnchorError) Unwrap() error {
	return e.Err
}

type ReentrantUpdateError struct{}

func (e ReentrantUpdateError) Error() string {
	return "update called while a step is in progress"
}

// DistributionError locates a failure inside a distribute block.
type DistributionError struct {
	BaseID string
	Index  int
	Err    error
}

func (e DistributionError) Error() string {
	return fmt.Sprintf("error while trying to distribute entities (base id %q, index %d): %v", e.BaseID, e.Index, e.Err)
}

func (e DistributionError) Unwrap() error {
	return e.Err
}
