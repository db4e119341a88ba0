package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrEventNotFound         = errors.New("event not found")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrNoAdjustments         = errors.New("no inventory adjustments")
)

// Adjustment moves Quantity units of one event from available to sold.
type Adjustment struct {
	EventID  uuid.UUID
	Quantity int32
}

// Normalize merges duplicate events and orders the result by event id. Every
// writer locks event rows in this order, so two conversions touching the same
// events cannot deadlock.
func Normalize(adjs []Adjustment) ([]Adjustment, error) {
	if len(adjs) == 0 {
		return nil, ErrNoAdjustments
	}

	merged := make(map[uuid.UUID]int32, len(adjs))
	for _, a := range adjs {
		if a.Quantity <= 0 {
			return nil, fmt.Errorf("%w: event %s has quantity %d", ErrInvalidQuantity, a.EventID, a.Quantity)
		}
		merged[a.EventID] += a.Quantity
	}

	out := make([]Adjustment, 0, len(merged))
	for id, qty := range merged {
		out = append(out, Adjustment{EventID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].EventID[:], out[j].EventID[:]) < 0
	})
	return out, nil
}

type LineStatus string

const (
	LineApplied      LineStatus = "applied"
	LineInsufficient LineStatus = "insufficient"
	LineMissing      LineStatus = "missing"
)

type LineResult struct {
	EventID   uuid.UUID
	Requested int32
	Status    LineStatus
}

// Outcome is the per-event result of one ledger application. When any line is
// not applied, none of the lines were kept.
type Outcome struct {
	Lines []LineResult
}

func (o Outcome) Applied() bool {
	for _, l := range o.Lines {
		if l.Status != LineApplied {
			return false
		}
	}
	return true
}

func (o Outcome) Shortfalls() []LineResult {
	var out []LineResult
	for _, l := range o.Lines {
		if l.Status != LineApplied {
			out = append(out, l)
		}
	}
	return out
}

// Err returns nil for a fully applied outcome and a *ShortfallError otherwise.
func (o Outcome) Err() error {
	short := o.Shortfalls()
	if len(short) == 0 {
		return nil
	}
	return &ShortfallError{Lines: short}
}

type ShortfallError struct {
	Lines []LineResult
}

func (e *ShortfallError) Error() string {
	parts := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		parts = append(parts, fmt.Sprintf("%s(%s, requested %d)", l.EventID, l.Status, l.Requested))
	}
	return "inventory shortfall: " + strings.Join(parts, ", ")
}

// Is matches ErrInsufficientInventory for any shortfall and ErrEventNotFound when
// at least one line referenced an unknown event.
func (e *ShortfallError) Is(target error) bool {
	switch target {
	case ErrInsufficientInventory:
		return true
	case ErrEventNotFound:
		for _, l := range e.Lines {
			if l.Status == LineMissing {
				return true
			}
		}
	}
	return false
}
