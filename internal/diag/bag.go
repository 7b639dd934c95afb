package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag accumulates diagnostics for a single phase. Phases never throw on
// failure (spec.md section 7): they append a diagnostic and keep going.
type Bag struct {
	items   []*Diagnostic
	maximum uint16
}

// NewBag creates a Bag capped at maximum diagnostics; 0 means unbounded
// (capped at uint16 max).
func NewBag(maximum int) *Bag {
	if maximum <= 0 {
		return &Bag{maximum: ^uint16(0)}
	}
	cap16, err := safecast.Conv[uint16](maximum)
	if err != nil {
		panic(fmt.Errorf("diag: bag maximum overflow: %w", err))
	}
	return &Bag{items: make([]*Diagnostic, 0, cap16), maximum: cap16}
}

// Add appends d, unless the bag's capacity has been reached.
// Returns false when the diagnostic was dropped.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || len(b.items) >= int(b.maximum) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any diagnostic has at least SevError severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic has at least SevWarning severity.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the bag's diagnostics. Callers must not mutate the slice.
func (b *Bag) Items() []*Diagnostic { return b.items }

// Merge appends other's diagnostics into b, growing capacity if needed.
// Per-phase sinks are merged by the driver before rendering (spec.md
// section 2/7).
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := len(b.items) + len(other.items)
	cap16, err := safecast.Conv[uint16](total)
	if err != nil {
		panic(fmt.Errorf("diag: bag merge overflow: %w", err))
	}
	if cap16 > b.maximum {
		b.maximum = cap16
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by primary span start (then end, then severity
// descending, then code), giving deterministic, mergeable output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
