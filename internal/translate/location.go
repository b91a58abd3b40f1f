// Package translate implements the MTL-to-ATA translator (component C5):
// the Ouaknine-Worrell construction, grounded on
// _examples/original_source/src/mtl_ata_translation/translator.cpp
// (get_closure, create_contains, create_negated_contains, init, translate).
package translate

import "github.com/brightwell/tgsynth/internal/mtl"

// reservedInitial and reservedSink are the two location names the
// translator owns; an input alphabet or formula that uses either as an
// atomic proposition symbol is rejected.
const (
	reservedInitial = "ℓ₀" // ℓ₀
	reservedSink    = "sink"
)

type locKind int

const (
	locSubformula locKind = iota
	locInitial
	locSink
)

// Location is one ATA location produced by the translator: either the
// designated initial location ℓ₀, the designated sink (trap) location, or a
// reference to one of φ's until/dual-until subformulas. Two Locations
// wrapping the same subformula compare equal only when they wrap the exact
// same mtl.Formula value threaded through from SubformulasOfKind; the
// translator is careful never to reconstruct an equivalent-but-distinct
// Formula for use as a location key.
type Location struct {
	kind    locKind
	formula mtl.Formula
}

// Initial returns the ℓ₀ location.
func Initial() Location { return Location{kind: locInitial} }

// Sink returns the sink (trap) location: once entered, an ATA run can never
// leave it and it is never an accepting location. The translator inserts it
// wherever init(ψ,a) would otherwise be the bare FALSE formula, so that a
// permanently-dead branch is still representable inside a canonical word
// instead of silently vanishing from the symbol step.
func Sink() Location { return Location{kind: locSink} }

func subformulaLocation(f mtl.Formula) Location {
	return Location{kind: locSubformula, formula: f}
}

// IsSink reports whether l is the sink location. The search engine's
// satisfiability check (a canonical word is dead once any of its ATA symbols
// is in sink) uses this to detect a structurally dead ATA branch and prune
// early.
func (l Location) IsSink() bool { return l.kind == locSink }

// IsInitial reports whether l is ℓ₀.
func (l Location) IsInitial() bool { return l.kind == locInitial }

// String renders l for diagnostics and graphviz output.
func (l Location) String() string {
	switch l.kind {
	case locInitial:
		return reservedInitial
	case locSink:
		return reservedSink
	default:
		return l.formula.String()
	}
}
