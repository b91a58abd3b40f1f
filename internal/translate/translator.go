package translate

import (
	"github.com/brightwell/tgsynth/internal/ata"
	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/mtl"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/tgerrors"
)

// ataClock is the name given to the ATA's single implicit clock in every
// rendered Constraint; the ATA's transition semantics evaluate a state's
// clock value positionally and never consult this name, so any fixed
// placeholder is correct, but giving it a name keeps guard printing
// readable.
const ataClock = "x"

// Translate builds the alternating timed automaton for φ (which must already
// be in positive normal form) over alphabet, following the Ouaknine-Worrell
// construction of spec §4.4. It refuses an alphabet or formula that uses
// either of the translator's reserved location names as an atomic
// proposition symbol.
//
// Translate is generic over the action type A so that it can be handed the
// plant's own Action alphabet directly (component C7 composes the resulting
// ATA with a plant.Plant over the same alphabet type); A is constrained to
// types whose underlying representation is string, since the reserved-name
// check and init's atom comparison both work symbol-by-symbol as strings.
func Translate[A ~string](phi mtl.Formula, alphabet []A) (*ata.ATA[Location, A], error) {
	for _, a := range alphabet {
		if string(a) == reservedInitial || string(a) == reservedSink {
			return nil, tgerrors.ReservedName(string(a))
		}
	}
	for _, b := range phi.Atoms() {
		if b == reservedInitial || b == reservedSink {
			return nil, tgerrors.ReservedName(b)
		}
	}

	untilSubs := phi.SubformulasOfKind(mtl.KindUntil)
	dualSubs := phi.SubformulasOfKind(mtl.KindDualUntil)

	accepting := setutil.New[Location]()
	for _, d := range dualSubs {
		accepting.Add(subformulaLocation(d))
	}

	var transitions []ata.Transition[Location, A]

	for _, a := range alphabet {
		sa := string(a)
		transitions = append(transitions, ata.Transition[Location, A]{
			Source:  Initial(),
			Symbol:  a,
			Formula: initOf(phi, sa, true),
		})
		transitions = append(transitions, ata.Transition[Location, A]{
			Source:  Sink(),
			Symbol:  a,
			Formula: ata.AtLocation[Location](Sink()),
		})
	}

	for _, psi := range untilSubs {
		psi1, psi2, interval := psi.Left(), psi.Right(), psi.Interval()
		loc := subformulaLocation(psi)
		contains := containsInterval(interval)
		for _, a := range alphabet {
			sa := string(a)
			formula := ata.Or(
				ata.And(initOf(psi2, sa, false), contains),
				ata.And(initOf(psi1, sa, false), ata.AtLocation[Location](loc)),
			)
			transitions = append(transitions, ata.Transition[Location, A]{Source: loc, Symbol: a, Formula: formula})
		}
	}

	for _, psi := range dualSubs {
		psi1, psi2, interval := psi.Left(), psi.Right(), psi.Interval()
		loc := subformulaLocation(psi)
		notContains := negatedContainsInterval(interval)
		for _, a := range alphabet {
			sa := string(a)
			formula := ata.And(
				ata.Or(initOf(psi2, sa, false), notContains),
				ata.Or(initOf(psi1, sa, false), ata.AtLocation[Location](loc)),
			)
			transitions = append(transitions, ata.Transition[Location, A]{Source: loc, Symbol: a, Formula: formula})
		}
	}

	return ata.New(setutil.Of(alphabet...), Initial(), accepting, transitions), nil
}

// initOf implements init(ψ,a) per spec §4.4. top selects the bare
// location-reference variant used only when building the ℓ₀ transition;
// every recursive call (operands of And/Or, and the ψ1/ψ2 references inside
// an until/dual-until transition) passes top=false and so reaches an
// until/dual-until subformula through the reset-wrapped x.ψ form.
func initOf(psi mtl.Formula, a string, top bool) ata.Formula[Location] {
	switch psi.Kind() {
	case mtl.KindTrue:
		return ata.True[Location]()
	case mtl.KindFalse:
		return ata.False[Location]()
	case mtl.KindAtom:
		if psi.AtomSymbol() == a {
			return ata.True[Location]()
		}
		return ata.AtLocation[Location](Sink())
	case mtl.KindNot:
		// φ is in PNF, so the only formula Not can wrap here is an atom.
		b := psi.Left()
		if b.AtomSymbol() == a {
			return ata.AtLocation[Location](Sink())
		}
		return ata.True[Location]()
	case mtl.KindAnd:
		return ata.And(initOf(psi.Left(), a, false), initOf(psi.Right(), a, false))
	case mtl.KindOr:
		return ata.Or(initOf(psi.Left(), a, false), initOf(psi.Right(), a, false))
	case mtl.KindUntil, mtl.KindDualUntil:
		ref := ata.AtLocation[Location](subformulaLocation(psi))
		if top {
			return ref
		}
		return ata.Reset(ref)
	default:
		return ata.False[Location]()
	}
}

// containsInterval builds contains_I: the conjunction of clock-constraint
// formulas expressing v ∈ I, dropping whichever endpoint is infinite.
func containsInterval(i mtl.Interval) ata.Formula[Location] {
	var f ata.Formula[Location]
	have := false
	if i.Lower != nil {
		op := clock.GreaterEqual
		if i.Lower.Strict {
			op = clock.Greater
		}
		c, _ := clock.New(ataClock, op, i.Lower.Value)
		f = ata.WithConstraint[Location](c)
		have = true
	}
	if i.Upper != nil {
		op := clock.LessEqual
		if i.Upper.Strict {
			op = clock.Less
		}
		c, _ := clock.New(ataClock, op, i.Upper.Value)
		upper := ata.WithConstraint[Location](c)
		if have {
			f = ata.And(f, upper)
		} else {
			f = upper
			have = true
		}
	}
	if !have {
		return ata.True[Location]()
	}
	return f
}

// negatedContainsInterval builds ¬contains_I by negating each endpoint
// constraint individually and disjoining the results (De Morgan), which
// also drops whichever endpoint is infinite, same as containsInterval.
func negatedContainsInterval(i mtl.Interval) ata.Formula[Location] {
	var f ata.Formula[Location]
	have := false
	if i.Lower != nil {
		op := clock.Less
		if i.Lower.Strict {
			op = clock.LessEqual
		}
		c, _ := clock.New(ataClock, op, i.Lower.Value)
		f = ata.WithConstraint[Location](c)
		have = true
	}
	if i.Upper != nil {
		op := clock.Greater
		if i.Upper.Strict {
			op = clock.GreaterEqual
		}
		c, _ := clock.New(ataClock, op, i.Upper.Value)
		upper := ata.WithConstraint[Location](c)
		if have {
			f = ata.Or(f, upper)
		} else {
			f = upper
			have = true
		}
	}
	if !have {
		return ata.False[Location]()
	}
	return f
}
