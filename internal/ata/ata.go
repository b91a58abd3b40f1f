package ata

import (
	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/tgerrors"
)

// Transition is one edge of the ATA: from Source, on Symbol, the successor
// configurations are the minimal models of Formula evaluated at the clock
// value the source state held.
type Transition[L comparable, A comparable] struct {
	Source  L
	Symbol  A
	Formula Formula[L]
}

// ATA is an alternating timed automaton: (alphabet, initial location,
// accepting locations, transitions).
type ATA[L comparable, A comparable] struct {
	Alphabet    setutil.Set[A]
	Initial     L
	Accepting   setutil.Set[L]
	Transitions []Transition[L, A]
	bySourceSym map[L]map[A]Formula[L]
}

// New builds an ATA, indexing transitions by (source, symbol) for O(1)
// lookup during symbol steps.
func New[L comparable, A comparable](alphabet setutil.Set[A], initial L, accepting setutil.Set[L], transitions []Transition[L, A]) *ATA[L, A] {
	idx := make(map[L]map[A]Formula[L])
	for _, tr := range transitions {
		if idx[tr.Source] == nil {
			idx[tr.Source] = make(map[A]Formula[L])
		}
		idx[tr.Source][tr.Symbol] = tr.Formula
	}
	return &ATA[L, A]{
		Alphabet:    alphabet,
		Initial:     initial,
		Accepting:   accepting,
		Transitions: transitions,
		bySourceSym: idx,
	}
}

// InitialConfiguration returns {(Initial, 0)}.
func (a *ATA[L, A]) InitialConfiguration() Configuration[L] {
	return setutil.Of(State[L]{Location: a.Initial, Clock: 0})
}

// transitionFormula looks up the formula governing (loc, symbol). If no
// transition is declared, the location has no continuation on that symbol,
// equivalent to FALSE.
func (a *ATA[L, A]) transitionFormula(loc L, symbol A) Formula[L] {
	if bySym, ok := a.bySourceSym[loc]; ok {
		if f, ok := bySym[symbol]; ok {
			return f
		}
	}
	return False[L]()
}

// Step performs one alternating symbol step from cfg on symbol a: for each
// state (L, v) in cfg, takes the minimal models of the matching
// transition's formula, and forms the Cartesian-product union across
// states. The result is the set of successor configurations.
func (a *ATA[L, A]) Step(cfg Configuration[L], symbol A) []Configuration[L] {
	combined := []Configuration[L]{setutil.New[State[L]]()}
	for _, state := range cfg.Elements() {
		formula := a.transitionFormula(state.Location, symbol)
		models := MinimalModels(formula, state.Clock)
		combined = setutil.CartesianUnion(combined, models)
		if len(combined) == 0 {
			return nil
		}
	}
	return combined
}

// TimeStep adds delta to every state's clock in cfg.
func (a *ATA[L, A]) TimeStep(cfg Configuration[L], delta clock.Value) Configuration[L] {
	next := setutil.New[State[L]]()
	for _, s := range cfg.Elements() {
		next.Add(State[L]{Location: s.Location, Clock: s.Clock.Tick(delta)})
	}
	return next
}

// IsAccepting reports whether cfg is an accepting configuration: either
// empty, or every state's location is an accepting location.
func (a *ATA[L, A]) IsAccepting(cfg Configuration[L]) bool {
	if cfg.Empty() {
		return true
	}
	for _, s := range cfg.Elements() {
		if !a.Accepting.Has(s.Location) {
			return false
		}
	}
	return true
}

// TimedSymbol is one (symbol, timestamp) pair of a timed word.
type TimedSymbol[A comparable] struct {
	Symbol    A
	Timestamp clock.Value
}

// ValidateTimedWord checks the §7 invariants for a timed word: the first
// timestamp must be zero and timestamps must be non-decreasing.
func ValidateTimedWord[A comparable](word []TimedSymbol[A]) error {
	if len(word) == 0 {
		return nil
	}
	if word[0].Timestamp != 0 {
		return tgerrors.InvalidTimedWord("first timestamp of a timed word must be zero")
	}
	for i := 1; i < len(word); i++ {
		if word[i].Timestamp < word[i-1].Timestamp {
			return tgerrors.InvalidTimedWord("timed word timestamps must be non-decreasing")
		}
	}
	return nil
}

// Accepts runs the ATA over word, alternating a time step (to the symbol's
// timestamp) and a symbol step for every entry, and reports whether any
// resulting run ends in an accepting configuration. It returns an error if
// word is malformed (§7) or if a run step is taken on an already-empty
// configuration set with nothing left to step (an ATA transition-type
// violation).
func Accepts[L comparable, A comparable](a *ATA[L, A], word []TimedSymbol[A]) (bool, error) {
	if err := ValidateTimedWord(word); err != nil {
		return false, err
	}

	configs := []Configuration[L]{a.InitialConfiguration()}
	lastTime := clock.Value(0)

	for _, ts := range word {
		if len(configs) == 0 {
			return false, tgerrors.ATATransition("time step attempted on an empty run")
		}
		delta := ts.Timestamp - lastTime
		var stepped []Configuration[L]
		for _, cfg := range configs {
			ticked := a.TimeStep(cfg, delta)
			stepped = append(stepped, a.Step(ticked, ts.Symbol)...)
		}
		configs = stepped
		lastTime = ts.Timestamp
	}

	for _, cfg := range configs {
		if a.IsAccepting(cfg) {
			return true, nil
		}
	}
	return false, nil
}
