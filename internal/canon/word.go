// Package canon implements the canonical AB-word abstraction (component
// C6): the regionalized joint plant+ATA configuration, its candidate
// concretization, time-successor stepping, monotonic domination, and the
// reg_A projection used as the search engine's node identity.
//
// Grounded on
// _examples/original_source/src/search/include/search/canonical_word.h,
// synchronous_product.h (get_canonical_word, get_time_successor,
// get_candidate, get_nth_time_successor), operators.h
// (is_monotonically_dominated), and reg_a.h.
package canon

import (
	"fmt"
	"sort"

	"github.com/brightwell/tgsynth/internal/ata"
	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/tgerrors"
)

type symbolKind int

const (
	symbolPlant symbolKind = iota
	symbolATA
)

// PlantRegionState is a regionalized (location, clock name, region index)
// triple, one per clock of a plant configuration.
type PlantRegionState struct {
	Location plant.Location
	Clock    string
	Region   clock.RegionIndex
}

// ATARegionState is a regionalized (location, region index) pair, one per
// state of an ATA configuration.
type ATARegionState[T comparable] struct {
	Location T
	Region   clock.RegionIndex
}

// RegionSymbol is either a PlantRegionState or an ATARegionState[T], the
// element type of a canonical word's partitions.
type RegionSymbol[T comparable] struct {
	kind  symbolKind
	plant PlantRegionState
	ata   ATARegionState[T]
}

// PlantSymbol wraps a PlantRegionState as a RegionSymbol.
func PlantSymbol[T comparable](s PlantRegionState) RegionSymbol[T] {
	return RegionSymbol[T]{kind: symbolPlant, plant: s}
}

// ATASymbol wraps an ATARegionState as a RegionSymbol.
func ATASymbol[T comparable](s ATARegionState[T]) RegionSymbol[T] {
	return RegionSymbol[T]{kind: symbolATA, ata: s}
}

// IsPlant reports whether sym wraps a PlantRegionState.
func (sym RegionSymbol[T]) IsPlant() bool { return sym.kind == symbolPlant }

// Plant returns the wrapped PlantRegionState. Panics if !IsPlant().
func (sym RegionSymbol[T]) Plant() PlantRegionState {
	if sym.kind != symbolPlant {
		panic("canon: Plant() called on an ATA region symbol")
	}
	return sym.plant
}

// ATA returns the wrapped ATARegionState. Panics if IsPlant().
func (sym RegionSymbol[T]) ATA() ATARegionState[T] {
	if sym.kind != symbolATA {
		panic("canon: ATA() called on a plant region symbol")
	}
	return sym.ata
}

// RegionIndex returns the region index of either variant.
func (sym RegionSymbol[T]) RegionIndex() clock.RegionIndex {
	if sym.kind == symbolPlant {
		return sym.plant.Region
	}
	return sym.ata.Region
}

func (sym RegionSymbol[T]) withRegion(idx clock.RegionIndex) RegionSymbol[T] {
	if sym.kind == symbolPlant {
		p := sym.plant
		p.Region = idx
		return PlantSymbol[T](p)
	}
	a := sym.ata
	a.Region = idx
	return ATASymbol[T](a)
}

func (sym RegionSymbol[T]) String() string {
	if sym.kind == symbolPlant {
		return fmt.Sprintf("(%s, %s, %d)", sym.plant.Location, sym.plant.Clock, sym.plant.Region)
	}
	return fmt.Sprintf("(%v, %d)", sym.ata.Location, sym.ata.Region)
}

// Partition is one letter of a canonical word: a set of region symbols that
// share the same fractional part.
type Partition[T comparable] = setutil.Set[RegionSymbol[T]]

// Word is a canonical AB-word: a sequence of partitions in ascending order
// of the fractional part they were built from.
type Word[T comparable] []Partition[T]

// String renders w with its partitions' contents sorted, for deterministic
// diagnostics and as the basis of the reg_A hash key used by the search
// engine.
func (w Word[T]) String() string {
	out := "["
	for i, p := range w {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	return out + "]"
}

func isEvenPartition[T comparable](p Partition[T]) bool {
	for _, sym := range p.Elements() {
		return sym.RegionIndex()%2 == 0
	}
	return true
}

func allMaxed[T comparable](p Partition[T], maxRegion clock.RegionIndex) bool {
	for _, sym := range p.Elements() {
		if sym.RegionIndex() != maxRegion {
			return false
		}
	}
	return true
}

// Validate checks the §3 well-formedness invariants: the word is non-empty,
// no partition is empty, every partition is either all-even or all-odd, and
// only the first partition may hold even (fractional-zero) region indexes.
func Validate[T comparable](w Word[T]) error {
	if len(w) == 0 {
		return tgerrors.InvalidCanonicalWord("word is empty")
	}
	for i, p := range w {
		if p.Empty() {
			return tgerrors.InvalidCanonicalWord("word contains an empty partition")
		}
		sawEven, sawOdd := false, false
		for _, sym := range p.Elements() {
			if sym.RegionIndex()%2 == 0 {
				sawEven = true
			} else {
				sawOdd = true
			}
		}
		if sawEven && sawOdd {
			return tgerrors.InvalidCanonicalWord("partition mixes even and odd region indexes")
		}
		if i > 0 && sawEven {
			return tgerrors.InvalidCanonicalWord("fractional part zero outside the first partition")
		}
	}
	return nil
}

// mustValid panics (via tgerrors.MustValid) if w violates Validate; used at
// the boundary of every canonical-word constructor, mirroring the
// originals' assert(is_valid_canonical_word(word)).
func mustValid[T comparable](w Word[T]) {
	err := Validate(w)
	tgerrors.MustValid(err == nil, errString(err))
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// GetCanonicalWord computes H(s) for the joint plant+ATA configuration s =
// (plantConfig, ataConfig), per §4.5: materialize one RegionSymbol per
// plant clock and per ATA state, partition by (epsilon-approximate)
// fractional part, sort ascending, and regionalize.
func GetCanonicalWord[T comparable](plantConfig plant.Configuration, ataConfig ata.Configuration[T], k int) Word[T] {
	type concrete struct {
		sym   RegionSymbol[T]
		value clock.Value
	}
	var symbols []concrete

	for name, v := range plantConfig.Valuations {
		symbols = append(symbols, concrete{
			sym:   PlantSymbol[T](PlantRegionState{Location: plantConfig.Location, Clock: name, Region: clock.Regionalize(v, k)}),
			value: v,
		})
	}
	for _, st := range ataConfig.Elements() {
		symbols = append(symbols, concrete{
			sym:   ATASymbol[T](ATARegionState[T]{Location: st.Location, Region: clock.Regionalize(st.Clock, k)}),
			value: st.Clock,
		})
	}

	sort.SliceStable(symbols, func(i, j int) bool {
		return symbols[i].value.FracPart() < symbols[j].value.FracPart()
	})

	// Build partitions by scanning the sorted symbols and starting a new
	// partition whenever the fractional part jumps by more than epsilon.
	const epsilon = 1e-9
	var w Word[T]
	var lastFrac float64
	haveLast := false
	for _, s := range symbols {
		f := s.value.FracPart()
		if !haveLast || f-lastFrac > epsilon {
			w = append(w, setutil.New[RegionSymbol[T]]())
			lastFrac = f
			haveLast = true
		}
		w[len(w)-1].Add(s.sym)
	}

	mustValid(w)
	return w
}

// GetCandidate picks a representative concrete joint configuration whose
// canonicalization equals w, per §4.5: a fractional delta 1/(n+1) for a word
// of n partitions, even indices get fractional 0, odd indices get the
// partition's chosen fractional value, integer parts are idx/2.
func GetCandidate[T comparable](w Word[T]) (plant.Configuration, ata.Configuration[T]) {
	mustValid(w)
	timeDelta := 1.0 / float64(len(w)+1)

	plantLoc := plant.Location("")
	valuations := make(map[string]clock.Value)
	ataCfg := setutil.New[ata.State[T]]()

	for i, partition := range w {
		frac := 0.0
		for _, sym := range partition.Elements() {
			if sym.RegionIndex()%2 != 0 {
				frac = timeDelta * float64(i+1)
				break
			}
		}
		for _, sym := range partition.Elements() {
			integral := sym.RegionIndex().IntValue()
			v := clock.Value(float64(integral) + frac)
			if sym.IsPlant() {
				p := sym.Plant()
				plantLoc = p.Location
				valuations[p.Clock] = v
			} else {
				a := sym.ATA()
				ataCfg.Add(ata.State[T]{Location: a.Location, Clock: v})
			}
		}
	}

	return plant.NewConfiguration(plantLoc, valuations), ataCfg
}

// GetTimeSuccessor returns the canonical word directly reachable from w by
// pure time passage, per §4.5's algorithm.
func GetTimeSuccessor[T comparable](w Word[T], k int) Word[T] {
	mustValid(w)
	if len(w) == 0 {
		return w
	}
	maxRegion := clock.Saturated(k)
	n := len(w)

	lastNonMaxedIdx := n - 1
	maxedPartition := setutil.New[RegionSymbol[T]]()
	if allMaxed(w[n-1], maxRegion) {
		maxedPartition = w[n-1].Copy()
		lastNonMaxedIdx = n - 2
	}
	if lastNonMaxedIdx < 0 {
		// Every partition is already saturated; time passage changes nothing.
		return w
	}

	var out Word[T]

	incNonMaxed, incMaxed := incrementRegionIndexes(w[lastNonMaxedIdx], maxRegion)
	maxedPartition = maxedPartition.Union(incMaxed)
	if !incNonMaxed.Empty() {
		out = append(out, incNonMaxed)
	}

	if lastNonMaxedIdx != 0 {
		first := w[0]
		if isEvenPartition(first) {
			firstNonMaxed, firstMaxed := incrementRegionIndexes(first, maxRegion)
			maxedPartition = maxedPartition.Union(firstMaxed)
			if !firstNonMaxed.Empty() {
				out = append(out, firstNonMaxed)
			}
		} else {
			out = append(out, first)
		}
		for i := 1; i < lastNonMaxedIdx; i++ {
			out = append(out, w[i])
		}
	}

	if !maxedPartition.Empty() {
		out = append(out, maxedPartition)
	}

	mustValid(out)
	return out
}

func incrementRegionIndexes[T comparable](p Partition[T], maxRegion clock.RegionIndex) (nonMaxed, maxed Partition[T]) {
	nonMaxed = setutil.New[RegionSymbol[T]]()
	maxed = setutil.New[RegionSymbol[T]]()
	for _, sym := range p.Elements() {
		idx := sym.RegionIndex()
		if idx < maxRegion {
			idx++
		}
		incremented := sym.withRegion(idx)
		if idx == maxRegion {
			maxed.Add(incremented)
		} else {
			nonMaxed.Add(incremented)
		}
	}
	return nonMaxed, maxed
}

// GetNthTimeSuccessor iterates GetTimeSuccessor n times; the sequence
// reaches a fixed point once every partition is saturated.
func GetNthTimeSuccessor[T comparable](w Word[T], n int, k int) Word[T] {
	res := w
	for i := 0; i < n; i++ {
		res = GetTimeSuccessor(res, k)
	}
	return res
}

// TimeSuccessor pairs a canonical word with the number of GetTimeSuccessor
// applications (the region increment) that produced it from some base word.
type TimeSuccessor[T comparable] struct {
	Increment int
	Word      Word[T]
}

// GetTimeSuccessors enumerates every distinct time successor of w, starting
// at increment 0 (w itself) and repeatedly applying GetTimeSuccessor until it
// reaches its fixed point (the fully saturated word, where every partition
// has reached region 2K+1). Grounded on synchronous_product.h's
// get_time_successors, which the search engine uses to avoid recomputing the
// successor chain once per candidate action.
func GetTimeSuccessors[T comparable](w Word[T], k int) []TimeSuccessor[T] {
	successors := []TimeSuccessor[T]{{Increment: 0, Word: w}}
	cur := GetTimeSuccessor(w, k)
	index := 1
	for cur.String() != successors[len(successors)-1].Word.String() {
		successors = append(successors, TimeSuccessor[T]{Increment: index, Word: cur})
		index++
		cur = GetTimeSuccessor(successors[len(successors)-1].Word, k)
	}
	return successors
}

// IsMonotonicallyDominated reports whether w2 dominates w1: there is a
// monotone, partition-order-preserving injection from w1's partitions into
// w2's such that each image partition is a superset of its pre-image.
func IsMonotonicallyDominated[T comparable](w1, w2 Word[T]) bool {
	cursor := 0
	for _, p1 := range w1 {
		found := -1
		for j := cursor; j < len(w2); j++ {
			if p1.SubsetOf(w2[j]) {
				found = j
				break
			}
		}
		if found == -1 {
			return false
		}
		cursor = found + 1
	}
	return true
}

// IsSetMonotonicallyDominated reports whether S₁ ≼ S₂: every w2 in set2 has
// some w1 in set1 with w1 ≼ w2.
func IsSetMonotonicallyDominated[T comparable](set1, set2 []Word[T]) bool {
	for _, w2 := range set2 {
		dominated := false
		for _, w1 := range set1 {
			if IsMonotonicallyDominated(w1, w2) {
				dominated = true
				break
			}
		}
		if !dominated {
			return false
		}
	}
	return true
}

// RegA projects w onto its plant region symbols, dropping every ATA region
// symbol and any partition left empty by that removal. Two nodes share the
// same plant-projection iff RegA coincides; the search engine uses this as
// the node-identity hash key.
func RegA[T comparable](w Word[T]) Word[T] {
	var res Word[T]
	for _, p := range w {
		filtered := setutil.New[RegionSymbol[T]]()
		for _, sym := range p.Elements() {
			if sym.IsPlant() {
				filtered.Add(sym)
			}
		}
		if !filtered.Empty() {
			res = append(res, filtered)
		}
	}
	return res
}
