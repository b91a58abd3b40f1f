// Package succ implements the successor generator (component C7): for a
// joint plant+ATA configuration, the per-action Cartesian product of plant
// successors and ATA successors, each pair canonicalized into a region word.
//
// Grounded on
// _examples/original_source/src/search/include/search/ta_adapter.h's
// specialization of get_next_canonical_words for timed-automaton plants
// (adapter.h defines the generic, plant-agnostic functor this specializes).
package succ

import (
	"github.com/brightwell/tgsynth/internal/ata"
	"github.com/brightwell/tgsynth/internal/canon"
	"github.com/brightwell/tgsynth/internal/plant"
)

// Next computes, for every action the plant enables from plantConfig, the
// set of canonical words reachable by taking that action from the joint
// configuration (plantConfig, ataConfig): the Cartesian product of the
// plant's successor configurations and the ATA's alternating successor
// configurations on that action, each pair canonicalized via
// canon.GetCanonicalWord and grouped by the action that produced it.
//
// This mirrors ta_adapter.h's get_next_canonical_words exactly: the
// minimal-model Cartesian union across an ATA configuration's individual
// states already happens inside ata.ATA.Step, so here the only further
// product needed is plant successor × ATA successor.
func Next[T comparable](p plant.Plant, automaton *ata.ATA[T, plant.Action], plantConfig plant.Configuration, ataConfig ata.Configuration[T], k int) map[plant.Action][]canon.Word[T] {
	result := make(map[plant.Action][]canon.Word[T])

	for _, a := range p.Alphabet().Elements() {
		plantSuccessors := p.Step(plantConfig, a)
		if len(plantSuccessors) == 0 {
			continue
		}
		ataSuccessors := automaton.Step(ataConfig, a)
		if len(ataSuccessors) == 0 {
			continue
		}

		var words []canon.Word[T]
		for _, ps := range plantSuccessors {
			for _, as := range ataSuccessors {
				words = append(words, canon.GetCanonicalWord(ps, as, k))
			}
		}
		if len(words) > 0 {
			result[a] = words
		}
	}

	return result
}
