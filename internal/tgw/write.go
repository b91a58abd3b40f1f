package tgw

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/tgerrors"
)

// WritePlantFile renders ta as a single PLANT-format TGW file at path, the
// inverse of LoadPlantFile for the single-automaton case. Used by the CLI's
// --output flag to emit an extracted controller.
func WritePlantFile(path string, ta *plant.TimedAutomaton) error {
	top := topLevelPlant{
		Format:          "TGW",
		Type:            "PLANT",
		Locations:       locationStrings(ta.Locations),
		Alphabet:        actionStrings(ta.Alpha.Elements()),
		InitialLocation: string(ta.Initial),
		FinalLocations:  locationStrings(ta.Final.Elements()),
		Clocks:          ta.ClockNames,
	}
	for _, tr := range ta.Transitions {
		tt := tomlTransition{
			Source:      string(tr.Source),
			Symbol:      string(tr.Symbol),
			Target:      string(tr.Target),
			ClockResets: tr.Resets,
		}
		for _, g := range tr.Guards {
			tt.ClockConstraints = append(tt.ClockConstraints, tomlConstraint{
				Clock: g.Clock,
				Op:    g.Op.String(),
				Value: g.K,
			})
		}
		top.Transitions = append(top.Transitions, tt)
	}

	f, err := os.Create(path)
	if err != nil {
		return tgerrors.WrapParse(err, "creating output file")
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(top); err != nil {
		return tgerrors.WrapParse(err, "encoding controller as a plant file")
	}
	return nil
}

func locationStrings(locs []plant.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = string(l)
	}
	return out
}

func actionStrings(acts []plant.Action) []string {
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = string(a)
	}
	return out
}
