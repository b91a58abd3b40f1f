package tgw

import (
	"fmt"
	"strings"

	"github.com/brightwell/tgsynth/internal/mtl"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/tgerrors"
)

// Manifest contains the list of files named by a TGW manifest, along with
// any synchronized-action declaration it carries for its referenced plant
// fragments.
type Manifest struct {
	Files               []string
	SynchronizedActions []string
}

// LoadManifestFile reads and decodes a single MANIFEST file, without
// recursing into the files it names.
func LoadManifestFile(path string) (Manifest, error) {
	data, info, err := scanFile(path)
	if err != nil {
		return Manifest{}, err
	}
	if strings.ToUpper(info.Type) != "MANIFEST" {
		return Manifest{}, tgerrors.Parse(fmt.Sprintf("%q: 'type' must be \"MANIFEST\"", path))
	}
	top, err := unmarshalManifest(data)
	if err != nil {
		return Manifest{}, tgerrors.WrapParse(err, fmt.Sprintf("manifest file %q", path))
	}
	return Manifest{Files: top.Files, SynchronizedActions: top.SynchronizedActions}, nil
}

// LoadPlantFile loads a plant from a PLANT, PLANT_PRODUCT, or MANIFEST file.
// A PLANT_PRODUCT or MANIFEST's referenced files are resolved relative to
// the directory of the file that names them, recursively, the same way the
// original world-manifest inclusion chain does. A fragment that flattens down to
// exactly one component automaton with no declared synchronized actions is
// returned as that plain *plant.TimedAutomaton rather than wrapped in a
// single-component Product.
func LoadPlantFile(path string) (plant.Plant, error) {
	frag, err := recursiveLoadPlantFragment(path, nil)
	if err != nil {
		return nil, err
	}
	if len(frag.automata) == 0 {
		return nil, tgerrors.Parse(fmt.Sprintf("%q: resolved to no plant components", path))
	}
	if len(frag.automata) == 1 && len(frag.synced) == 0 {
		return frag.automata[0], nil
	}

	syncedElems := make([]plant.Action, 0, len(frag.synced))
	for name := range frag.synced {
		syncedElems = append(syncedElems, plant.Action(name))
	}
	return plant.NewProduct(frag.automata, setutil.Of(syncedElems...)), nil
}

// LoadSpecificationFile loads the MTL formula and its interpreting alphabet
// from a SPECIFICATION file.
func LoadSpecificationFile(path string) (mtl.Formula, []plant.Action, error) {
	data, info, err := scanFile(path)
	if err != nil {
		return mtl.Formula{}, nil, err
	}
	if strings.ToUpper(info.Type) != "SPECIFICATION" {
		return mtl.Formula{}, nil, tgerrors.Parse(fmt.Sprintf("%q: 'type' must be \"SPECIFICATION\"", path))
	}

	top, err := unmarshalSpecification(data)
	if err != nil {
		return mtl.Formula{}, nil, tgerrors.WrapParse(err, fmt.Sprintf("specification file %q", path))
	}

	phi, err := buildFormula(top.Formula)
	if err != nil {
		return mtl.Formula{}, nil, tgerrors.WrapParse(err, fmt.Sprintf("specification file %q: formula", path))
	}

	alphabet := make([]plant.Action, len(top.Alphabet))
	for i, a := range top.Alphabet {
		alphabet[i] = plant.Action(a)
	}
	return phi, alphabet, nil
}
