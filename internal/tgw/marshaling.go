// Package tgw loads plant, specification, and manifest definitions from the
// TGW (Timed-Game World) file format, a TOML-based format carrying the
// plants, MTL specifications, and product/manifest composition a synthesis
// run needs.
//
// Grounded on the world-loading package's header-auto-detection and
// manifest-recursion shape, repurposed from game world data onto
// PLANT/PLANT_PRODUCT/SPECIFICATION/MANIFEST files.
package tgw

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/tgerrors"
)

// MaxManifestRecursionDepth bounds how many manifests deep a plant load may
// recurse before giving up, the same overflow guard the world loader uses.
const MaxManifestRecursionDepth = 32

var (
	// ErrManifestEmpty is returned when a manifest file is read successfully
	// but lists no usable files.
	ErrManifestEmpty = tgerrors.Parse("manifest does not list any valid files to include")

	// ErrManifestStackOverflow is returned when a chain of manifests nests
	// deeper than MaxManifestRecursionDepth.
	ErrManifestStackOverflow = tgerrors.Parse("too many manifests deep")

	// ErrManifestCircularRef is returned when a chain of manifests refers
	// back to one already on the stack; the caller skips such an entry
	// rather than treating the whole load as failed.
	ErrManifestCircularRef = tgerrors.Parse("manifest inclusion chain refers back to itself")
)

// ScanFileInfo reads just enough of data to learn its declared format and
// type, stopping at the first table header so the rest of the (possibly
// large) file need not be parsed.
func ScanFileInfo(data []byte) (FileInfo, error) {
	topLevelEnd := -1
	onNewLine := false
	for b := range data {
		if onNewLine && data[b] == '[' {
			topLevelEnd = b
			break
		}
		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var h header
	if err := toml.Unmarshal(scanData, &h); err != nil {
		return FileInfo{}, tgerrors.WrapParse(err, "reading file header")
	}
	return FileInfo{Format: h.Format, Type: h.Type}, nil
}

func scanFile(path string) ([]byte, FileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, FileInfo{}, tgerrors.WrapParse(err, fmt.Sprintf("reading %q", path))
	}
	info, err := ScanFileInfo(data)
	if err != nil {
		return nil, FileInfo{}, tgerrors.WrapParse(err, fmt.Sprintf("%q: detecting file type", path))
	}
	if strings.ToUpper(info.Format) != "TGW" {
		return nil, FileInfo{}, tgerrors.Parse(fmt.Sprintf("%q: file does not have a 'format = \"TGW\"' entry", path))
	}
	return data, info, nil
}

func unmarshalPlant(data []byte) (topLevelPlant, error) {
	var top topLevelPlant
	if err := toml.Unmarshal(data, &top); err != nil {
		return top, tgerrors.WrapParse(err, "decoding plant file")
	}
	if strings.ToUpper(top.Type) != "PLANT" {
		return top, tgerrors.Parse("in header: 'type' must be \"PLANT\"")
	}
	return top, nil
}

func unmarshalPlantProduct(data []byte) (topLevelPlantProduct, error) {
	var top topLevelPlantProduct
	if err := toml.Unmarshal(data, &top); err != nil {
		return top, tgerrors.WrapParse(err, "decoding plant product file")
	}
	if strings.ToUpper(top.Type) != "PLANT_PRODUCT" {
		return top, tgerrors.Parse("in header: 'type' must be \"PLANT_PRODUCT\"")
	}
	return top, nil
}

func unmarshalManifest(data []byte) (topLevelManifest, error) {
	var top topLevelManifest
	if err := toml.Unmarshal(data, &top); err != nil {
		return top, tgerrors.WrapParse(err, "decoding manifest file")
	}
	if strings.ToUpper(top.Type) != "MANIFEST" {
		return top, tgerrors.Parse("in header: 'type' must be \"MANIFEST\"")
	}
	return top, nil
}

func unmarshalSpecification(data []byte) (topLevelSpecification, error) {
	var top topLevelSpecification
	if err := toml.Unmarshal(data, &top); err != nil {
		return top, tgerrors.WrapParse(err, "decoding specification file")
	}
	if strings.ToUpper(top.Type) != "SPECIFICATION" {
		return top, tgerrors.Parse("in header: 'type' must be \"SPECIFICATION\"")
	}
	return top, nil
}

// plantFragment is one piece of a (possibly composite) plant load: the flat
// list of component automata discovered so far and the union of actions
// declared synchronized across them.
type plantFragment struct {
	automata []*plant.TimedAutomaton
	synced   map[string]bool
}

// recursiveLoadPlantFragment resolves path into a flat fragment, following
// PLANT_PRODUCT component lists and MANIFEST file lists the same way the
// original world-manifest recursion does: depth-bounded, and skipping (not
// failing on) a file already on the stack.
func recursiveLoadPlantFragment(path string, stack []string) (plantFragment, error) {
	path = filepath.Clean(path)

	data, info, err := scanFile(path)
	if err != nil {
		return plantFragment{}, err
	}

	switch strings.ToUpper(info.Type) {
	case "PLANT":
		top, err := unmarshalPlant(data)
		if err != nil {
			return plantFragment{}, tgerrors.WrapParse(err, fmt.Sprintf("plant file %q", path))
		}
		a, err := buildPlant(top)
		if err != nil {
			return plantFragment{}, tgerrors.WrapParse(err, fmt.Sprintf("plant file %q", path))
		}
		return plantFragment{automata: []*plant.TimedAutomaton{a}, synced: map[string]bool{}}, nil

	case "PLANT_PRODUCT":
		if len(stack) >= MaxManifestRecursionDepth {
			return plantFragment{}, tgerrors.WrapParse(ErrManifestStackOverflow, fmt.Sprintf("plant product file %q", path))
		}
		for _, seen := range stack {
			if seen == path {
				return plantFragment{}, ErrManifestCircularRef
			}
		}

		top, err := unmarshalPlantProduct(data)
		if err != nil {
			return plantFragment{}, tgerrors.WrapParse(err, fmt.Sprintf("plant product file %q", path))
		}
		subStack := append(append([]string(nil), stack...), path)
		return recursiveLoadComponentList(path, top.Components, top.SynchronizedActions, subStack)

	case "MANIFEST":
		if len(stack) >= MaxManifestRecursionDepth {
			return plantFragment{}, tgerrors.WrapParse(ErrManifestStackOverflow, fmt.Sprintf("manifest file %q", path))
		}
		for _, seen := range stack {
			if seen == path {
				return plantFragment{}, ErrManifestCircularRef
			}
		}

		top, err := unmarshalManifest(data)
		if err != nil {
			return plantFragment{}, tgerrors.WrapParse(err, fmt.Sprintf("manifest file %q", path))
		}
		if len(top.Files) < 1 {
			return plantFragment{}, tgerrors.WrapParse(ErrManifestEmpty, fmt.Sprintf("manifest file %q", path))
		}

		subStack := append(append([]string(nil), stack...), path)
		return recursiveLoadComponentList(path, top.Files, top.SynchronizedActions, subStack)

	default:
		return plantFragment{}, tgerrors.Parse(fmt.Sprintf("%q: 'type' must be one of \"PLANT\", \"PLANT_PRODUCT\", or \"MANIFEST\" for plant loading, got %q", path, info.Type))
	}
}

func recursiveLoadComponentList(path string, relComponents, syncedActions []string, stack []string) (plantFragment, error) {
	dir := filepath.Dir(path)
	out := plantFragment{synced: map[string]bool{}}
	for _, name := range syncedActions {
		out.synced[name] = true
	}

	processed := 0
	for _, rel := range relComponents {
		componentPath := filepath.Join(dir, rel)
		frag, err := recursiveLoadPlantFragment(componentPath, stack)
		if err != nil {
			if err == ErrManifestCircularRef {
				continue
			}
			return plantFragment{}, tgerrors.WrapParse(err, fmt.Sprintf("in file referred to by %q", path))
		}
		out.automata = append(out.automata, frag.automata...)
		for name := range frag.synced {
			out.synced[name] = true
		}
		processed++
	}

	if len(stack) == 0 && processed == 0 {
		return plantFragment{}, tgerrors.WrapParse(ErrManifestEmpty, fmt.Sprintf("manifest file %q", path))
	}
	return out, nil
}
