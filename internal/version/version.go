// Package version contains information on the current version of the
// synthesis tool. It is split from the main program for easy use.
package version

// Current is the tool's own semantic version, independent of the
// region-abstraction bound or heuristic a given run selects.
const Current = "0.1.0"

// Name is the CLI binary's name, used alongside Current to build the
// string -v/--version prints.
const Name = "tgsynth"

// String formats the tool's name and version as printed by -v/--version,
// e.g. "tgsynth v0.1.0".
func String() string {
	return Name + " v" + Current
}
