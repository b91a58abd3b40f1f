/*
Tgsynth synthesizes a time-deterministic controller for a real-time
two-player reachability game over a timed plant against an MTL
specification, and emits it as a timed automaton.

Usage:

	tgsynth [flags]

The flags are:

	-v, --version
		Give the current version of tgsynth and then exit.

	--plant FILE
		The TGW plant, plant-product, or manifest file describing the
		environment to synthesize a controller over.

	--specification FILE
		The TGW specification file containing the MTL formula to satisfy.

	--controller-action ACTION
		Declare ACTION as controller-owned. Repeatable. Every alphabet
		symbol not declared this way is treated as environment-owned.

	-k, --k N
		The region-abstraction granularity bound. Defaults to the
		specification formula's own largest integer constant.

	--single-threaded
		Drive the search with synchronous Step calls instead of the
		concurrent worker pool.

	--debug
		Raise log verbosity to trace and, combined with
		--single-threaded, drop into an interactive step-through shell.

	-d, --direct
		Force the debug shell to read stdin directly instead of through
		GNU-readline-based routines.

	--visualize-search-tree FILE
		Render the search DAG as Graphviz ".dot" source to FILE.

	--visualize-controller FILE
		Render the extracted controller as Graphviz ".dot" source to FILE.

	--hide-controller-labels
		Omit guard/reset text from --visualize-controller output.

	--output FILE
		Write the extracted controller as a PLANT-format TGW file to FILE.
		Defaults to "controller.plant".

	--heuristic NAME
		Expansion-order heuristic: bfs, dfs, time, words, environment, or
		random. Defaults to bfs.
*/
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/brightwell/tgsynth/internal/extract"
	"github.com/brightwell/tgsynth/internal/heuristic"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/search"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/tgdebug"
	"github.com/brightwell/tgsynth/internal/tgerrors"
	"github.com/brightwell/tgsynth/internal/tgviz"
	"github.com/brightwell/tgsynth/internal/tgw"
	"github.com/brightwell/tgsynth/internal/translate"
	"github.com/brightwell/tgsynth/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful synthesis run.
	ExitSuccess = iota

	// ExitInputError indicates a problem loading or translating the plant,
	// specification, or flag configuration.
	ExitInputError

	// ExitSearchError indicates a problem during search or controller
	// extraction.
	ExitSearchError
)

var (
	returnCode = ExitSuccess

	flagVersion      = pflag.BoolP("version", "v", false, "Gives the version info")
	plantFile        = pflag.String("plant", "", "The TGW plant, plant-product, or manifest file")
	specFile         = pflag.String("specification", "", "The TGW specification file")
	controllerAction = pflag.StringArray("controller-action", nil, "Declare an action as controller-owned; repeatable")
	kBound           = pflag.IntP("k", "k", 0, "Region-abstraction granularity bound; 0 uses the formula's own largest constant")
	singleThreaded   = pflag.Bool("single-threaded", false, "Drive the search synchronously instead of with the worker pool")
	debug            = pflag.Bool("debug", false, "Raise log verbosity to trace; with --single-threaded, drop into a step shell")
	forceDirect      = pflag.BoolP("direct", "d", false, "Force the debug shell to read stdin directly instead of via GNU readline")
	vizSearchTree    = pflag.String("visualize-search-tree", "", "Render the search DAG as Graphviz dot source to this file")
	vizController    = pflag.String("visualize-controller", "", "Render the extracted controller as Graphviz dot source to this file")
	hideLabels       = pflag.Bool("hide-controller-labels", false, "Omit guard/reset text from --visualize-controller output")
	outputFile       = pflag.String("output", "controller.plant", "Where to write the extracted controller as a PLANT-format TGW file")
	heuristicName    = pflag.String("heuristic", "bfs", "Expansion heuristic: bfs, dfs, time, words, environment, random")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.String())
		return
	}

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.TraceLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	if err := run(&logger); err != nil {
		logger.Error().Err(err).Msg("synthesis failed")
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", tgerrors.Diagnostic(err))
	}
}

func run(logger *zerolog.Logger) error {
	if *plantFile == "" || *specFile == "" {
		returnCode = ExitInputError
		return tgerrors.Parse("--plant and --specification are both required")
	}

	p, err := tgw.LoadPlantFile(*plantFile)
	if err != nil {
		returnCode = ExitInputError
		return err
	}

	phi, _, err := tgw.LoadSpecificationFile(*specFile)
	if err != nil {
		returnCode = ExitInputError
		return err
	}
	phi = phi.ToPositiveNormalForm()

	alphabet := p.Alphabet().Elements()

	automaton, err := translate.Translate[plant.Action](phi, alphabet)
	if err != nil {
		returnCode = ExitInputError
		return err
	}

	k := *kBound
	if k <= 0 {
		k = phi.LargestConstant()
	}

	controllerActions := setutil.Of(asActions(*controllerAction)...)
	environmentActions := setutil.New[plant.Action]()
	for _, a := range alphabet {
		if !controllerActions.Has(a) {
			environmentActions.Add(a)
		}
	}

	h, err := resolveHeuristic(*heuristicName)
	if err != nil {
		returnCode = ExitInputError
		return err
	}

	workers := runtime.NumCPU()
	if *singleThreaded {
		workers = 1
	}

	cfg := search.Config{
		ControllerActions:   controllerActions,
		EnvironmentActions:  environmentActions,
		K:                   k,
		IncrementalLabeling: true,
		TerminateEarly:      true,
		Heuristic:           h,
		Workers:             workers,
		Logger:              logger,
	}

	eng, err := search.New[translate.Location](p, automaton, cfg)
	if err != nil {
		returnCode = ExitInputError
		return err
	}

	if err := drive(eng, logger); err != nil {
		returnCode = ExitSearchError
		return err
	}
	eng.Label(nil)

	controller, err := extract.Extract[translate.Location](eng.Root, k)
	if err != nil {
		returnCode = ExitSearchError
		return err
	}

	if *vizSearchTree != "" {
		if err := os.WriteFile(*vizSearchTree, []byte(tgviz.RenderSearchTree(eng.Root)), 0o644); err != nil {
			returnCode = ExitSearchError
			return tgerrors.WrapParse(err, "writing search tree visualization")
		}
	}
	if *vizController != "" {
		dot := tgviz.RenderController(controller, *hideLabels)
		if err := os.WriteFile(*vizController, []byte(dot), 0o644); err != nil {
			returnCode = ExitSearchError
			return tgerrors.WrapParse(err, "writing controller visualization")
		}
	}

	if err := tgw.WritePlantFile(*outputFile, controller); err != nil {
		returnCode = ExitSearchError
		return err
	}

	return nil
}

// drive runs the search to completion, either through the interactive debug
// shell (--debug plus --single-threaded), a plain synchronous step loop
// (--single-threaded alone), or the concurrent worker pool.
func drive(eng *search.Engine[translate.Location], logger *zerolog.Logger) error {
	switch {
	case *singleThreaded && *debug:
		return tgdebug.Run(tgdebug.Wrap(eng), os.Stdin, os.Stdout, *forceDirect)
	case *singleThreaded:
		for eng.Step() {
		}
		return nil
	default:
		return eng.Run()
	}
}

func asActions(names []string) []plant.Action {
	out := make([]plant.Action, len(names))
	for i, n := range names {
		out[i] = plant.Action(n)
	}
	return out
}

func resolveHeuristic(name string) (heuristic.Heuristic, error) {
	switch name {
	case "bfs", "":
		return heuristic.BFS(), nil
	case "dfs":
		return heuristic.DFS(), nil
	case "time":
		return heuristic.Time(), nil
	case "words":
		return heuristic.NumCanonicalWords(), nil
	case "environment":
		return heuristic.PreferEnvironment(), nil
	case "random":
		return heuristic.Random(1), nil
	default:
		return nil, tgerrors.Parse(fmt.Sprintf("unknown heuristic %q", name))
	}
}
