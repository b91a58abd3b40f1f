package tgw

import (
	"fmt"
	"strings"

	"github.com/brightwell/tgsynth/internal/clock"
	"github.com/brightwell/tgsynth/internal/mtl"
	"github.com/brightwell/tgsynth/internal/plant"
	"github.com/brightwell/tgsynth/internal/setutil"
	"github.com/brightwell/tgsynth/internal/tgerrors"
)

func buildPlant(top topLevelPlant) (*plant.TimedAutomaton, error) {
	locs := make([]plant.Location, len(top.Locations))
	for i, l := range top.Locations {
		locs[i] = plant.Location(l)
	}

	alphaElems := make([]plant.Action, len(top.Alphabet))
	for i, a := range top.Alphabet {
		alphaElems[i] = plant.Action(a)
	}
	alphabet := setutil.Of(alphaElems...)

	finalElems := make([]plant.Location, len(top.FinalLocations))
	for i, l := range top.FinalLocations {
		finalElems[i] = plant.Location(l)
	}
	final := setutil.Of(finalElems...)

	transitions := make([]plant.Transition, len(top.Transitions))
	for i, t := range top.Transitions {
		guards := make([]clock.Constraint, len(t.ClockConstraints))
		for j, c := range t.ClockConstraints {
			op, ok := clock.ParseComparator(c.Op)
			if !ok {
				return nil, tgerrors.Parse(fmt.Sprintf("transitions[%d]: clock_constraints[%d]: %q is not a valid comparator", i, j, c.Op))
			}
			constraint, err := clock.New(c.Clock, op, c.Value)
			if err != nil {
				return nil, tgerrors.WrapParse(err, fmt.Sprintf("transitions[%d]: clock_constraints[%d]", i, j))
			}
			guards[j] = constraint
		}
		transitions[i] = plant.Transition{
			Source: plant.Location(t.Source),
			Symbol: plant.Action(t.Symbol),
			Target: plant.Location(t.Target),
			Guards: guards,
			Resets: t.ClockResets,
		}
	}

	return plant.NewTimedAutomaton(locs, alphabet, plant.Location(top.InitialLocation), final, top.Clocks, transitions)
}

func buildFormula(tf tomlFormula) (mtl.Formula, error) {
	switch strings.ToUpper(tf.Kind) {
	case "CONSTANT":
		if tf.Value {
			return mtl.True(), nil
		}
		return mtl.False(), nil

	case "ATOMIC":
		if tf.Symbol == "" {
			return mtl.Formula{}, tgerrors.Parse("atomic formula missing 'symbol'")
		}
		return mtl.Atom(tf.Symbol), nil

	case "NEGATION":
		if tf.Operand == nil {
			return mtl.Formula{}, tgerrors.Parse("negation formula missing 'operand'")
		}
		operand, err := buildFormula(*tf.Operand)
		if err != nil {
			return mtl.Formula{}, err
		}
		return mtl.Not(operand), nil

	case "CONJUNCTION", "DISJUNCTION":
		if tf.Left == nil || tf.Right == nil {
			return mtl.Formula{}, tgerrors.Parse(fmt.Sprintf("%s formula requires 'left' and 'right'", strings.ToLower(tf.Kind)))
		}
		left, err := buildFormula(*tf.Left)
		if err != nil {
			return mtl.Formula{}, err
		}
		right, err := buildFormula(*tf.Right)
		if err != nil {
			return mtl.Formula{}, err
		}
		if strings.ToUpper(tf.Kind) == "CONJUNCTION" {
			return mtl.And(left, right), nil
		}
		return mtl.Or(left, right), nil

	case "UNTIL", "DUAL_UNTIL":
		if tf.Left == nil || tf.Right == nil {
			return mtl.Formula{}, tgerrors.Parse(fmt.Sprintf("%s formula requires 'left' and 'right'", strings.ToLower(tf.Kind)))
		}
		left, err := buildFormula(*tf.Left)
		if err != nil {
			return mtl.Formula{}, err
		}
		right, err := buildFormula(*tf.Right)
		if err != nil {
			return mtl.Formula{}, err
		}
		iv, err := buildInterval(tf.Interval)
		if err != nil {
			return mtl.Formula{}, err
		}
		if strings.ToUpper(tf.Kind) == "UNTIL" {
			return mtl.Until(left, right, iv), nil
		}
		return mtl.DualUntil(left, right, iv), nil

	case "FINALLY", "GLOBALLY":
		if tf.Operand == nil {
			return mtl.Formula{}, tgerrors.Parse(fmt.Sprintf("%s formula missing 'operand'", strings.ToLower(tf.Kind)))
		}
		operand, err := buildFormula(*tf.Operand)
		if err != nil {
			return mtl.Formula{}, err
		}
		iv, err := buildInterval(tf.Interval)
		if err != nil {
			return mtl.Formula{}, err
		}
		if strings.ToUpper(tf.Kind) == "FINALLY" {
			return mtl.Finally(operand, iv), nil
		}
		return mtl.Globally(operand, iv), nil

	default:
		return mtl.Formula{}, tgerrors.Parse(fmt.Sprintf("unknown formula kind %q", tf.Kind))
	}
}

func buildInterval(ti *tomlInterval) (mtl.Interval, error) {
	if ti == nil || (ti.Lower == nil && ti.Upper == nil) {
		return mtl.Unbounded(), nil
	}

	var iv mtl.Interval
	if ti.Lower != nil {
		strict, err := parseBoundType(ti.Lower.BoundType)
		if err != nil {
			return mtl.Interval{}, fmt.Errorf("interval: lower: %w", err)
		}
		l := mtl.Endpoint{Value: ti.Lower.Value, Strict: strict}
		iv.Lower = &l
	}
	if ti.Upper != nil {
		strict, err := parseBoundType(ti.Upper.BoundType)
		if err != nil {
			return mtl.Interval{}, fmt.Errorf("interval: upper: %w", err)
		}
		u := mtl.Endpoint{Value: ti.Upper.Value, Strict: strict}
		iv.Upper = &u
	}
	return iv, nil
}

func parseBoundType(s string) (bool, error) {
	switch strings.ToUpper(s) {
	case "", "CLOSED":
		return false, nil
	case "OPEN":
		return true, nil
	default:
		return false, tgerrors.Parse(fmt.Sprintf("bound_type must be \"OPEN\" or \"CLOSED\", got %q", s))
	}
}
