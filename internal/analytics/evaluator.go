// Package analytics derives performance metrics from logged sets: estimated
// one-rep max per set, volume per session, and progress series over a user's
// session history.
package analytics

import (
	"fmt"
	"math"
)

// Rounding selects how an Epley estimate is rounded.
type Rounding string

const (
	RoundNearest Rounding = "nearest"
	RoundFloor   Rounding = "floor"
	RoundNone    Rounding = "none"
)

// DefaultRepCutoff is the highest rep count the Epley estimate is trusted for.
const DefaultRepCutoff = 10

// ParseRounding maps a config value to a Rounding. Empty means nearest.
func ParseRounding(s string) (Rounding, error) {
	switch r := Rounding(s); r {
	case "":
		return RoundNearest, nil
	case RoundNearest, RoundFloor, RoundNone:
		return r, nil
	default:
		return "", fmt.Errorf("unknown rounding mode %q", s)
	}
}

// Formula is the set evaluator policy: Epley with a high-rep cutoff.
type Formula struct {
	RepCutoff int
	Rounding  Rounding
}

// DefaultFormula returns Epley with a 10 rep cutoff, rounded to the nearest integer.
func DefaultFormula() Formula {
	return Formula{RepCutoff: DefaultRepCutoff, Rounding: RoundNearest}
}

// Evaluate returns the estimated one-rep max for a set of reps at weight.
// Sets above the cutoff estimate to 0 ("no estimate"), single reps return the
// lifted weight unchanged. Callers guarantee positive inputs.
func (f Formula) Evaluate(weight float64, reps int) float64 {
	if reps > f.RepCutoff {
		return 0
	}
	if reps == 1 {
		return weight
	}

	estimate := weight * (1 + float64(reps)/30)
	switch f.Rounding {
	case RoundFloor:
		return math.Floor(estimate)
	case RoundNone:
		return estimate
	default:
		return math.Round(estimate)
	}
}
