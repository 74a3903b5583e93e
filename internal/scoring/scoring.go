// Package scoring turns test counts into a numeric grade under a credit policy.
package scoring

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for counts that cannot come from an interpreted run.
var ErrInvalidInput = errors.New("invalid scoring input")

// Status is the outcome of a scored run.
type Status string

const (
	StatusPass  Status = "pass"
	StatusError Status = "error"
)

// Result is a computed score and its status.
// Score always lies within [0, maxScore].
type Result struct {
	Score  float64
	Status Status
}

// Score computes the grade for a run of total tests with errors failures.
//
// Without errors the full maxScore is awarded. With errors and partial credit
// enabled the score is proportional to the passing fraction, rounded to two
// decimal places; otherwise it is zero.
//
// total must be at least 1: an empty run is rejected upstream by the interpreter,
// and Score refuses it instead of dividing by zero.
func Score(total, errs int, maxScore float64, partialCredit bool) (Result, error) {
	if total < 1 {
		return Result{}, fmt.Errorf("%w: total must be at least 1, got %d", ErrInvalidInput, total)
	}
	if errs < 0 || errs > total {
		return Result{}, fmt.Errorf("%w: errors must be within [0, %d], got %d", ErrInvalidInput, total, errs)
	}
	if maxScore < 0 || math.IsNaN(maxScore) || math.IsInf(maxScore, 0) {
		return Result{}, fmt.Errorf("%w: max score must be a finite non-negative number, got %v", ErrInvalidInput, maxScore)
	}

	if errs == 0 {
		return Result{Score: maxScore, Status: StatusPass}, nil
	}

	if !partialCredit {
		return Result{Score: 0, Status: StatusError}, nil
	}

	score := round2(maxScore * float64(total-errs) / float64(total))
	// Rounding can push the value past the bounds only by representation error.
	score = math.Max(0, math.Min(score, maxScore))
	return Result{Score: score, Status: StatusError}, nil
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
