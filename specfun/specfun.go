// Package specfun implements the special functions underlying the rank tests:
// log-gamma, log-beta, the regularized incomplete gamma and beta functions,
// the error function and the normal CDF.
//
// The continued-fraction and power-series evaluators are capped at
// MaxIterations. Running out of iterations is reported as a
// *ConvergenceError; the truncated estimate is still returned alongside it.
package specfun

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Epsilon is the relative change below which a continued fraction or
	// power series is considered converged.
	Epsilon = 1e-15

	// MaxIterations caps every continued fraction and power series.
	MaxIterations = 1000

	sqrtTwo = 1.4142135623730951455
	logTwo  = 0.69314718055994528623
)

var (
	// ErrConvergence is matched by every *ConvergenceError.
	ErrConvergence = errors.New("specfun: failed to converge")

	// ErrDomain is returned for arguments outside a function's domain.
	ErrDomain = errors.New("specfun: argument outside domain")
)

// ConvergenceError reports an evaluator that exhausted MaxIterations without
// meeting Epsilon.
type ConvergenceError struct {
	Func       string
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("specfun: %s did not converge after %d iterations", e.Func, e.Iterations)
}

func (e *ConvergenceError) Is(target error) bool {
	return target == ErrConvergence
}

// Tail selects which side of a distribution a probability refers to.
type Tail int

const (
	LowerTail Tail = iota
	UpperTail
)

func (t Tail) String() string {
	switch t {
	case LowerTail:
		return "lower"
	case UpperTail:
		return "upper"
	}
	return fmt.Sprintf("Tail(%d)", int(t))
}

// Scale selects whether a probability is returned as-is or as its natural
// logarithm.
type Scale int

const (
	Linear Scale = iota
	Log
)

// Apply converts a linear-scale probability to s.
func (s Scale) Apply(p float64) float64 {
	if s == Log {
		return math.Log(p)
	}
	return p
}

// Double multiplies a probability by two in scale s. In log scale this is the
// addition of log(2).
func (s Scale) Double(p float64) float64 {
	if s == Log {
		return p + logTwo
	}
	return p * 2
}

// Half returns 0.5 in scale s.
func (s Scale) Half() float64 {
	if s == Log {
		return -logTwo
	}
	return 0.5
}

// One returns probability 1 in scale s.
func (s Scale) One() float64 {
	if s == Log {
		return 0
	}
	return 1
}

func (s Scale) String() string {
	if s == Log {
		return "log"
	}
	return "linear"
}
