// Package search locates zero-crossings and local extrema of continuous
// scalar functions of time. It is the primitive every event finder is
// built on: a coarse uniform sampling pass brackets the candidates, then
// bisection (crossings) or golden-section (extrema) refines each bracket
// down to a time tolerance.
package search

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Func is a real-valued, piecewise-continuous function of time. An error
// return aborts the search and is propagated unchanged to the caller.
type Func func(t time.Time) (float64, error)

// Options tunes a search. The sampling step must be small enough to
// resolve the fastest oscillation of the target function; a bracket
// containing more than one root is a caller bug, not something the
// engine can repair.
type Options struct {
	Step          time.Duration // coarse sampling interval
	Tolerance     time.Duration // width at which a bracket is accepted
	MaxIterations int           // refinement budget per bracket
}

// DefaultTolerance is the refinement target used when none is given.
const DefaultTolerance = 30 * time.Second

const defaultMaxIterations = 64

// ErrNoConvergence is returned when a bracket cannot be narrowed to the
// tolerance within the iteration budget. Given a sane step/tolerance
// pair this indicates an internal invariant violation, so it is
// reported instead of silently returning an imprecise instant.
var ErrNoConvergence = errors.New("search: refinement did not converge within iteration budget")

// Crossing is a located zero-crossing.
type Crossing struct {
	Time   time.Time
	Rising bool // true when the function passes from negative to positive
}

// Extremum is a located interior extremum.
type Extremum struct {
	Time  time.Time
	Value float64
}

func (o Options) normalize(span time.Duration) (Options, error) {
	if o.Step <= 0 {
		return o, fmt.Errorf("search: sampling step must be positive, got %v", o.Step)
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
	if span <= 0 {
		return o, fmt.Errorf("search: empty interval")
	}
	return o, nil
}

// sample evaluates f over [t0, t1] at uniform steps, always including
// both endpoints.
func sample(f Func, t0, t1 time.Time, step time.Duration) ([]time.Time, []float64, error) {
	var (
		times []time.Time
		vals  []float64
	)
	for t := t0; t.Before(t1); t = t.Add(step) {
		v, err := f(t)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)
		vals = append(vals, v)
	}
	v, err := f(t1)
	if err != nil {
		return nil, nil, err
	}
	times = append(times, t1)
	vals = append(vals, v)
	return times, vals, nil
}

// Crossings finds every zero-crossing of f in [t0, t1], in order. An
// empty result means no event in the window; it is not an error.
func Crossings(f Func, t0, t1 time.Time, opts Options) ([]Crossing, error) {
	opts, err := opts.normalize(t1.Sub(t0))
	if err != nil {
		return nil, err
	}

	times, vals, err := sample(f, t0, t1, opts.Step)
	if err != nil {
		return nil, err
	}

	var found []Crossing
	for i := 1; i < len(times); i++ {
		a, b := vals[i-1], vals[i]
		if a == 0 {
			// Landed exactly on a root at the previous sample; the
			// direction comes from the next value.
			found = append(found, Crossing{Time: times[i-1], Rising: b > 0})
			continue
		}
		if (a > 0) == (b > 0) || b == 0 {
			continue
		}
		at, err := bisect(f, times[i-1], times[i], a, opts)
		if err != nil {
			return nil, err
		}
		found = append(found, Crossing{Time: at, Rising: b > a})
	}
	return found, nil
}

// Maxima finds the interior local maxima of f in [t0, t1], in order.
// Maxima lying exactly on the interval endpoints are not reported.
func Maxima(f Func, t0, t1 time.Time, opts Options) ([]Extremum, error) {
	opts, err := opts.normalize(t1.Sub(t0))
	if err != nil {
		return nil, err
	}

	times, vals, err := sample(f, t0, t1, opts.Step)
	if err != nil {
		return nil, err
	}

	var found []Extremum
	for i := 1; i < len(times)-1; i++ {
		if vals[i] < vals[i-1] || vals[i] < vals[i+1] {
			continue
		}
		if vals[i] == vals[i-1] && vals[i] == vals[i+1] {
			continue // flat plateau, no slope sign change
		}
		ext, err := golden(f, times[i-1], times[i+1], opts)
		if err != nil {
			return nil, err
		}
		found = append(found, ext)
	}
	return found, nil
}

// Minima finds the interior local minima of f in [t0, t1], in order.
func Minima(f Func, t0, t1 time.Time, opts Options) ([]Extremum, error) {
	neg := func(t time.Time) (float64, error) {
		v, err := f(t)
		return -v, err
	}
	found, err := Maxima(neg, t0, t1, opts)
	if err != nil {
		return nil, err
	}
	for i := range found {
		found[i].Value = -found[i].Value
	}
	return found, nil
}

// bisect narrows a sign-change bracket [lo, hi] down to the tolerance.
// va is the function value at lo.
func bisect(f Func, lo, hi time.Time, va float64, opts Options) (time.Time, error) {
	for iter := 0; hi.Sub(lo) > opts.Tolerance; iter++ {
		if iter >= opts.MaxIterations {
			return time.Time{}, ErrNoConvergence
		}
		mid := lo.Add(hi.Sub(lo) / 2)
		vm, err := f(mid)
		if err != nil {
			return time.Time{}, err
		}
		if vm == 0 {
			return mid, nil
		}
		if (vm > 0) == (va > 0) {
			lo, va = mid, vm
		} else {
			hi = mid
		}
	}
	return lo.Add(hi.Sub(lo) / 2), nil
}

// invphi is 1/φ, the golden-section reduction ratio.
var invphi = (math.Sqrt(5) - 1) / 2

// golden narrows a bracket around a maximum down to the tolerance and
// returns the refined extremum.
func golden(f Func, lo, hi time.Time, opts Options) (Extremum, error) {
	span := hi.Sub(lo)
	a := lo.Add(time.Duration((1 - invphi) * float64(span)))
	b := lo.Add(time.Duration(invphi * float64(span)))

	va, err := f(a)
	if err != nil {
		return Extremum{}, err
	}
	vb, err := f(b)
	if err != nil {
		return Extremum{}, err
	}

	for iter := 0; hi.Sub(lo) > opts.Tolerance; iter++ {
		if iter >= opts.MaxIterations {
			return Extremum{}, ErrNoConvergence
		}
		if va > vb {
			hi = b
			b, vb = a, va
			span = hi.Sub(lo)
			a = lo.Add(time.Duration((1 - invphi) * float64(span)))
			if va, err = f(a); err != nil {
				return Extremum{}, err
			}
		} else {
			lo = a
			a, va = b, vb
			span = hi.Sub(lo)
			b = lo.Add(time.Duration(invphi * float64(span)))
			if vb, err = f(b); err != nil {
				return Extremum{}, err
			}
		}
	}

	at := lo.Add(hi.Sub(lo) / 2)
	v, err := f(at)
	if err != nil {
		return Extremum{}, err
	}
	return Extremum{Time: at, Value: v}, nil
}
