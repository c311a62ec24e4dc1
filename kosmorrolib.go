// Package kosmorrolib computes astronomical ephemerides and celestial
// events for a given observer position and date: rise, culmination and
// set times, the Moon phase, conjunctions and oppositions, eclipses,
// equinoxes and solstices, and the apsides of the Moon and the Earth.
//
// All computation is a pure function of its inputs plus read-only
// queries to the ephemeris provider; queries carry no shared mutable
// state and may run concurrently. Internally everything is solved in
// UTC; the timezone offset a caller supplies is applied only when
// producing output instants.
package kosmorrolib

import (
	"time"

	"github.com/Kosmorro/lib/internal/astro"
	"github.com/Kosmorro/lib/internal/ephem"
	"github.com/Kosmorro/lib/internal/search"
)

// Logger receives debug diagnostics from the solvers (search windows,
// event counts). The internal logging package satisfies it.
type Logger interface {
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// Computer answers ephemerides, Moon phase and event queries over one
// immutable ephemeris provider. The zero cost of a query is deliberate:
// nothing persists between calls and a single Computer is safe for
// concurrent use.
type Computer struct {
	provider  ephem.Provider
	tolerance time.Duration
	log       Logger
}

// Option customizes a Computer.
type Option func(*Computer)

// WithTolerance sets the time tolerance the solvers refine instants to.
// The default is search.DefaultTolerance (30 seconds).
func WithTolerance(d time.Duration) Option {
	return func(c *Computer) {
		if d > 0 {
			c.tolerance = d
		}
	}
}

// WithLogger makes the solvers emit debug diagnostics (search timings,
// event counts). The default logger discards everything.
func WithLogger(l Logger) Option {
	return func(c *Computer) {
		if l != nil {
			c.log = l
		}
	}
}

// NewComputer returns a Computer backed by the built-in Meeus ephemeris
// provider.
func NewComputer(opts ...Option) *Computer {
	c := &Computer{
		provider:  ephem.NewMeeus(),
		tolerance: search.DefaultTolerance,
		log:       nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// geocenter is the observer used for queries where horizontal
// coordinates are irrelevant.
var geocenter = astro.Observer{}

// observeGeo returns the geocentric position of an object.
func (c *Computer) observeGeo(o Object, t time.Time) (ephem.Point, error) {
	return c.provider.Observe(o.target(), t, geocenter)
}

// searchOptions builds the search options for a finder sampling at the
// given step.
func (c *Computer) searchOptions(step time.Duration) search.Options {
	return search.Options{Step: step, Tolerance: c.tolerance}
}
