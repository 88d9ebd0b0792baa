package fchl

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/qmlkit/alchemy"
	"github.com/katalvlaran/qmlkit/kernel"
)

// Kernel defaults.
const (
	DefaultTwoBodyScaling   = math.Sqrt2 * 2 // √8
	DefaultTwoBodyWidth     = 0.2
	DefaultTwoBodyPower     = 4.0
	DefaultThreeBodyScaling = 1.6
	DefaultThreeBodyWidth   = math.Pi
	DefaultThreeBodyPower   = 2.0
	DefaultCutStart         = 1.0
	DefaultCutDistance      = 5.0
	DefaultFourierOrder     = 1
	DefaultSigma            = 2.5
)

// Option configures the FCHL kernels.
type Option func(*config)

type config struct {
	twoScale, twoWidth, twoPower       float64
	threeScale, threeWidth, threePower float64
	cutStart, cutDistance              float64
	order                              int
	coupling                           *alchemy.Coupling
	family                             kernel.Family
	params                             kernel.Params
	kopts                              []kernel.Option
}

// WithTwoBody sets the scaling, Gaussian width and distance power of the
// two-body term. Panics unless scaling ≥ 0 and width > 0.
func WithTwoBody(scaling, width, power float64) Option {
	if !(scaling >= 0) || !(width > 0) || math.IsNaN(power) {
		panic("fchl: WithTwoBody requires scaling >= 0 and width > 0")
	}

	return func(c *config) { c.twoScale, c.twoWidth, c.twoPower = scaling, width, power }
}

// WithThreeBody sets the scaling, Fourier damping width and distance power of
// the three-body term. Panics unless scaling ≥ 0 and width > 0.
func WithThreeBody(scaling, width, power float64) Option {
	if !(scaling >= 0) || !(width > 0) || math.IsNaN(power) {
		panic("fchl: WithThreeBody requires scaling >= 0 and width > 0")
	}

	return func(c *config) { c.threeScale, c.threeWidth, c.threePower = scaling, width, power }
}

// WithCut sets the cutoff distance and the fraction of it at which the
// smooth switch-off starts. Panics unless 0 < start ≤ 1 and distance > 0.
func WithCut(start, distance float64) Option {
	if !(start > 0) || start > 1 || !(distance > 0) {
		panic("fchl: WithCut requires 0 < start <= 1 and distance > 0")
	}

	return func(c *config) { c.cutStart, c.cutDistance = start, distance }
}

// WithFourierOrder sets the number of three-body Fourier terms. Panics if n < 1.
func WithFourierOrder(n int) Option {
	if n < 1 {
		panic("fchl: WithFourierOrder requires n >= 1")
	}

	return func(c *config) { c.order = n }
}

// WithAlchemy sets the element coupling. The default is
// alchemy.DefaultPeriodicTable.
func WithAlchemy(a *alchemy.Coupling) Option {
	if a == nil {
		panic("fchl: WithAlchemy requires a coupling")
	}

	return func(c *config) { c.coupling = a }
}

// WithFamily selects the kernel family and its hyperparameter lists. The
// default is gaussian with sigma 2.5.
func WithFamily(f kernel.Family, p kernel.Params) Option {
	return func(c *config) { c.family, c.params = f, p }
}

// WithWorkers bounds the kernel row parallelism.
func WithWorkers(n int) Option {
	ko := kernel.WithWorkers(n)

	return func(c *config) { c.kopts = append(c.kopts, ko) }
}

// WithLogger attaches a debug logger to the kernel engine.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.kopts = append(c.kopts, kernel.WithLogger(l)) }
}

func gather(opts []Option) (config, error) {
	c := config{
		twoScale: DefaultTwoBodyScaling, twoWidth: DefaultTwoBodyWidth, twoPower: DefaultTwoBodyPower,
		threeScale: DefaultThreeBodyScaling, threeWidth: DefaultThreeBodyWidth, threePower: DefaultThreeBodyPower,
		cutStart: DefaultCutStart, cutDistance: DefaultCutDistance,
		order:  DefaultFourierOrder,
		family: kernel.Gaussian, params: kernel.Sigmas(DefaultSigma),
	}
	for _, o := range opts {
		o(&c)
	}
	if c.coupling == nil {
		pt, err := alchemy.DefaultPeriodicTable()
		if err != nil {
			return c, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		c.coupling = pt
	}

	return c, nil
}
