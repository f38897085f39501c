// Package arm implements the driver that owns a two link arm between solves: it accepts slider and
// pointer updates from a UI or input source and runs the solver once per step.
package arm

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/planarik/config"
	"go.viam.com/planarik/kinematics"
	"go.viam.com/planarik/logging"
	"go.viam.com/planarik/referenceframe"
	"go.viam.com/planarik/utils"
)

var (
	// LengthLimit bounds the link length sliders.
	LengthLimit = referenceframe.Limit{Min: 0.001, Max: 256}
	// AngleLimit bounds the direction angle slider.
	AngleLimit = referenceframe.Limit{Min: 0, Max: 2 * math.Pi}
)

// minDistance is the lower bound of the distance slider; the upper bound is full extension.
const minDistance = 0.001

const invariantTolerance = 1e-6

// Driver holds the current arm state and the request for the next step.
type Driver struct {
	logger logging.Logger
	clock  clock.Clock

	mu            sync.RWMutex
	solver        kinematics.Solver
	request       kinematics.Request
	followPointer bool
	pointer       r2.Point
	state         kinematics.LinkageState
	steps         uint64
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock makes Run tick on the given clock instead of the wall clock.
func WithClock(clk clock.Clock) Option {
	return func(d *Driver) {
		d.clock = clk
	}
}

// NewDriver returns a driver for the configured arm, starting fully extended.
func NewDriver(cfg *config.Config, logger logging.Logger, opts ...Option) (*Driver, error) {
	d := &Driver{logger: logger, clock: clock.New()}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

// Reconfigure atomically replaces the solver, request and state with those of the new config.
func (d *Driver) Reconfigure(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("arm config is nil")
	}
	if err := cfg.Validate("arm"); err != nil {
		return err
	}
	solver, err := kinematics.NewSolver(cfg.Solver)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.solver = solver
	d.request = cfg.Request()
	d.followPointer = cfg.FollowPointer
	d.state = kinematics.NewLinkageState(cfg.DirectionAngle, cfg.FirstLength, cfg.SecondLength)
	d.logger.Debugw("arm reconfigured", "solver", cfg.Solver, "follow_pointer", cfg.FollowPointer)
	return nil
}

// SetFirstLength sets the proximal link length, bounded to LengthLimit, and returns the value used.
func (d *Driver) SetFirstLength(length float64) float64 {
	length = LengthLimit.Clamp(length)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.request.FirstLength = length
	return length
}

// SetSecondLength sets the distal link length, bounded to LengthLimit, and returns the value used.
func (d *Driver) SetSecondLength(length float64) float64 {
	length = LengthLimit.Clamp(length)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.request.SecondLength = length
	return length
}

// SetDirectionAngle sets the requested direction in radians, bounded to AngleLimit.
func (d *Driver) SetDirectionAngle(angle float64) float64 {
	angle = AngleLimit.Clamp(angle)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.request.DirectionAngle = angle
	return angle
}

// SetTargetDistance sets the requested base to end effector distance, bounded between a small
// positive value and the current full extension. The solver may still clamp it further.
func (d *Driver) SetTargetDistance(distance float64) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	limit := referenceframe.Limit{Min: minDistance, Max: d.request.FirstLength + d.request.SecondLength}
	d.request.Distance = limit.Clamp(distance)
	return d.request.Distance
}

// SetFollowPointer toggles target tracking. While on, direction and distance come from the pointer.
func (d *Driver) SetFollowPointer(follow bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.followPointer = follow
}

// SetPointer records the latest pointer position relative to the base.
func (d *Driver) SetPointer(p r2.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pointer = p
}

// Step solves the pending request and makes the result the current state. In follow pointer mode
// the request is first derived from the pointer. The clamped distance and the angle used are kept
// as the request for the next step.
func (d *Driver) Step() kinematics.LinkageState {
	d.mu.Lock()
	defer d.mu.Unlock()

	req := d.request
	if d.followPointer {
		req = kinematics.RequestFromPointer(req.FirstLength, req.SecondLength, d.pointer)
	}
	state := d.solver.Solve(req)
	if state.TargetDistance != req.Distance {
		d.logger.Debugw("requested distance out of reach",
			"requested", req.Distance, "clamped", state.TargetDistance,
			"first_length", req.FirstLength, "second_length", req.SecondLength)
	}
	if err := kinematics.CheckInvariants(state, invariantTolerance); err != nil {
		d.logger.Warnw("solved state breaks linkage invariants", "error", err)
	}

	d.request = state.Request()
	d.state = state
	d.steps++
	return state
}

// State returns the most recently solved state.
func (d *Driver) State() kinematics.LinkageState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Steps returns how many times Step has run.
func (d *Driver) Steps() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.steps
}

// Run calls Step at the given rate until the context is done, handing every new state to onStep.
func (d *Driver) Run(ctx context.Context, hz float64, onStep func(kinematics.LinkageState)) error {
	if !utils.IsFinite(hz) || hz <= 0 {
		return errors.Errorf("step rate must be positive and finite, got %g", hz)
	}
	interval := time.Duration(float64(time.Second) / hz)
	if interval <= 0 {
		return errors.Errorf("step rate %g is too high", hz)
	}
	ticker := d.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
		// Both cases may be ready at once; never step after cancellation.
		if ctx.Err() != nil {
			d.logger.CDebugw(ctx, "arm loop stopped", "steps", d.Steps())
			return nil
		}
		state := d.Step()
		if onStep != nil {
			onStep(state)
		}
	}
}
