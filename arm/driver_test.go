package arm

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/planarik/config"
	"go.viam.com/planarik/kinematics"
	"go.viam.com/planarik/logging"
)

func TestNewDriverStartsExtended(t *testing.T) {
	logger := logging.NewTestLogger(t)
	d, err := NewDriver(config.Default(), logger)
	test.That(t, err, test.ShouldBeNil)

	state := d.State()
	test.That(t, state.TargetDistance, test.ShouldEqual, 256.)
	test.That(t, state.EndEffector().X, test.ShouldAlmostEqual, 256)
	test.That(t, d.Steps(), test.ShouldEqual, uint64(0))

	_, err = NewDriver(nil, logger)
	test.That(t, err, test.ShouldNotBeNil)

	cfg := config.Default()
	cfg.Solver = "iterative"
	_, err = NewDriver(cfg, logger)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewDriver(&config.Config{}, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"solver" is required`)
}

func TestSliderBounds(t *testing.T) {
	d, err := NewDriver(config.Default(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, d.SetFirstLength(0), test.ShouldEqual, 0.001)
	test.That(t, d.SetFirstLength(1000), test.ShouldEqual, 256.)
	test.That(t, d.SetSecondLength(64), test.ShouldEqual, 64.)
	test.That(t, d.SetDirectionAngle(-1), test.ShouldEqual, 0.)
	test.That(t, d.SetDirectionAngle(7), test.ShouldEqual, 2*math.Pi)
	test.That(t, d.SetTargetDistance(1000), test.ShouldEqual, 320.)
	test.That(t, d.SetTargetDistance(0), test.ShouldEqual, 0.001)
}

func TestStepClampsAndLogs(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	d, err := NewDriver(config.Default(), logger)
	test.That(t, err, test.ShouldBeNil)

	d.SetFirstLength(200)
	d.SetSecondLength(50)
	d.SetTargetDistance(10)
	state := d.Step()

	test.That(t, state.TargetDistance, test.ShouldEqual, 150.)
	test.That(t, kinematics.CheckInvariants(state, 1e-6), test.ShouldBeNil)
	test.That(t, d.State(), test.ShouldResemble, state)
	test.That(t, d.Steps(), test.ShouldEqual, uint64(1))
	test.That(t, logs.FilterMessage("requested distance out of reach").Len(), test.ShouldEqual, 1)

	// The clamped distance is what the next step requests.
	next := d.Step()
	test.That(t, next, test.ShouldResemble, state)
	test.That(t, logs.FilterMessage("requested distance out of reach").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("solved state breaks linkage invariants").Len(), test.ShouldEqual, 0)
}

func TestStepFollowsPointer(t *testing.T) {
	d, err := NewDriver(config.Default(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	pointer := r2.Point{X: -100, Y: 40}
	d.SetFollowPointer(true)
	d.SetPointer(pointer)
	state := d.Step()

	expected := kinematics.Track(kinematics.AnalyticTwoLink{}, 128, 128, pointer)
	test.That(t, state, test.ShouldResemble, expected)

	// Turning tracking off keeps the last tracked direction and distance.
	d.SetFollowPointer(false)
	d.SetPointer(r2.Point{X: 1, Y: 1})
	test.That(t, d.Step(), test.ShouldResemble, expected)
}

func TestConcurrentUpdates(t *testing.T) {
	d, err := NewDriver(config.Default(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			d.SetFirstLength(float64(1 + i))
			d.SetPointer(r2.Point{X: float64(i), Y: float64(-i)})
			d.SetFollowPointer(i%2 == 0)
		}
	}()
	var stepErr error
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			stepErr = multierr.Append(stepErr, kinematics.CheckInvariants(d.Step(), 1e-6))
		}
	}()
	wg.Wait()
	test.That(t, stepErr, test.ShouldBeNil)
	test.That(t, d.Steps(), test.ShouldEqual, uint64(200))
}

func TestRun(t *testing.T) {
	d, err := NewDriver(config.Default(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var seen int
	err = d.Run(ctx, 1000, func(state kinematics.LinkageState) {
		seen++
		if seen == 3 {
			cancel()
		}
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, seen, test.ShouldEqual, 3)
	test.That(t, d.Steps(), test.ShouldEqual, uint64(3))

	for _, hz := range []float64{0, -60, math.NaN(), math.Inf(1), 2e9} {
		err := d.Run(context.Background(), hz, nil)
		test.That(t, err, test.ShouldNotBeNil)
	}
	test.That(t, d.Steps(), test.ShouldEqual, uint64(3))
}

func TestRunOnMockClock(t *testing.T) {
	mock := clock.NewMock()
	d, err := NewDriver(config.Default(), logging.NewTestLogger(t), WithClock(mock))
	test.That(t, err, test.ShouldBeNil)
	d.SetFollowPointer(true)
	d.SetPointer(r2.Point{X: 0, Y: 100})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stepped := make(chan kinematics.LinkageState, 16)
	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx, 10, func(state kinematics.LinkageState) { stepped <- state })
	}()

	var states []kinematics.LinkageState
	for len(states) < 2 {
		mock.Add(100 * time.Millisecond)
		select {
		case state := <-stepped:
			states = append(states, state)
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	test.That(t, <-done, test.ShouldBeNil)
	test.That(t, states[0].TargetDistance, test.ShouldAlmostEqual, 100)
	test.That(t, states[0].DirectionAngle, test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, d.Steps(), test.ShouldBeGreaterThanOrEqualTo, uint64(2))
}
