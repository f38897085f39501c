package cli

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"

	"github.com/golang/geo/r2"
	"github.com/urfave/cli/v2"

	"go.viam.com/planarik/arm"
	"go.viam.com/planarik/kinematics"
)

func (pa *planarikApp) runAction(c *cli.Context) error {
	first, second, err := pa.lengths(c)
	if err != nil {
		return err
	}
	cfg := *pa.cfg
	cfg.FirstLength, cfg.SecondLength = first, second
	cfg.FollowPointer = cfg.FollowPointer || c.Bool(flagFollow)
	hz := cfg.StepHz
	if c.IsSet(flagHz) {
		hz = c.Float64(flagHz)
	}

	driver, err := arm.NewDriver(&cfg, pa.logger.Sublogger("arm"), arm.WithClock(pa.clock))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	maxSteps := c.Uint64(flagSteps)
	inputErr := make(chan error, 1)
	go func() {
		err := scanPointers(c.App.Reader, func(pointer r2.Point) error {
			driver.SetPointer(pointer)
			return nil
		})
		inputErr <- err
		if err != nil || maxSteps == 0 {
			cancel()
		}
	}()

	encoder := json.NewEncoder(c.App.Writer)
	var steps uint64
	var writeErr error
	err = driver.Run(ctx, hz, func(state kinematics.LinkageState) {
		if writeErr = encoder.Encode(newStateJSON(state, false)); writeErr != nil {
			cancel()
			return
		}
		steps++
		if maxSteps > 0 && steps >= maxSteps {
			cancel()
		}
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}
	select {
	case err := <-inputErr:
		if err != nil {
			return err
		}
	default:
	}
	pa.logger.Debugw("arm loop finished", "steps", steps, "step_hz", hz)
	return nil
}
