// Package cli contains the planarik command line tool: it plays the part of the UI, feeding
// requests and pointer samples to the solver and printing or drawing the solved joints.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/planarik/config"
	"go.viam.com/planarik/kinematics"
	"go.viam.com/planarik/logging"
	"go.viam.com/planarik/referenceframe"
	"go.viam.com/planarik/utils"
)

const (
	// Global flags.
	flagConfig = "config"
	flagDebug  = "debug"

	// Request flags.
	flagFirstLength  = "first-length"
	flagSecondLength = "second-length"
	flagAngle        = "angle"
	flagDistance     = "distance"
	flagDegrees      = "degrees"

	// Output flags.
	flagJSON  = "json"
	flagX     = "x"
	flagY     = "y"
	flagOut   = "out"
	flagScale = "scale"

	// Loop flags.
	flagFollow = "follow"
	flagHz     = "hz"
	flagSteps  = "steps"
)

type planarikApp struct {
	logger logging.Logger
	cfg    *config.Config
	clock  clock.Clock
}

// NewApp returns the planarik CLI reading pointer samples from in and writing results to out.
// Logs go to errOut.
func NewApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return newApp(in, out, errOut, clock.New())
}

func newApp(in io.Reader, out, errOut io.Writer, clk clock.Clock) *cli.App {
	pa := &planarikApp{clock: clk}
	return &cli.App{
		Name:      "planarik",
		Usage:     "solve planar two link arm poses",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load arm configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: pa.before,
		After: func(c *cli.Context) error {
			if pa.logger == nil {
				return nil
			}
			return pa.logger.Sync()
		},
		Commands: []*cli.Command{
			{
				Name:   "solve",
				Usage:  "solve the arm for a direction and distance",
				Flags:  append(requestFlags(), outputFlags()...),
				Action: pa.solveAction,
			},
			{
				Name:  "track",
				Usage: "solve the arm reaching toward a point",
				Flags: append([]cli.Flag{
					&cli.Float64Flag{Name: flagFirstLength, Usage: "proximal link length"},
					&cli.Float64Flag{Name: flagSecondLength, Usage: "distal link length"},
					&cli.Float64Flag{Name: flagX, Required: true, Usage: "target X relative to the base"},
					&cli.Float64Flag{Name: flagY, Required: true, Usage: "target Y relative to the base"},
				}, outputFlags()...),
				Action: pa.trackAction,
			},
			{
				Name:      "stream",
				Usage:     "follow pointer samples read from stdin, one 'x y' pair per line, printing one JSON state per line",
				UsageText: "planarik stream [--first-length L1] [--second-length L2] < samples.txt",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: flagFirstLength, Usage: "proximal link length"},
					&cli.Float64Flag{Name: flagSecondLength, Usage: "distal link length"},
				},
				Action: pa.streamAction,
			},
			{
				Name:  "run",
				Usage: "run the arm loop at step_hz, printing one JSON state per step",
				Description: "Pointer samples read from stdin, one 'x y' pair per line, move the target while " +
					"following the pointer. Without --steps the loop stops when the input ends or on interrupt.",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: flagFirstLength, Usage: "proximal link length"},
					&cli.Float64Flag{Name: flagSecondLength, Usage: "distal link length"},
					&cli.BoolFlag{Name: flagFollow, Usage: "track the pointer samples instead of the configured angle and distance"},
					&cli.Float64Flag{Name: flagHz, Usage: "steps per second, overriding step_hz"},
					&cli.Uint64Flag{Name: flagSteps, Usage: "stop after this many steps"},
				},
				Action: pa.runAction,
			},
			{
				Name:  "render",
				Usage: "solve the arm and write a PNG of the pose",
				Flags: append(requestFlags(),
					&cli.StringFlag{Name: flagOut, Required: true, Usage: "output `FILE`"},
					&cli.Float64Flag{Name: flagScale, Value: 1, Usage: "pixels per length unit"},
				),
				Action: pa.renderAction,
			},
		},
	}
}

func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: flagFirstLength, Usage: "proximal link length"},
		&cli.Float64Flag{Name: flagSecondLength, Usage: "distal link length"},
		&cli.Float64Flag{Name: flagAngle, Usage: "direction from the base to the end effector, radians unless --degrees"},
		&cli.Float64Flag{Name: flagDistance, Usage: "requested distance from the base to the end effector"},
		&cli.BoolFlag{Name: flagDegrees, Usage: "interpret --angle in degrees"},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: flagJSON, Usage: "print the state as JSON"},
	}
}

func (pa *planarikApp) before(c *cli.Context) error {
	logger := logging.NewBlankLogger("planarik")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(logging.INFO)
	if c.Bool(flagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	pa.logger = logger

	pa.cfg = config.Default()
	if path := c.String(flagConfig); path != "" {
		cfg, err := config.Read(path, logger)
		if err != nil {
			return err
		}
		pa.cfg = cfg
		if !c.Bool(flagDebug) {
			logger.SetLevel(cfg.Level())
		}
	}
	return nil
}

// lengths returns the configured link lengths, overridden by flags.
func (pa *planarikApp) lengths(c *cli.Context) (float64, float64, error) {
	first, second := pa.cfg.FirstLength, pa.cfg.SecondLength
	if c.IsSet(flagFirstLength) {
		first = c.Float64(flagFirstLength)
	}
	if c.IsSet(flagSecondLength) {
		second = c.Float64(flagSecondLength)
	}
	for _, link := range []struct {
		flag   string
		length float64
	}{{flagFirstLength, first}, {flagSecondLength, second}} {
		if !utils.IsFinite(link.length) || link.length <= 0 {
			return 0, 0, errors.Errorf("--%s must be positive, got %g", link.flag, link.length)
		}
	}
	return first, second, nil
}

// request returns the configured request, overridden by flags.
func (pa *planarikApp) request(c *cli.Context) (kinematics.Request, error) {
	first, second, err := pa.lengths(c)
	if err != nil {
		return kinematics.Request{}, err
	}
	req := pa.cfg.Request()
	lengthsChanged := first != req.FirstLength || second != req.SecondLength
	req.FirstLength, req.SecondLength = first, second
	if lengthsChanged && pa.cfg.TargetDistance == nil {
		// Keep the default of full extension for the new lengths.
		req.Distance = first + second
	}
	if c.IsSet(flagAngle) {
		req.DirectionAngle = c.Float64(flagAngle)
		if c.Bool(flagDegrees) {
			req.DirectionAngle = utils.DegToRad(req.DirectionAngle)
		}
	}
	if c.IsSet(flagDistance) {
		req.Distance = c.Float64(flagDistance)
	}
	if !utils.IsFinite(req.DirectionAngle, req.Distance) || req.Distance < 0 {
		return kinematics.Request{}, errors.Errorf("angle must be finite and distance non-negative, got %g and %g",
			req.DirectionAngle, req.Distance)
	}
	return req, nil
}

func (pa *planarikApp) solver() (kinematics.Solver, error) {
	return kinematics.NewSolver(pa.cfg.Solver)
}

func (pa *planarikApp) solveAction(c *cli.Context) error {
	req, err := pa.request(c)
	if err != nil {
		return err
	}
	solver, err := pa.solver()
	if err != nil {
		return err
	}
	state := solver.Solve(req)
	if state.TargetDistance != req.Distance {
		pa.logger.Infow("distance clamped to reach", "requested", req.Distance, "clamped", state.TargetDistance)
	}
	return printState(c, state, c.Bool(flagDegrees))
}

func (pa *planarikApp) trackAction(c *cli.Context) error {
	first, second, err := pa.lengths(c)
	if err != nil {
		return err
	}
	pointer := r2.Point{X: c.Float64(flagX), Y: c.Float64(flagY)}
	if !utils.IsFinite(pointer.X, pointer.Y) {
		return errors.Errorf("target must be finite, got %v", pointer)
	}
	solver, err := pa.solver()
	if err != nil {
		return err
	}
	return printState(c, kinematics.Track(solver, first, second, pointer), false)
}

func printState(c *cli.Context, state kinematics.LinkageState, degrees bool) error {
	if c.Bool(flagJSON) {
		return json.NewEncoder(c.App.Writer).Encode(newStateJSON(state, degrees))
	}
	_, err := fmt.Fprintln(c.App.Writer, state.String())
	return err
}

// stateJSON is the JSON form of a solved state. Angles are in radians unless Degrees is set.
type stateJSON struct {
	Degrees        bool          `json:"degrees,omitempty"`
	FirstLength    float64       `json:"first_length"`
	SecondLength   float64       `json:"second_length"`
	DirectionAngle float64       `json:"direction_angle"`
	TargetDistance float64       `json:"target_distance"`
	Joints         [3][2]float64 `json:"joints"`
	JointAngles    []float64     `json:"joint_angles"`
}

func newStateJSON(state kinematics.LinkageState, degrees bool) stateJSON {
	out := stateJSON{
		Degrees:        degrees,
		FirstLength:    state.FirstLength,
		SecondLength:   state.SecondLength,
		DirectionAngle: state.DirectionAngle,
		TargetDistance: state.TargetDistance,
		JointAngles:    referenceframe.InputsToFloats(state.JointAngles()),
	}
	if degrees {
		out.DirectionAngle = utils.RadToDeg(state.DirectionAngle)
		out.JointAngles = referenceframe.InputsToDegrees(state.JointAngles())
	}
	for i, joint := range state.Joints {
		out.Joints[i] = [2]float64{joint.X, joint.Y}
	}
	return out
}
