package cli

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/planarik/arm"
	"go.viam.com/planarik/render"
)

func (pa *planarikApp) streamAction(c *cli.Context) error {
	first, second, err := pa.lengths(c)
	if err != nil {
		return err
	}
	cfg := *pa.cfg
	cfg.FirstLength, cfg.SecondLength = first, second
	cfg.FollowPointer = true

	driver, err := arm.NewDriver(&cfg, pa.logger.Sublogger("arm"))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(c.App.Writer)
	err = scanPointers(c.App.Reader, func(pointer r2.Point) error {
		driver.SetPointer(pointer)
		return encoder.Encode(newStateJSON(driver.Step(), false))
	})
	if err != nil {
		return err
	}
	pa.logger.Debugw("stream finished", "steps", driver.Steps())
	return nil
}

// scanPointers calls fn with every 'x y' sample in r. Blank lines and lines starting with '#' are
// skipped.
func scanPointers(r io.Reader, fn func(r2.Point) error) error {
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pointer, err := parsePointer(line)
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNum)
		}
		if err := fn(pointer); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "cannot read pointer samples")
}

func parsePointer(line string) (r2.Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return r2.Point{}, errors.Errorf("expected 'x y', got %q", line)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return r2.Point{}, errors.Wrap(err, "bad x")
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return r2.Point{}, errors.Wrap(err, "bad y")
	}
	return r2.Point{X: x, Y: y}, nil
}

func (pa *planarikApp) renderAction(c *cli.Context) error {
	req, err := pa.request(c)
	if err != nil {
		return err
	}
	solver, err := pa.solver()
	if err != nil {
		return err
	}
	opts := render.DefaultOptions()
	opts.Scale = c.Float64(flagScale)
	path := c.String(flagOut)
	if err := render.SavePNG(path, solver.Solve(req), opts); err != nil {
		return err
	}
	pa.logger.Infow("wrote pose", "path", path)
	return nil
}
