// Package arenafile parses the two text-file formats the CLI's -arena and
// -obst flags name, outside the core's own concerns (spec.md lists file
// parsing as a non-goal of the numerical core proper). Both formats are
// whitespace/line-delimited UTF-8 text, read with bufio.Scanner and
// reported with a wrapped sentinel error on any malformed record.
package arenafile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
)

// ErrMalformed is wrapped by every parse failure in this package, naming
// the offending line or field in its wrapped message.
var ErrMalformed = errors.New("arenafile: malformed record")

// ArenaSpec holds the shape/center/radius record an arena file describes,
// ready to be merged into a config.FlockingParams or collision.Arena.
type ArenaSpec struct {
	Shape  config.ArenaShape
	Center geom.Vec3
	Radius float64
}

// LoadArena reads the arena file at path: a `shape: disc|square` record,
// a `center: x y` record, and a `radius|side: v` record, each on its own
// line, in any order.
func LoadArena(path string) (ArenaSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return ArenaSpec{}, fmt.Errorf("arenafile: open %s: %w", path, err)
	}
	defer f.Close()
	return ParseArena(f)
}

// ParseArena parses an arena file's records from r.
func ParseArena(r io.Reader) (ArenaSpec, error) {
	spec := ArenaSpec{Shape: config.ArenaDisc}
	var haveShape, haveCenter, haveRadius bool

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		key := strings.TrimSuffix(strings.ToLower(fields[0]), ":")
		rest := fields[1:]

		switch key {
		case "shape":
			if len(rest) != 1 {
				return ArenaSpec{}, fmt.Errorf("%w: line %d: shape needs one value", ErrMalformed, line)
			}
			switch strings.ToLower(rest[0]) {
			case "disc":
				spec.Shape = config.ArenaDisc
			case "square":
				spec.Shape = config.ArenaSquare
			default:
				return ArenaSpec{}, fmt.Errorf("%w: line %d: unknown shape %q", ErrMalformed, line, rest[0])
			}
			haveShape = true

		case "center":
			if len(rest) != 2 {
				return ArenaSpec{}, fmt.Errorf("%w: line %d: center needs x y", ErrMalformed, line)
			}
			x, err := strconv.ParseFloat(rest[0], 64)
			if err != nil {
				return ArenaSpec{}, fmt.Errorf("%w: line %d: center x: %v", ErrMalformed, line, err)
			}
			y, err := strconv.ParseFloat(rest[1], 64)
			if err != nil {
				return ArenaSpec{}, fmt.Errorf("%w: line %d: center y: %v", ErrMalformed, line, err)
			}
			spec.Center = geom.Vec3{x, y, 0}
			haveCenter = true

		case "radius", "side":
			if len(rest) != 1 {
				return ArenaSpec{}, fmt.Errorf("%w: line %d: %s needs one value", ErrMalformed, line, key)
			}
			v, err := strconv.ParseFloat(rest[0], 64)
			if err != nil {
				return ArenaSpec{}, fmt.Errorf("%w: line %d: %s: %v", ErrMalformed, line, key, err)
			}
			spec.Radius = v
			haveRadius = true

		default:
			return ArenaSpec{}, fmt.Errorf("%w: line %d: unknown record %q", ErrMalformed, line, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return ArenaSpec{}, fmt.Errorf("arenafile: scan: %w", err)
	}
	if !haveShape || !haveCenter || !haveRadius {
		return ArenaSpec{}, fmt.Errorf("%w: arena file missing shape, center or radius/side", ErrMalformed)
	}
	return spec, nil
}

// LoadObstacles reads the obstacle file at path: a sequence of polygon
// records, each a vertex-count line followed by that many `x y` lines.
func LoadObstacles(path string) ([]geom.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("arenafile: open %s: %w", path, err)
	}
	defer f.Close()
	return ParseObstacles(f)
}

// ParseObstacles parses a sequence of obstacle polygon records from r.
// Every polygon must have at least 3 vertices (spec.md's open question on
// the source's undefined behaviour for 0-vertex polygons).
func ParseObstacles(r io.Reader) ([]geom.Polygon, error) {
	scanner := bufio.NewScanner(r)
	var polys []geom.Polygon
	line := 0

	nextField := func() (string, bool) {
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			return text, true
		}
		return "", false
	}

	for {
		header, ok := nextField()
		if !ok {
			break
		}
		count, err := strconv.Atoi(header)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: vertex count: %v", ErrMalformed, line, err)
		}
		if count < 3 {
			return nil, fmt.Errorf("%w: line %d: polygon needs at least 3 vertices, got %d", ErrMalformed, line, count)
		}

		vertices := make([]geom.Vec3, count)
		for i := 0; i < count; i++ {
			row, ok := nextField()
			if !ok {
				return nil, fmt.Errorf("%w: line %d: expected %d vertices, file ended early", ErrMalformed, line, count)
			}
			fields := strings.Fields(row)
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: line %d: vertex needs x y", ErrMalformed, line)
			}
			x, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: vertex x: %v", ErrMalformed, line, err)
			}
			y, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: vertex y: %v", ErrMalformed, line, err)
			}
			vertices[i] = geom.Vec3{x, y, 0}
		}
		polys = append(polys, geom.NewPolygon(vertices))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("arenafile: scan: %w", err)
	}
	return polys, nil
}
