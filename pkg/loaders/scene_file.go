package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Scene file records. Each record is a letter followed by its numbers.
//
//	s radius cx cy cz r g b
//	t x1 y1 z1 x2 y2 z2 x3 y3 z3 r g b
//	l x y z
//
// Lines starting with '/' are comments.
var recordFields = map[string]int{
	"s": 7,
	"t": 12,
	"l": 3,
}

// LoadScene reads a scene description file
func LoadScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("while parsing %s: %w", filename, err)
	}
	return s, nil
}

// ParseScene reads scene records from r. Errors report the 1-based line
// number of the offending record.
func ParseScene(r io.Reader) (*scene.Scene, error) {
	s := scene.New()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "/") {
			continue
		}

		fields := strings.Fields(line)
		record := fields[0]
		want, ok := recordFields[record]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown record type %q", lineNum, record)
		}
		if len(fields)-1 != want {
			return nil, fmt.Errorf("line %d: %q record needs %d values, got %d", lineNum, record, want, len(fields)-1)
		}

		values, err := parseFloats(fields[1:])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		switch record {
		case "s":
			if values[0] <= 0 {
				return nil, fmt.Errorf("line %d: sphere radius %g must be positive", lineNum, values[0])
			}
			s.AddSphere(vec(values[1:4]), values[0], vec(values[4:7]).ClampColor())
		case "t":
			s.AddTriangle(vec(values[0:3]), vec(values[3:6]), vec(values[6:9]), vec(values[9:12]).ClampColor())
		case "l":
			s.AddLight(vec(values))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	return s, nil
}

func parseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", field)
		}
		values[i] = v
	}
	return values, nil
}

func vec(v []float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
