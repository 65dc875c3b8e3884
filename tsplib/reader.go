// Package tsplib reads EUC_2D coordinate files in the TSPLIB layout and
// writes tours back out. It is the only place that knows about file formats;
// the optimiser itself only sees points.
package tsplib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	gt "nickandperla.net/genetic_tsp"
)

// HeaderLines is the fixed number of leading lines before the coordinates.
const HeaderLines = 6

var ErrInputFormat = errors.New("input format error")

// Header carries whatever "KEY : VALUE" pairs the header lines hold. Lines
// that do not look like that are ignored.
type Header struct {
	Name           string
	Comment        string
	Type           string
	Dimension      int
	EdgeWeightType string
	Extra          map[string]string
}

type Instance struct {
	Header Header
	Points []gt.Point
}

// Read parses a whole coordinate file. The first HeaderLines lines are the
// header and the last non-blank line is the end marker; every line between
// them must be "id x y". Blank lines are skipped.
func Read(r io.Reader) (*Instance, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputFormat, err)
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < HeaderLines+1 {
		return nil, fmt.Errorf("%w: expected %d header lines and an end marker, got %d lines", ErrInputFormat, HeaderLines, len(lines))
	}

	header, err := parseHeader(lines[:HeaderLines])
	if err != nil {
		return nil, err
	}

	inst := &Instance{Header: header}
	seen := make(map[int]int)
	body := lines[HeaderLines : len(lines)-1]
	for i, line := range body {
		lineNo := HeaderLines + i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInputFormat, lineNo, err)
		}
		if prev, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: line %d: point %d already defined on line %d", ErrInputFormat, lineNo, p.ID, prev)
		}
		seen[p.ID] = lineNo
		inst.Points = append(inst.Points, p)
	}

	if len(inst.Points) == 0 {
		return nil, fmt.Errorf("%w: no coordinate records", ErrInputFormat)
	}
	if header.Dimension > 0 && header.Dimension != len(inst.Points) {
		return nil, fmt.Errorf("%w: DIMENSION is %d but %d records were read", ErrInputFormat, header.Dimension, len(inst.Points))
	}
	return inst, nil
}

// ReadPoints opens path and returns its points in file order.
func ReadPoints(path string) ([]gt.Point, error) {
	inst, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return inst.Points, nil
}

func ReadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

func parseRecord(line string) (gt.Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return gt.Point{}, fmt.Errorf("expected 3 fields (id x y), got %d", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return gt.Point{}, fmt.Errorf("bad id %q", fields[0])
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return gt.Point{}, fmt.Errorf("bad x coordinate %q", fields[1])
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return gt.Point{}, fmt.Errorf("bad y coordinate %q", fields[2])
	}
	return gt.Point{ID: id, X: x, Y: y}, nil
}

func parseHeader(lines []string) (Header, error) {
	h := Header{Extra: make(map[string]string)}
	for i, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "NAME":
			h.Name = value
		case "COMMENT":
			h.Comment = value
		case "TYPE":
			h.Type = value
		case "DIMENSION":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return h, fmt.Errorf("%w: line %d: bad DIMENSION %q", ErrInputFormat, i+1, value)
			}
			h.Dimension = n
		case "EDGE_WEIGHT_TYPE":
			h.EdgeWeightType = value
		default:
			h.Extra[key] = value
		}
	}
	return h, nil
}
