// YAML level files attach signal schedules to the built-in level catalog.
// A file looks like:
//
//	levels:
//	  - id: 4
//	    signals:
//	      - name: IN.A
//	        side: left
//	        row: 2
//	        type: in
//	        values: "0110"
//	      - name: OUT.X
//	        side: right
//	        row: 0
//	        type: out
//	        values: "1001"

package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LevelFile is the top-level YAML document.
type LevelFile struct {
	Levels []LevelSpec `yaml:"levels"`
}

// LevelSpec binds signal schedules to one level. Name is optional when the
// ID matches a catalog level.
type LevelSpec struct {
	ID      int          `yaml:"id"`
	Name    string       `yaml:"name"`
	Signals []SignalSpec `yaml:"signals"`
}

// SignalSpec describes one boundary signal in a level file.
type SignalSpec struct {
	Name   string `yaml:"name"`
	Side   string `yaml:"side"`   // "left" or "right"
	Row    int    `yaml:"row"`    // one of PinRows
	Type   string `yaml:"type"`   // "in" or "out"
	Values string `yaml:"values"` // e.g. "0110"
}

// LoadLevelFile reads a YAML level file and returns fully-specified levels
// keyed by level ID. Catalog metadata (name, sort index) is filled in for
// known IDs.
func LoadLevelFile(path string) (map[int]*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file: %w", err)
	}
	var file LevelFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing level file: %w", err)
	}

	levels := make(map[int]*Level, len(file.Levels))
	for _, spec := range file.Levels {
		level, err := spec.Level()
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", spec.ID, err)
		}
		if _, dup := levels[level.ID]; dup {
			return nil, fmt.Errorf("level %d appears twice", spec.ID)
		}
		levels[level.ID] = level
	}
	return levels, nil
}

// Level resolves the spec into a Level value.
func (spec LevelSpec) Level() (*Level, error) {
	name, index := spec.Name, len(Levels)
	if catalog, err := LevelByID(spec.ID); err == nil {
		name, index = catalog.Name, catalog.Index
	} else if name == "" {
		return nil, fmt.Errorf("unknown level id and no name given")
	}

	level := NewLevel(spec.ID, name)
	level.Index = index
	for _, ss := range spec.Signals {
		sig, err := ss.Signal()
		if err != nil {
			return nil, fmt.Errorf("signal %q: %w", ss.Name, err)
		}
		if _, dup := level.Signals[sig.Loc]; dup {
			return nil, fmt.Errorf("two signals share pin (%d,%d)", sig.Loc.X, sig.Loc.Y)
		}
		level.Signals[sig.Loc] = sig
	}
	return level, nil
}

// Signal resolves the spec into a Signal value.
func (ss SignalSpec) Signal() (*Signal, error) {
	loc := Coords{Y: ss.Row}
	switch ss.Side {
	case "left":
		loc.X = -1
	case "right":
		loc.X = GridWidth
	default:
		return nil, fmt.Errorf("side must be left or right, got %q", ss.Side)
	}
	if !loc.IsPin() {
		return nil, fmt.Errorf("row %d is not a pin row", ss.Row)
	}

	sig := &Signal{Name: ss.Name, Loc: loc}
	switch ss.Type {
	case "in":
		sig.Type = SignalIn
	case "out":
		sig.Type = SignalOut
	default:
		return nil, fmt.Errorf("type must be in or out, got %q", ss.Type)
	}

	sig.Values = make([]bool, len(ss.Values))
	for i := 0; i < len(ss.Values); i++ {
		switch ss.Values[i] {
		case '0':
		case '1':
			sig.Values[i] = true
		default:
			return nil, fmt.Errorf("values must be 0s and 1s, got %q", ss.Values)
		}
	}
	return sig, nil
}
