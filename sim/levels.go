package sim

import "fmt"

// Levels is the built-in puzzle catalog, ordered as the game presents them.
// Level IDs are the game's internal identifiers, which differ from the
// presentation order. Signal schedules are not part of the catalog; attach
// them from a level file before simulating.
var Levels = []*Level{
	{ID: 2, Name: "Signal Crossover", Index: 0},
	{ID: 3, Name: "AND Gate", Index: 1},
	{ID: 1, Name: "OR Gate", Index: 2},
	{ID: 4, Name: "NOT Gate", Index: 3},
	{ID: 9, Name: "Power-on Reset", Index: 4},
	{ID: 22, Name: "Digital Signal Mixer", Index: 5},
	{ID: 12, Name: "Interrupt Controller", Index: 6},
	{ID: 13, Name: "Ignition Sequencer", Index: 7},
	{ID: 8, Name: "Equality Tester", Index: 8},
	{ID: 10, Name: "Dual Oscillator", Index: 9},
	{ID: 19, Name: "Safety Interlock", Index: 10},
	{ID: 11, Name: "PWM Solenoid Driver", Index: 11},
	{ID: 5, Name: "Electronic Lock", Index: 12},
	{ID: 7, Name: "Motor Controller", Index: 13},
	{ID: 20, Name: "Programmable Delay", Index: 14},
	{ID: 16, Name: "Synchrony Detector", Index: 15},
	{ID: 21, Name: "AND-OR Combo Gate", Index: 16},
	{ID: 15, Name: "Switch Debouncer", Index: 17},
	{ID: 17, Name: "Stepper Motor Driver", Index: 18},
	{ID: 14, Name: "Serial Number ROM", Index: 19},
	{ID: 18, Name: "Pulse Echo Detector", Index: 20},
}

// LevelByID returns the catalog level with the given game ID.
func LevelByID(id int) (*Level, error) {
	for _, l := range Levels {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("no level with id %d", id)
}

// LevelByName looks up a catalog level by display name, ignoring case,
// spacing, and punctuation ("and gate" matches "AND Gate").
func LevelByName(name string) (*Level, error) {
	want := normalizeLevelName(name)
	for _, l := range Levels {
		if normalizeLevelName(l.Name) == want {
			return l, nil
		}
	}
	return nil, fmt.Errorf("no level named %q", name)
}

func normalizeLevelName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z':
			out = append(out, c)
		case 'A' <= c && c <= 'Z':
			out = append(out, c-'A'+'a')
		}
	}
	return string(out)
}
