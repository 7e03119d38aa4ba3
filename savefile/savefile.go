// Package savefile reads and writes ChipWizard save data: the per-slot
// solution strings the game stores (base64 over zlib over a little-endian
// binary cell record), and the key/value save file that wraps them.
package savefile

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"

	"github.com/chipwizard-sim/chipwizard-sim/sim"
)

// saveVersion is the only solution-string format version the game emits.
const saveVersion = 1002

// Component bit flags of the cell record's first byte.
const (
	componentMetal     = 1 << iota // 1
	componentNType                 // 2
	componentPType                 // 4
	componentCapacitor             // 8
	componentVia                   // 16
	componentNOnTop                // 32
)

// ParseSolution decodes a solution save string into a validated Solution.
func ParseSolution(save string) (*sim.Solution, error) {
	raw, err := base64.StdEncoding.DecodeString(save)
	if err != nil {
		return nil, errors.Wrap(err, "decoding save string")
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "opening compressed save data")
	}
	defer zr.Close()
	dat, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(err, "decompressing save data")
	}

	r := &reader{buf: dat}
	if v := r.int32(); v != saveVersion {
		return nil, errors.Errorf("unknown save file version %d", v)
	}

	var sol sim.Solution
	// Cell records are stored row-major, bottom row first.
	for y := 0; y < sim.GridHeight; y++ {
		for x := 0; x < sim.GridWidth; x++ {
			sol.Cells[x][y] = r.cell()
		}
	}

	switch flag := r.byte(); flag {
	case 0:
	case 1:
		sel := &sim.Selection{}
		sel.Origin.X = int(r.int32())
		sel.Origin.Y = int(r.int32())
		sel.Size.X = int(r.int32())
		sel.Size.Y = int(r.int32())
		sol.Selection = sel
	default:
		if r.err == nil {
			return nil, errors.Errorf("invalid selection flag %d", flag)
		}
	}

	if r.err != nil {
		return nil, errors.Wrap(r.err, "truncated save data")
	}
	if len(r.buf) != 0 {
		return nil, errors.Errorf("%d trailing bytes in save data", len(r.buf))
	}

	sol.SaveString = save
	if verrs := sol.Validate(); len(verrs) > 0 {
		return nil, errors.Wrap(verrs, "saved layout is structurally invalid")
	}
	return &sol, nil
}

// DumpSolution encodes a Solution back into a save string. The encoding is
// semantically inverse to ParseSolution, but compressor differences mean
// the bytes are not guaranteed identical to the game's own output.
func DumpSolution(sol *sim.Solution) (string, error) {
	w := &writer{}
	w.int32(saveVersion)
	for y := 0; y < sim.GridHeight; y++ {
		for x := 0; x < sim.GridWidth; x++ {
			w.cell(&sol.Cells[x][y])
		}
	}
	if sel := sol.Selection; sel != nil {
		w.byte(1)
		w.int32(int32(sel.Origin.X))
		w.int32(int32(sel.Origin.Y))
		w.int32(int32(sel.Size.X))
		w.int32(int32(sel.Size.Y))
	} else {
		w.byte(0)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", errors.Wrap(err, "creating compressor")
	}
	if _, err := zw.Write(w.buf); err != nil {
		return "", errors.Wrap(err, "compressing save data")
	}
	if err := zw.Close(); err != nil {
		return "", errors.Wrap(err, "flushing compressed save data")
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ParseSaveFile scans a whole game save file and returns the solution save
// strings it contains, keyed by level ID and then save slot. Lines look
// like:
//
//	Volgograd.Solution.<levelID>.<slot> = <save string>
func ParseSaveFile(r io.Reader) (map[int]map[int]string, error) {
	solutions := make(map[int]map[int]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		key, val, found := strings.Cut(line, " = ")
		if !found {
			continue
		}
		parts := strings.Split(key, ".")
		if len(parts) != 4 || parts[0] != "Volgograd" || parts[1] != "Solution" {
			continue
		}
		levelID, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: bad level id", lineNo)
		}
		slot, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: bad slot number", lineNo)
		}
		if solutions[levelID] == nil {
			solutions[levelID] = make(map[int]string)
		}
		solutions[levelID][slot] = strings.TrimSpace(val)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading save file")
	}
	return solutions, nil
}

// reader consumes the decompressed save payload with a sticky error.
type reader struct {
	buf []byte
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil || len(r.buf) < n {
		if r.err == nil {
			r.err = errors.Errorf("need %d bytes, have %d", n, len(r.buf))
		}
		return make([]byte, n)
	}
	out := r.buf[:n]
	r.buf = r.buf[n:]
	return out
}

func (r *reader) byte() byte {
	return r.take(1)[0]
}

func (r *reader) int32() int32 {
	return int32(binary.LittleEndian.Uint32(r.take(4)))
}

func (r *reader) cell() sim.Cell {
	components := r.byte()
	metal := r.byte()
	ntype := r.byte()
	ptype := r.byte()
	return sim.Cell{
		Metal:     layerCell(components&componentMetal != 0, metal),
		NType:     layerCell(components&componentNType != 0, ntype),
		PType:     layerCell(components&componentPType != 0, ptype),
		Capacitor: components&componentCapacitor != 0,
		Via:       components&componentVia != 0,
		NOnTop:    components&componentNOnTop != 0,
	}
}

func layerCell(present bool, mask byte) sim.LayerCell {
	return sim.LayerCell{
		Present:     present,
		Connections: sim.DirectionSet(mask) & sim.Dirs(sim.Right, sim.Up, sim.Left, sim.Down),
	}
}

// writer builds the uncompressed save payload.
type writer struct {
	buf []byte
}

func (w *writer) byte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) int32(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

func (w *writer) cell(c *sim.Cell) {
	var components byte
	if c.Metal.Present {
		components |= componentMetal
	}
	if c.NType.Present {
		components |= componentNType
	}
	if c.PType.Present {
		components |= componentPType
	}
	if c.Capacitor {
		components |= componentCapacitor
	}
	if c.Via {
		components |= componentVia
	}
	if c.NOnTop {
		components |= componentNOnTop
	}
	w.byte(components)
	w.byte(byte(c.Metal.Connections))
	w.byte(byte(c.NType.Connections))
	w.byte(byte(c.PType.Connections))
}
