package mcgen

import (
	"fmt"

	"github.com/reallyoldfogie/mc-schem-gen/schematic"
)

// romColumns is how many words one row of a ROM holds.
const romColumns = 16

// Layout describes a lattice of barrel stacks. Column c, row r and layer p
// sit at (c*SpacingX, p*SpacingY, r*SpacingZ).
type Layout struct {
	Columns  int
	Rows     int
	Layers   int
	SpacingX int
	SpacingY int
	SpacingZ int
}

// DefaultLayout is a 3x3 grid of stacks four barrels high, at heights 0, 2, 4, 6.
func DefaultLayout() Layout {
	return Layout{Columns: 3, Rows: 3, Layers: 4, SpacingX: 4, SpacingY: 2, SpacingZ: 3}
}

// ROMLayout returns a layout wide enough for n words, 16 per row, with one
// layer per nibble.
func ROMLayout(n int) Layout {
	l := DefaultLayout()
	l.Columns = romColumns
	l.Rows = (n + romColumns - 1) / romColumns
	return l
}

func (l Layout) Validate() error {
	if l.Columns < 1 || l.Rows < 1 || l.Layers < 1 {
		return fmt.Errorf("grid %dx%dx%d must have at least one cell", l.Columns, l.Rows, l.Layers)
	}
	if l.SpacingX < 1 || l.SpacingY < 1 || l.SpacingZ < 1 {
		return fmt.Errorf("spacing %d/%d/%d must be positive", l.SpacingX, l.SpacingY, l.SpacingZ)
	}
	return nil
}

// Cells is the number of positions in the lattice.
func (l Layout) Cells() int { return l.Columns * l.Rows * l.Layers }

// Pos returns the block position of a lattice cell.
func (l Layout) Pos(column, row, layer int) schematic.Pos {
	return schematic.Pos{X: column * l.SpacingX, Y: layer * l.SpacingY, Z: row * l.SpacingZ}
}

// Cell identifies one barrel of the lattice.
type Cell struct {
	Column, Row, Layer int
}

// SignalFunc chooses the signal strength for a cell. ok=false leaves the
// cell unplaced.
type SignalFunc func(c Cell) (signal int, ok bool)

// ConstantSignal places signal in every cell.
func ConstantSignal(signal int) SignalFunc {
	return func(Cell) (int, bool) { return signal, true }
}

// WordSignals places word i in column i%16, row i/16; layer p holds
// nibble p of the word, least significant first.
func WordSignals(words []uint16) SignalFunc {
	return func(c Cell) (int, bool) {
		i := c.Row*romColumns + c.Column
		if c.Column >= romColumns || i >= len(words) || c.Layer > 3 {
			return 0, false
		}
		return int(words[i]>>(4*c.Layer)) & 0xF, true
	}
}

// Place sets one encoded barrel per lattice cell in buf, layer by layer.
// It returns the number of blocks placed.
func Place(buf *schematic.Buffer, l Layout, signals SignalFunc, onPlace func(schematic.Pos, int)) (int, error) {
	if err := l.Validate(); err != nil {
		return 0, err
	}
	placed := 0
	for layer := 0; layer < l.Layers; layer++ {
		for row := 0; row < l.Rows; row++ {
			for col := 0; col < l.Columns; col++ {
				signal, ok := signals(Cell{Column: col, Row: row, Layer: layer})
				if !ok {
					continue
				}
				state, err := EncodeSignalStrict(signal)
				if err != nil {
					return placed, err
				}
				pos := l.Pos(col, row, layer)
				if err := buf.SetBlock(pos, state); err != nil {
					return placed, fmt.Errorf("place barrel at %v: %w", pos, err)
				}
				if onPlace != nil {
					onPlace(pos, signal)
				}
				placed++
			}
		}
	}
	return placed, nil
}
