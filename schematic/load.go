package schematic

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

// ItemStack is one inventory entry of a container block entity.
type ItemStack struct {
	Slot  int8   `nbt:"Slot"`
	Count int32  `nbt:"Count"`
	ID    string `nbt:"id"`
}

// BlockEntity is the subset of block entity data this package reads back.
type BlockEntity struct {
	Pos   []int32     `nbt:"Pos"`
	ID    string      `nbt:"Id"`
	Items []ItemStack `nbt:"Items"`
}

// File is a decoded Sponge schematic.
type File struct {
	Version       int32            `nbt:"Version"`
	DataVersion   int32            `nbt:"DataVersion"`
	Width         int16            `nbt:"Width"`
	Height        int16            `nbt:"Height"`
	Length        int16            `nbt:"Length"`
	Offset        []int32          `nbt:"Offset"`
	PaletteMax    int32            `nbt:"PaletteMax"`
	Palette       map[string]int32 `nbt:"Palette"`
	BlockData     []byte           `nbt:"BlockData"`
	BlockEntities []BlockEntity    `nbt:"BlockEntities"`
}

// LoadFile reads a gzip-compressed schematic from path.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, nil
}

// Decode reads a gzip-compressed schematic from r.
func Decode(r io.Reader) (*File, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()

	var s File
	if _, err := nbt.NewDecoder(zr).Decode(&s); err != nil {
		return nil, fmt.Errorf("nbt: %w", err)
	}
	return &s, nil
}

// Blocks expands BlockData into one palette key per cell, in x + z*Width +
// y*Width*Length order.
func (s *File) Blocks() ([]string, error) {
	names := make(map[int32]string, len(s.Palette))
	for k, v := range s.Palette {
		names[v] = k
	}

	total := int(s.Width) * int(s.Height) * int(s.Length)
	out := make([]string, 0, total)
	data := s.BlockData
	for len(out) < total {
		id, n := binary.Uvarint(data)
		if n <= 0 {
			return nil, fmt.Errorf("block data truncated at cell %d", len(out))
		}
		data = data[n:]
		name, ok := names[int32(id)]
		if !ok {
			return nil, fmt.Errorf("cell %d: palette id %d not in palette", len(out), id)
		}
		out = append(out, name)
	}
	return out, nil
}

// BlockAt returns the palette key of the block at schematic-relative pos.
func (s *File) BlockAt(pos Pos) (string, error) {
	if pos.X < 0 || pos.Y < 0 || pos.Z < 0 ||
		pos.X >= int(s.Width) || pos.Y >= int(s.Height) || pos.Z >= int(s.Length) {
		return "", fmt.Errorf("position %v outside %dx%dx%d", pos, s.Width, s.Height, s.Length)
	}
	blocks, err := s.Blocks()
	if err != nil {
		return "", err
	}
	w, l := int(s.Width), int(s.Length)
	return blocks[pos.X+pos.Z*w+pos.Y*w*l], nil
}
