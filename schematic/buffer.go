package schematic

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

// ErrEmptyBuffer is returned when saving a buffer with no blocks.
var ErrEmptyBuffer = errors.New("schematic has no blocks")

// spongeVersion is the Sponge schematic format revision written by Encode.
const spongeVersion = 2

// Version identifies the game release the schematic targets.
type Version struct {
	Name        string // e.g. "1.20.1"
	DataVersion int32
}

type block struct {
	state  BlockState
	fields map[string]nbt.RawMessage // decoded Data; nil when the block has none
}

// Buffer accumulates block placements until they are saved.
// It is not safe for concurrent use.
type Buffer struct {
	blocks map[Pos]block
}

// NewBuffer returns an empty schematic buffer.
func NewBuffer() *Buffer {
	return &Buffer{blocks: make(map[Pos]block)}
}

// SetBlock records the block state at pos, replacing any earlier block.
// The state may carry SNBT data, which becomes the block entity.
func (b *Buffer) SetBlock(pos Pos, state string) error {
	st, err := ParseBlockState(state)
	if err != nil {
		return err
	}
	var fields map[string]nbt.RawMessage
	if st.Data != "" {
		fields, err = decodeSNBT(st.Data)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidBlockState, state, err)
		}
	}
	b.blocks[pos] = block{state: st, fields: fields}
	return nil
}

// Block returns the state recorded at pos.
func (b *Buffer) Block(pos Pos) (BlockState, bool) {
	blk, ok := b.blocks[pos]
	return blk.state, ok
}

// Len returns the number of recorded blocks.
func (b *Buffer) Len() int { return len(b.blocks) }

// Bounds returns the inclusive bounding box of all recorded blocks.
func (b *Buffer) Bounds() (lo, hi Pos, ok bool) {
	first := true
	for p := range b.blocks {
		if first {
			lo, hi, first = p, p, false
			continue
		}
		lo = Pos{min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z)}
		hi = Pos{max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z)}
	}
	return lo, hi, !first
}

type metadata struct {
	WEOffsetX int32 `nbt:"WEOffsetX"`
	WEOffsetY int32 `nbt:"WEOffsetY"`
	WEOffsetZ int32 `nbt:"WEOffsetZ"`
}

type spongeSchematic struct {
	Version       int32            `nbt:"Version"`
	DataVersion   int32            `nbt:"DataVersion"`
	Width         int16            `nbt:"Width"`
	Height        int16            `nbt:"Height"`
	Length        int16            `nbt:"Length"`
	Offset        []int32          `nbt:"Offset"`
	Metadata      metadata         `nbt:"Metadata"`
	PaletteMax    int32            `nbt:"PaletteMax"`
	Palette       map[string]int32 `nbt:"Palette"`
	BlockData     []byte           `nbt:"BlockData"`
	BlockEntities []map[string]any `nbt:"BlockEntities"`
}

// Encode writes the buffer as gzip-compressed Sponge schematic NBT.
func (b *Buffer) Encode(w io.Writer, version Version) error {
	s, err := b.build(version)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(w)
	if err := nbt.NewEncoder(zw).Encode(s, "Schematic"); err != nil {
		zw.Close()
		return fmt.Errorf("encode nbt: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}
	return nil
}

func (b *Buffer) build(version Version) (*spongeSchematic, error) {
	lo, hi, ok := b.Bounds()
	if !ok {
		return nil, ErrEmptyBuffer
	}
	w, h, l := hi.X-lo.X+1, hi.Y-lo.Y+1, hi.Z-lo.Z+1
	if w > math.MaxInt16 || h > math.MaxInt16 || l > math.MaxInt16 {
		return nil, fmt.Errorf("schematic too large: %dx%dx%d", w, h, l)
	}

	palette := map[string]int32{Air: 0}
	indices := make([]int32, w*h*l)
	entities := make([]map[string]any, 0)

	// Visit cells in storage order so palette ids and block entities are
	// deterministic for a given set of placements.
	for y := 0; y < h; y++ {
		for z := 0; z < l; z++ {
			for x := 0; x < w; x++ {
				blk, ok := b.blocks[Pos{lo.X + x, lo.Y + y, lo.Z + z}]
				if !ok {
					continue
				}
				key := blk.state.Key()
				id, seen := palette[key]
				if !seen {
					id = int32(len(palette))
					palette[key] = id
				}
				indices[x+z*w+y*w*l] = id

				if blk.fields != nil {
					entities = append(entities, blockEntity(blk, x, y, z))
				}
			}
		}
	}

	data := make([]byte, 0, len(indices))
	for _, id := range indices {
		data = binary.AppendUvarint(data, uint64(id))
	}

	return &spongeSchematic{
		Version:       spongeVersion,
		DataVersion:   version.DataVersion,
		Width:         int16(w),
		Height:        int16(h),
		Length:        int16(l),
		Offset:        []int32{int32(lo.X), int32(lo.Y), int32(lo.Z)},
		Metadata:      metadata{WEOffsetX: int32(lo.X), WEOffsetY: int32(lo.Y), WEOffsetZ: int32(lo.Z)},
		PaletteMax:    int32(len(palette)),
		Palette:       palette,
		BlockData:     data,
		BlockEntities: entities,
	}, nil
}

func blockEntity(blk block, x, y, z int) map[string]any {
	be := make(map[string]any, len(blk.fields)+2)
	for k, v := range blk.fields {
		be[k] = v
	}
	be["Pos"] = []int32{int32(x), int32(y), int32(z)}
	be["Id"] = blk.state.Name
	return be
}

// decodeSNBT converts an SNBT compound into its top-level NBT fields.
func decodeSNBT(snbt string) (map[string]nbt.RawMessage, error) {
	raw, err := nbt.Marshal(nbt.StringifiedMessage(snbt))
	if err != nil {
		return nil, fmt.Errorf("parse snbt: %w", err)
	}
	fields := make(map[string]nbt.RawMessage)
	if err := nbt.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode snbt compound: %w", err)
	}
	return fields, nil
}
