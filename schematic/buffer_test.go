package schematic

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var testVersion = Version{Name: "1.20.1", DataVersion: 3465}

const twoStacks = `minecraft:barrel{Items:[{Slot:0b, Count:64, id:"minecraft:redstone"},{Slot:1b, Count:60, id:"minecraft:redstone"}]}`

func TestSetBlockOverwrites(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetBlock(Pos{1, 2, 3}, "minecraft:stone"))
	require.NoError(t, b.SetBlock(Pos{1, 2, 3}, "minecraft:barrel{Items:[]}"))

	require.Equal(t, 1, b.Len())
	st, ok := b.Block(Pos{1, 2, 3})
	require.True(t, ok)
	require.Equal(t, "minecraft:barrel", st.Name)
	require.Equal(t, "{Items:[]}", st.Data)
}

func TestSetBlockRejectsBadData(t *testing.T) {
	b := NewBuffer()
	err := b.SetBlock(Pos{}, "minecraft:barrel{Items:[}")
	require.True(t, errors.Is(err, ErrInvalidBlockState), "got %v", err)
	require.Equal(t, 0, b.Len())
}

func TestBounds(t *testing.T) {
	b := NewBuffer()
	_, _, ok := b.Bounds()
	require.False(t, ok)

	require.NoError(t, b.SetBlock(Pos{4, 0, -3}, "minecraft:stone"))
	require.NoError(t, b.SetBlock(Pos{-2, 6, 3}, "minecraft:stone"))
	lo, hi, ok := b.Bounds()
	require.True(t, ok)
	require.Equal(t, Pos{-2, 0, -3}, lo)
	require.Equal(t, Pos{4, 6, 3}, hi)
}

func TestEncodeEmptyBuffer(t *testing.T) {
	err := NewBuffer().Encode(&bytes.Buffer{}, testVersion)
	require.ErrorIs(t, err, ErrEmptyBuffer)
}

func TestSaveRoundTrip(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetBlock(Pos{0, 0, 0}, "minecraft:barrel{Items:[]}"))
	require.NoError(t, b.SetBlock(Pos{4, 2, 3}, twoStacks))
	require.NoError(t, b.SetBlock(Pos{4, 0, 0}, "minecraft:stone"))

	dir := t.TempDir()
	path, err := b.Save(dir, "rom", testVersion)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "rom.schem"), path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")

	f, err := LoadFile(path)
	require.NoError(t, err)

	require.EqualValues(t, 2, f.Version)
	require.EqualValues(t, 3465, f.DataVersion)
	require.EqualValues(t, 5, f.Width)
	require.EqualValues(t, 3, f.Height)
	require.EqualValues(t, 4, f.Length)
	require.Equal(t, []int32{0, 0, 0}, f.Offset)
	require.EqualValues(t, 3, f.PaletteMax)
	require.Equal(t, map[string]int32{
		"minecraft:air":    0,
		"minecraft:barrel": 1,
		"minecraft:stone":  2,
	}, f.Palette)

	got, err := f.BlockAt(Pos{4, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "minecraft:barrel", got)
	got, err = f.BlockAt(Pos{1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, Air, got)

	require.Len(t, f.BlockEntities, 2)
	empty, full := f.BlockEntities[0], f.BlockEntities[1]
	require.Equal(t, []int32{0, 0, 0}, empty.Pos)
	require.Equal(t, "minecraft:barrel", empty.ID)
	require.Empty(t, empty.Items)

	require.Equal(t, []int32{4, 2, 3}, full.Pos)
	require.Equal(t, []ItemStack{
		{Slot: 0, Count: 64, ID: "minecraft:redstone"},
		{Slot: 1, Count: 60, ID: "minecraft:redstone"},
	}, full.Items)
}

func TestSaveNegativeOrigin(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetBlock(Pos{-1, -1, -1}, "minecraft:stone"))
	require.NoError(t, b.SetBlock(Pos{1, 1, 1}, "minecraft:stone"))

	var buf bytes.Buffer
	require.NoError(t, b.Encode(&buf, testVersion))

	f, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, []int32{-1, -1, -1}, f.Offset)

	blocks, err := f.Blocks()
	require.NoError(t, err)
	require.Len(t, blocks, 27)
	require.Equal(t, "minecraft:stone", blocks[0])
	require.Equal(t, "minecraft:stone", blocks[26])
	require.Equal(t, Air, blocks[13])
}
