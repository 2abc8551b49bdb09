package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd(log.New(io.Discard))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeCommand(t *testing.T) {
	out, err := run(t, "encode", "1")
	require.NoError(t, err)
	require.Equal(t, `minecraft:barrel{Items:[{Slot:0b, Count:1, id:"minecraft:redstone"}]}`, strings.TrimSpace(out))

	_, err = run(t, "encode", "16")
	require.Error(t, err)
}

func TestRootGeneratesIntoOutDir(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "missing.yaml")

	_, err := run(t, "--config", cfg)
	require.Error(t, err, "an explicit --config must exist")

	out, err := run(t, "--out-dir", dir, "--signal", "4")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "rom.schem"), strings.TrimSpace(out))

	_, err = os.Stat(filepath.Join(dir, "rom.schem"))
	require.NoError(t, err)

	_, err = run(t, "inspect", filepath.Join(dir, "rom.schem"))
	require.NoError(t, err)
}
