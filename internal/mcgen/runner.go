package mcgen

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/reallyoldfogie/mc-schem-gen/schematic"
)

// Result describes a written schematic.
type Result struct {
	Path    string
	Version schematic.Version
	Blocks  int
}

// Generate builds the barrel schematic described by cfg and saves it.
// Without a words file every barrel holds cfg.SignalStrength; with one,
// the words are laid out as a ROM.
func Generate(cfg *Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	version, err := ResolveVersion(cfg.GameVersion)
	if err != nil {
		return nil, err
	}

	layout, signals, err := plan(cfg, logger)
	if err != nil {
		return nil, err
	}

	buf := schematic.NewBuffer()
	placed, err := Place(buf, layout, signals, func(pos schematic.Pos, signal int) {
		logger.Debug("placed barrel", "pos", pos, "signal", signal, "items", ItemCount(signal))
	})
	if err != nil {
		return nil, fmt.Errorf("place barrels: %w", err)
	}

	path, err := buf.Save(cfg.OutputDir, cfg.Name, version)
	if err != nil {
		return nil, fmt.Errorf("save schematic: %w", err)
	}
	logger.Info("wrote schematic", "path", path, "barrels", placed, "version", version.Name)

	return &Result{Path: path, Version: version, Blocks: placed}, nil
}

func plan(cfg *Config, logger *log.Logger) (Layout, SignalFunc, error) {
	if cfg.WordsFile == "" {
		layout, err := cfg.GridLayout()
		if err != nil {
			return Layout{}, nil, err
		}
		logger.Debug("grid layout", "columns", layout.Columns, "rows", layout.Rows,
			"layers", layout.Layers, "signal", cfg.SignalStrength)
		return layout, ConstantSignal(cfg.SignalStrength), nil
	}

	words, err := ReadWordsFile(cfg.WordsFile)
	if err != nil {
		return Layout{}, nil, err
	}
	layout := ROMLayout(len(words))
	logger.Debug("rom layout", "words", len(words), "rows", layout.Rows)
	return layout, WordSignals(words), nil
}
