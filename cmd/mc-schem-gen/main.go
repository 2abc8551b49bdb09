package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reallyoldfogie/mc-schem-gen/internal/mcgen"
	"github.com/reallyoldfogie/mc-schem-gen/schematic"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.InfoLevel,
	})

	if err := rootCmd(logger).Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func rootCmd(logger *log.Logger) *cobra.Command {
	var verbose bool

	gen := generateCmd(logger)
	root := &cobra.Command{
		Use:          "mc-schem-gen",
		Short:        "Generate barrel ROM schematics for comparator signal strengths",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		// Running without a subcommand performs the default generation.
		RunE: gen.RunE,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().AddFlagSet(gen.Flags())

	root.AddCommand(gen)
	root.AddCommand(encodeCmd())
	root.AddCommand(inspectCmd(logger))
	return root
}

func generateCmd(logger *log.Logger) *cobra.Command {
	var (
		configPath string
		outDir     string
		name       string
		signal     int
		words      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the barrel schematic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mcgen.ResolveConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("out-dir") {
				cfg.OutputDir = outDir
			}
			if cmd.Flags().Changed("name") {
				cfg.Name = name
			}
			if cmd.Flags().Changed("signal") {
				cfg.SignalStrength = signal
			}
			if cmd.Flags().Changed("words") {
				cfg.WordsFile = words
			}

			start := time.Now()
			res, err := mcgen.Generate(cfg, logger)
			if err != nil {
				return err
			}
			logger.Debug("done", "elapsed", time.Since(start).Round(time.Millisecond))
			fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", mcgen.DefaultConfigPath, "path to config file (YAML)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory the schematic is written to")
	cmd.Flags().StringVar(&name, "name", "rom", "schematic file name without extension")
	cmd.Flags().IntVar(&signal, "signal", 0, "comparator signal strength for every barrel (0-15)")
	cmd.Flags().StringVar(&words, "words", "", "file of 16-bit words to lay out as a ROM")
	return cmd
}

func encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <signal>",
		Short: "Print the barrel block state for a signal strength",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signal, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse signal: %w", err)
			}
			state, err := mcgen.EncodeSignalStrict(signal)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}
}

func inspectCmd(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.schem>",
		Short: "Summarize a saved schematic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := schematic.LoadFile(args[0])
			if err != nil {
				return err
			}
			logger.Info("schematic",
				"size", fmt.Sprintf("%dx%dx%d", f.Width, f.Height, f.Length),
				"data_version", f.DataVersion,
				"palette", len(f.Palette),
				"block_entities", len(f.BlockEntities))
			for key, id := range f.Palette {
				logger.Debug("palette entry", "id", id, "state", key)
			}
			for _, be := range f.BlockEntities {
				items := 0
				for _, it := range be.Items {
					items += int(it.Count)
				}
				logger.Debug("block entity", "pos", be.Pos, "id", be.ID, "items", items)
			}
			return nil
		},
	}
}
