package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/pattyshack/tilegen/analyzer"
	"github.com/pattyshack/tilegen/codegen"
	"github.com/pattyshack/tilegen/config"
	"github.com/pattyshack/tilegen/log"
	"github.com/pattyshack/tilegen/serializer"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:          "tilegen",
		Short:        "Compile paletted tiles into Z80 drawing routines",
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	var (
		configPath string
		tiles      []string
		logLevel   string
		indexTier  bool
		noColour   bool
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "tiles.yaml", "Tile set config file")
	rootCmd.PersistentFlags().StringSliceVarP(&tiles, "tile", "t", nil, "Only process the named tiles")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the config's log level")
	rootCmd.PersistentFlags().BoolVar(&indexTier, "index-tier", false, "Allow words to use the index registers")
	rootCmd.PersistentFlags().BoolVar(&noColour, "no-colour", false, "Disable coloured output")

	// The logger is initialised before anything is loaded, and switched to the
	// config's level once known unless --log-level is given.
	load := func() (*build, error) {
		level := logLevel
		if level == "" {
			level = config.DefaultLogLevel
		}

		err := log.InitLogger(os.Stderr, level)
		if err != nil {
			return nil, err
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}

		if logLevel == "" && cfg.LogLevel != level {
			err = log.InitLogger(os.Stderr, cfg.LogLevel)
			if err != nil {
				return nil, err
			}
		}

		return newBuild(cfg, tiles, indexTier)
	}

	var (
		outputPath string
		showCost   bool
	)

	var compileCmd = &cobra.Command{
		Use:   "compile",
		Short: "Write the tile set's assembler source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build, err := load()
			if err != nil {
				return err
			}

			tileSet := []codegen.Tile{}
			for _, unit := range build.compile() {
				tileSet = append(tileSet, codegen.NewTile(unit))
			}

			text := codegen.Formatter{ShowCost: showCost}.Format(
				codegen.TileSet(tileSet))

			if outputPath == "" {
				fmt.Print(text)
				return nil
			}
			return os.WriteFile(outputPath, []byte(text), 0644)
		},
	}
	compileCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")
	compileCmd.Flags().BoolVar(&showCost, "show-cost", false, "Annotate instructions with their cost")

	var dump bool
	var printEventsCmd = &cobra.Command{
		Use:   "print-events",
		Short: "Print each tile's serialized write events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build, err := load()
			if err != nil {
				return err
			}

			au := aurora.NewAurora(!noColour)
			for _, job := range build.jobs {
				printHeader(au, job.Name)
				events := serializer.Collect(job.serializer)
				if dump {
					spew.Dump(events)
					continue
				}

				for idx, event := range events {
					fmt.Printf("%4d  %s\n", idx, colourEvent(au, event))
				}
			}
			return nil
		},
	}
	printEventsCmd.Flags().BoolVar(&dump, "dump", false, "Dump raw event structs")

	var printAllocationsCmd = &cobra.Command{
		Use:   "print-allocations",
		Short: "Print each tile's register allocation decisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build, err := load()
			if err != nil {
				return err
			}

			au := aurora.NewAurora(!noColour)
			for _, unit := range build.compile() {
				printHeader(au, unit.Name)
				fmt.Println(analyzer.AllocationTree(unit).String())
				if unit.WordPlan != nil && unit.WordPlan.Degraded {
					fmt.Println(au.Red("WARNING: index tier search skipped"))
				}
			}
			return nil
		},
	}

	var printOperationsCmd = &cobra.Command{
		Use:   "print-operations",
		Short: "Print each tile's register events and operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build, err := load()
			if err != nil {
				return err
			}

			au := aurora.NewAurora(!noColour)
			for _, unit := range build.compile() {
				printHeader(au, unit.Name)
				for _, event := range unit.Events {
					fmt.Println(colourRegisterEvent(au, event))
				}
				fmt.Println()

				for _, op := range unit.Operations {
					fmt.Printf(
						"\t%-16s %s\n",
						op,
						au.Green(fmt.Sprintf("; %d", op.Cost())))
				}
				fmt.Println(au.Bold(fmt.Sprintf("total cost: %d", unit.Cost())))
			}
			return nil
		},
	}

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(printEventsCmd)
	rootCmd.AddCommand(printAllocationsCmd)
	rootCmd.AddCommand(printOperationsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printHeader(au aurora.Aurora, name string) {
	fmt.Println(au.Cyan(strings.Repeat("=", 40)))
	fmt.Println(au.Cyan("Tile: " + name))
	fmt.Println(au.Cyan(strings.Repeat("-", 40)))
}

func colourEvent(au aurora.Aurora, event serializer.Event) string {
	switch event.Kind {
	case serializer.EmitWordEvent:
		return au.Blue(event.String()).String()
	case serializer.EmitByteEvent:
		return au.Magenta(event.String()).String()
	default:
		return au.Yellow(event.String()).String()
	}
}

func colourRegisterEvent(au aurora.Aurora, event analyzer.RegisterEvent) string {
	switch event.Kind {
	case analyzer.LoadEvent:
		if event.Register.IsIndex() {
			return au.Red(event.String()).String()
		}
		return au.Yellow(event.String()).String()
	case analyzer.ReuseEvent:
		return au.Green(event.String()).String()
	default:
		return au.Magenta(event.String()).String()
	}
}
