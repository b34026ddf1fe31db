// Command townsim runs the Tradewinds town-trading simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/talgya/tradewinds/internal/economy"
	"github.com/talgya/tradewinds/internal/engine"
	"github.com/talgya/tradewinds/internal/game"
	"github.com/talgya/tradewinds/internal/genesis"
	"github.com/talgya/tradewinds/internal/stats"
	"github.com/talgya/tradewinds/internal/trade"
)

var (
	scenarioFile string
	seed         string
	townCount    int
	turns        int
	driftAlpha   float64
	verbose      bool
	outFile      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "townsim",
		Short: "Tradewinds multi-town trading simulation",
		Long: `A deterministic turn-based trading economy: towns buy and sell
goods against price curves while fuzzy military and prosperity
tiers are revealed on a cadence. Same seed, same world, same run.`,
		RunE: runSim,
	}

	rootCmd.Flags().StringVarP(&scenarioFile, "scenario", "s", "", "Path to a YAML scenario file (omit for a procedural world)")
	rootCmd.Flags().StringVar(&seed, "seed", "tradewinds", "World seed for procedural generation")
	rootCmd.Flags().IntVar(&townCount, "towns", 6, "Town count for procedural generation")
	rootCmd.Flags().IntVarP(&turns, "turns", "t", 20, "Number of turns to simulate")
	rootCmd.Flags().Float64Var(&driftAlpha, "drift", 0.5, "Price drift smoothing factor in [0,1]")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every phase")

	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a procedural scenario as YAML",
		RunE:  runGenerate,
	}
	genCmd.Flags().StringVar(&seed, "seed", "tradewinds", "World seed")
	genCmd.Flags().IntVar(&townCount, "towns", 6, "Town count")
	genCmd.Flags().StringVarP(&outFile, "out", "o", "", "Output path (default stdout)")
	rootCmd.AddCommand(genCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSim(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	sc, err := loadOrGenerate()
	if err != nil {
		return err
	}

	state, err := sc.BuildState()
	if err != nil {
		return err
	}
	profiles, err := sc.BuildProfiles()
	if err != nil {
		return err
	}
	curves, err := sc.Curves()
	if err != nil {
		return err
	}

	slog.Info("world ready",
		"seed", state.Seed,
		"towns", len(state.Towns),
		"goods", len(state.Goods),
		"player", sc.PlayerTown,
	)

	drift, err := economy.NewPriceDrift(curves, driftAlpha)
	if err != nil {
		return err
	}

	rules := stats.DefaultRawStatRules()
	pipeline := engine.NewPipeline()
	pipeline.Register(stats.DecaySystem(rules))
	pipeline.Register(economy.NewProduction(rules.MaxRaw))
	pipeline.Register(stats.RevealSystem(stats.DefaultRevealConfig()))
	pipeline.Register(drift)

	queue := engine.NewActionQueue()
	ctrl := engine.NewController(queue, pipeline, trade.NewCooldownTable(), engine.Config{
		PlayerTownID: sc.PlayerTown,
		Profiles:     profiles,
		PriceModel:   economy.DefaultLinearModel(),
	})
	ctrl.SetObserver(func(phase engine.Phase, detail any) {
		slog.Debug("phase complete", "phase", phase, "detail", detail)
	})

	cur := state
	for i := 0; i < turns; i++ {
		result, err := ctrl.RunTurn(cur)
		if err != nil {
			return fmt.Errorf("turn %d: %w", cur.Turn+1, err)
		}
		cur = result.State
		logTurn(cur)
	}

	printWorld(cur, sc.PlayerTown)
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := genesis.DefaultGenConfig()
	cfg.Seed = seed
	cfg.TownCount = townCount
	sc := genesis.Generate(cfg)

	data, err := yaml.Marshal(sc)
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	if outFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	color.Green("wrote %s (%d towns, seed %q)", outFile, len(sc.Towns), sc.Seed)
	return nil
}

func loadOrGenerate() (*genesis.Scenario, error) {
	if scenarioFile != "" {
		sc, err := genesis.LoadScenario(scenarioFile)
		if err != nil {
			return nil, err
		}
		slog.Info("scenario loaded", "path", scenarioFile)
		return sc, nil
	}
	cfg := genesis.DefaultGenConfig()
	cfg.Seed = seed
	cfg.TownCount = townCount
	slog.Info("generating procedural scenario", "seed", cfg.Seed, "towns", cfg.TownCount)
	return genesis.Generate(cfg), nil
}

func logTurn(s *game.State) {
	total := 0
	for _, t := range s.Towns {
		total += t.Treasury
	}
	slog.Info("turn complete", "turn", s.Turn, "total_treasury", total)
}

// printWorld renders the final world state as a table, one row per town.
func printWorld(s *game.State, playerTown string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Printf("\nWorld after turn %d\n\n", s.Turn)

	goods := s.GoodIDs()
	header := []string{"Town", "Treasury", "Military", "Prosperity"}
	for _, g := range goods {
		header = append(header, g)
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader(header),
	)

	for _, t := range s.Towns {
		name := t.Name
		if t.ID == playerTown {
			name = name + " *"
		}
		row := []string{
			name,
			humanize.Comma(int64(t.Treasury)),
			tierLabel(t.Revealed.MilitaryTier),
			tierLabel(t.Revealed.ProsperityTier),
		}
		for _, g := range goods {
			row = append(row, fmt.Sprintf("%d @ %d", t.Resources[g], t.Prices[g]))
		}
		_ = table.Append(row)
	}
	_ = table.Render()

	fmt.Println("\n* player town; goods shown as stock @ price")
}

func tierLabel(tier string) string {
	if tier == "" {
		return "?"
	}
	return tier
}
