package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/primegrid-dev/primegrid/engine"
)

var (
	limitFlag    uint64
	workersFlag  int
	strategyFlag string
	addrFlag     string
	outFlag      string
)

var runCmd = &cobra.Command{
	Use:   "run [JOBFILE]",
	Short: "Compute all primes up to the limit",
	Args:  cobra.MaximumNArgs(1),
	Run:   runCommand,
}

func init() {
	runCmd.Flags().Uint64Var(&limitFlag, "limit", 0, "Upper bound of the search, inclusive")
	runCmd.Flags().IntVar(&workersFlag, "workers", 0, "Number of workers (goroutines, ranks, or connections)")
	runCmd.Flags().StringVar(&strategyFlag, "strategy", "", "Distribution strategy (auto, collective, socket, local, single)")
	runCmd.Flags().StringVar(&addrFlag, "addr", "", "Coordinator listen address for the socket strategy")
	runCmd.Flags().StringVar(&outFlag, "out", "", "Write the encoded result to a file")
}

func runCommand(cmd *cobra.Command, args []string) {
	cfg := &engine.Config{}
	if len(args) == 1 {
		loaded, err := engine.LoadConfigFromFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("Couldn't load job file")
		}
		cfg = loaded
	}

	// Flags override job-file values.
	if limitFlag != 0 {
		cfg.Limit = limitFlag
	}
	if workersFlag != 0 {
		cfg.Workers = workersFlag
	}
	if strategyFlag != "" {
		cfg.Strategy = engine.Strategy(strategyFlag)
	}
	if addrFlag != "" {
		cfg.Addr = addrFlag
	}

	fmt.Fprintln(os.Stderr, color.Cyan.Sprint("Running distributed sieve..."))

	result, err := engine.Run(*cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Run failed")
	}

	printResult(result)

	if outFlag != "" {
		f, err := os.Create(outFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Couldn't create output file")
		}
		defer f.Close()
		if err := result.Serialize(f); err != nil {
			log.Fatal().Err(err).Msg("Couldn't write result")
		}
	}
}

func printResult(r *engine.Result) {
	line := color.Gray.Sprint(strings.Repeat("─", 60))

	fmt.Println(line)
	fmt.Println(color.Bold.Sprint("Run:          "), r.RunID)
	fmt.Println(color.Bold.Sprint("Nodes:        "), r.Nodes)
	fmt.Println(color.Bold.Sprint("Base primes:  "), r.BasePrimeCount)
	fmt.Println(color.Bold.Sprint("Total primes: "), color.Green.Sprint(r.TotalPrimes))
	if r.Largest > 0 {
		fmt.Println(color.Bold.Sprint("Largest:      "), r.Largest)
		fmt.Printf("%s  %.6f\n", color.Bold.Sprint("Density:     "), r.Density)
	}
	fmt.Println(color.Bold.Sprint("Elapsed:      "), r.Elapsed)
	fmt.Println(line)
	for i, count := range r.NodeCounts {
		fmt.Printf("  node %d: %d primes\n", i, count)
	}
	fmt.Println(line)
}
