package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/primegrid-dev/primegrid/engine"
)

var workerAddrFlag string

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run as a socket-strategy worker",
	Long: "Connects to a coordinator started with 'run --strategy socket', sieves\n" +
		"the one segment it is sent, reports the count, and exits.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := engine.RunWorker(workerAddrFlag); err != nil {
			log.Fatal().Err(err).Msg("Worker failed")
		}
	},
}

func init() {
	workerCmd.Flags().StringVar(&workerAddrFlag, "addr", "127.0.0.1:7878", "Coordinator address to connect to")
}
