package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("cpdump")

func main() {
	var (
		verbose int
		logFile string
	)

	rootCmd := &cobra.Command{
		Use:           "cpdump",
		Short:         "Decode and inspect Java class file constant pools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbose, path)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newPoolCmd())
	rootCmd.AddCommand(newClassCmd())
	rootCmd.AddCommand(newDescriptorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cpdump: %v\n", err)
		os.Exit(1)
	}
}
