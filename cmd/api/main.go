package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tasks-api",
		Short:         "AI task tracker: type what happened, the model files it",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newProcessCmd(),
		newTasksCmd(),
		newHashPasswordCmd(),
		newTokenCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Println("❌", err)
		os.Exit(1)
	}
}
