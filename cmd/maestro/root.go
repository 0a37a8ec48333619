package main

import (
	"os"

	"github.com/spf13/cobra"
)

var debugLogPath string

var rootCmd = &cobra.Command{
	Use:   "maestro",
	Short: "Multi-agent query supervisor",
	Long: `Maestro routes natural-language queries across a fleet of specialist
agents: it plans which agents to call, invokes them over their own
protocols, and combines their outputs into a single answer.

Agents are declared in a YAML registry and hot reloaded on change.
Planning and combination use a language model when one is configured and
degrade to deterministic behavior when not.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&debugLogPath, "debug-log", "", "Write debug log to this file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(versionCmd)
}
