package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seedforge [command]",
	Short: "Synthetic seed data generator for the NovaCRM analytics project",
	Long:  `Generates five internally consistent CSV tables (accounts, subscriptions, invoices, usage events, support tickets) simulating a B2B SaaS business, for use as dbt seeds in downstream analytics pipelines.`,
}

func Execute() error {
	return rootCmd.Execute()
}
