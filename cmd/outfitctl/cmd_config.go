package main

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings with credentials masked",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), cfg.Redacted())
}
