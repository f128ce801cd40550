package main

import (
	"fmt"
	"os"

	"github.com/localnerve/glucodb/internal/config"
	"github.com/spf13/cobra"
)

var (
	envFileFlag string
	rootCmd     = &cobra.Command{
		Use:           "glucoctl",
		Short:         "Maintenance commands for the glucodb service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// loadConfig honours --env-file before reading the environment
func loadConfig() (*config.Config, error) {
	if envFileFlag != "" {
		if err := os.Setenv("ENV_FILE", envFileFlag); err != nil {
			return nil, err
		}
	}
	return config.Load()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFileFlag, "env-file", "e", "", "path to a .env file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
