// Package cli implements the repoforge command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Global flag variables
var (
	settingsPath string
	orgFlag      string
	jsonOutput   bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "repoforge",
	Version: Version,
	Short:   "Resolve and apply organization repository configuration",
	Long: `RepoForge resolves repository settings from a four-level hierarchy:
organization global defaults, repository type, team, and template.
It validates metadata repositories, enforces override policy, and
decides repository visibility against organization policy and plan.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "path to the repoforge settings file")
	RootCmd.PersistentFlags().StringVarP(&orgFlag, "org", "o", "", "GitHub organization (overrides settings)")
	RootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
}
