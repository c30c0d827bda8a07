package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/repoforge/repoforge/pkg/application"
	"github.com/repoforge/repoforge/pkg/domain/settings"
)

var (
	visibilityPreference string
	visibilityTemplate   string
)

var visibilityCmd = &cobra.Command{
	Use:   "visibility",
	Short: "Decide the visibility for a new repository",
	Long: `Decide the visibility a new repository would receive, honoring the
organization's policy and billing plan.

A required policy always wins. Otherwise the requested visibility
applies, then the template default, then the system default (private).

Examples:
  repoforge visibility --org acme
  repoforge visibility --org acme --visibility public
  repoforge visibility --org acme --template go-service`,
	Args: cobra.NoArgs,
	RunE: runVisibilityCmd,
}

func runVisibilityCmd(cmd *cobra.Command, _ []string) error {
	services, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	org, err := requireOrg(services)
	if err != nil {
		return err
	}

	var preference *settings.Visibility
	if visibilityPreference != "" {
		v, ok := settings.ParseVisibility(visibilityPreference)
		if !ok {
			return fmt.Errorf("unknown visibility %q (expected one of %v)", visibilityPreference, settings.ValidVisibilities())
		}
		preference = &v
	}

	var templateDefault *settings.Visibility
	if visibilityTemplate != "" {
		res, err := services.SettingsSvc.Resolve(cmd.Context(), application.ResolveRequest{
			Organization: org,
			Template:     visibilityTemplate,
		})
		if err != nil {
			return err
		}
		templateDefault = application.TemplateDefaultVisibility(res)
	}

	decision, err := services.VisibilitySvc.Decide(cmd.Context(), org, preference, templateDefault)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decision)
	}

	pterm.Success.Printf("Visibility: %s\n", decision.Visibility)
	pterm.Info.Printf("Decided by: %s\n", decision.Source)
	pterm.Info.Printf("Policy: %s\n", decision.Policy.Kind)
	return nil
}

func init() {
	visibilityCmd.Flags().StringVar(&visibilityPreference, "visibility", "", "requested visibility (public, private, internal)")
	visibilityCmd.Flags().StringVar(&visibilityTemplate, "template", "", "template whose default visibility applies")
	RootCmd.AddCommand(visibilityCmd)
}
