package cli

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/repoforge/repoforge/pkg/application"
)

// Flag variables for resolve command
var (
	resolveTeam string
	resolveType string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <template>",
	Short: "Resolve the effective configuration for a template",
	Long: `Resolve the configuration a repository created from a template would
receive, merging global defaults, repository type, team, and template
settings.

Scalar fields are won by the highest level that declares them, unless
the global defaults lock them down. Collections (labels, webhooks,
environments, apps, properties, rulesets, notification endpoints)
accumulate across levels.

Examples:
  repoforge resolve go-service --org acme --team platform
  repoforge resolve go-service --org acme --type service --json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolveCmd,
}

func runResolveCmd(cmd *cobra.Command, args []string) error {
	services, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	org, err := requireOrg(services)
	if err != nil {
		return err
	}

	res, err := services.SettingsSvc.Resolve(cmd.Context(), application.ResolveRequest{
		Organization:   org,
		Template:       args[0],
		Team:           resolveTeam,
		RepositoryType: resolveType,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Merged)
	}

	printResolution(res)
	return nil
}

func printResolution(res *application.Resolution) {
	m := res.Merged
	pterm.DefaultHeader.Printf("Configuration for %s (template %s)", m.Context.Organization, m.Context.Template)
	pterm.Println()

	if res.EffectiveType != "" {
		pterm.Info.Printf("Repository type: %s\n", res.EffectiveType)
	}
	if m.Context.Team != "" {
		pterm.Info.Printf("Team: %s\n", m.Context.Team)
	}

	rows := pterm.TableData{{"Field", "Value", "Source"}}
	fields := make([]string, 0, len(m.Trace.Fields))
	for f := range m.Trace.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	values := m.ScalarValues()
	for _, f := range fields {
		rows = append(rows, []string{f, values[f], string(m.Trace.Fields[f])})
	}
	if len(rows) > 1 {
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}

	counts := []struct {
		name string
		n    int
	}{
		{"labels", len(m.Labels)},
		{"webhooks", len(m.Webhooks)},
		{"environments", len(m.Environments)},
		{"github apps", len(m.GitHubApps)},
		{"custom properties", len(m.CustomProperties)},
		{"rulesets", len(m.Rulesets)},
		{"notification endpoints", len(m.NotificationEndpoints)},
	}
	for _, c := range counts {
		if c.n > 0 {
			pterm.Info.Printf("%-24s %d\n", c.name+":", c.n)
		}
	}
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveTeam, "team", "t", "", "team whose configuration applies")
	resolveCmd.Flags().StringVar(&resolveType, "type", "", "repository type (validated against the catalogue)")
	RootCmd.AddCommand(resolveCmd)
}
