package cli

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect repository templates",
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Show a template's configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShowCmd,
}

func runTemplatesShowCmd(cmd *cobra.Command, args []string) error {
	services, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	org, err := requireOrg(services)
	if err != nil {
		return err
	}

	tmpl, err := services.Templates.LoadTemplateConfig(cmd.Context(), org, args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tmpl)
	}

	pterm.DefaultHeader.Printf("Template %s", tmpl.Template.Name)
	pterm.Println()
	if tmpl.Template.Description != "" {
		pterm.Info.Printf("Description: %s\n", tmpl.Template.Description)
	}
	if tmpl.Template.Author != "" {
		pterm.Info.Printf("Author: %s\n", tmpl.Template.Author)
	}
	if len(tmpl.Template.Tags) > 0 {
		pterm.Info.Printf("Tags: %s\n", strings.Join(tmpl.Template.Tags, ", "))
	}
	if tmpl.RepositoryType != nil {
		pterm.Info.Printf("Repository type: %s (%s)\n", tmpl.RepositoryType.Type, tmpl.RepositoryType.Policy)
	}
	if tmpl.DefaultVisibility != nil {
		pterm.Info.Printf("Default visibility: %s\n", *tmpl.DefaultVisibility)
	}
	if len(tmpl.Variables) > 0 {
		names := make([]string, 0, len(tmpl.Variables))
		for n := range tmpl.Variables {
			names = append(names, n)
		}
		sort.Strings(names)
		pterm.DefaultSection.Println("Variables")
		for _, n := range names {
			v := tmpl.Variables[n]
			line := n
			if v.Description != "" {
				line += " - " + v.Description
			}
			if v.Required != nil && *v.Required {
				line += " (required)"
			}
			pterm.Printf("  %s\n", line)
		}
	}
	return nil
}

func init() {
	templatesCmd.AddCommand(templatesShowCmd)
	RootCmd.AddCommand(templatesCmd)
}
