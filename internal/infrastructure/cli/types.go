package cli

import (
	"encoding/json"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Work with the repository type catalogue",
}

var typesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the repository types defined for the organization",
	Args:  cobra.NoArgs,
	RunE:  runTypesListCmd,
}

var typesValidateCmd = &cobra.Command{
	Use:   "validate <name>",
	Short: "Validate a repository type name against the catalogue",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypesValidateCmd,
}

func runTypesListCmd(cmd *cobra.Command, _ []string) error {
	services, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	org, err := requireOrg(services)
	if err != nil {
		return err
	}

	types, err := services.SettingsSvc.ListRepositoryTypes(cmd.Context(), org)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"organization": org, "types": types})
	}

	if len(types) == 0 {
		pterm.Info.Printf("No repository types defined for %s\n", org)
		return nil
	}
	pterm.DefaultSection.Printf("Repository types for %s", org)
	for _, t := range types {
		pterm.Printf("  %s\n", t)
	}
	return nil
}

func runTypesValidateCmd(cmd *cobra.Command, args []string) error {
	services, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	org, err := requireOrg(services)
	if err != nil {
		return err
	}

	name, err := services.SettingsSvc.ValidateRepositoryType(cmd.Context(), org, args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(map[string]any{"name": name.String(), "valid": true})
	}
	pterm.Success.Printf("%s is a valid repository type\n", name)
	return nil
}

func init() {
	typesCmd.AddCommand(typesListCmd)
	typesCmd.AddCommand(typesValidateCmd)
	RootCmd.AddCommand(typesCmd)
}
