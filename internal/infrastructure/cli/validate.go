package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	appcfg "github.com/repoforge/repoforge/internal/infrastructure/config"
	"github.com/repoforge/repoforge/internal/infrastructure/storage"
)

var validatePath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a local metadata tree",
	Long: `Validate every configuration document in a local metadata tree:
global defaults, team configs, repository type configs, and template
configs. Schema violations are reported per document.

Examples:
  repoforge validate --path ./acme-config
  repoforge validate --path ./acme-config --json`,
	Args: cobra.NoArgs,
	RunE: runValidateCmd,
}

// validationResult is one document's outcome.
type validationResult struct {
	Document string `json:"document"`
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
}

func runValidateCmd(cmd *cobra.Command, _ []string) error {
	path := validatePath
	if path == "" {
		settings, err := appcfg.Load(settingsPath)
		if err != nil {
			return err
		}
		path = settings.MetadataPath
	}
	if path == "" {
		return fmt.Errorf("no metadata path; pass --path or set REPOFORGE_METADATA_PATH")
	}

	results, err := validateTree(cmd.Context(), path)
	if err != nil {
		return err
	}

	invalid := 0
	for _, r := range results {
		if !r.Valid {
			invalid++
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"results": results, "invalid": invalid}); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				pterm.Success.Printf("%s\n", r.Document)
			} else {
				pterm.Error.Printf("%s: %s\n", r.Document, r.Error)
			}
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d invalid document(s)", invalid)
	}
	return nil
}

// validateTree loads every document under root through the same
// providers the resolver uses, so validation matches runtime behavior.
func validateTree(ctx context.Context, root string) ([]validationResult, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("metadata tree %s: %w", root, err)
	}

	metadata := storage.NewFilesystemProvider(root)
	templates := storage.NewFilesystemTemplateStore(root)
	var results []validationResult

	record := func(doc string, err error) {
		r := validationResult{Document: doc, Valid: err == nil}
		if err != nil {
			r.Error = err.Error()
		}
		results = append(results, r)
	}

	_, err := metadata.LoadGlobalDefaults(ctx, "")
	record(storage.GlobalDefaultsFile, err)

	for _, team := range listSubdirs(filepath.Join(root, storage.TeamsDir)) {
		_, err := metadata.LoadTeamConfig(ctx, "", team)
		record(storage.TeamsDir+"/"+team+"/"+storage.LevelConfigFile, err)
	}

	for _, repoType := range listSubdirs(filepath.Join(root, storage.TypesDir)) {
		_, err := metadata.LoadRepositoryTypeConfig(ctx, "", repoType)
		record(storage.TypesDir+"/"+repoType+"/"+storage.LevelConfigFile, err)
	}

	for _, tmpl := range listSubdirs(filepath.Join(root, storage.TemplatesDir)) {
		_, err := templates.LoadTemplateConfig(ctx, "", tmpl)
		record(storage.TemplatesDir+"/"+tmpl+"/"+storage.TemplateConfigFile, err)
	}

	return results, nil
}

func listSubdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func init() {
	validateCmd.Flags().StringVar(&validatePath, "path", "", "path to the local metadata tree")
	RootCmd.AddCommand(validateCmd)
}
