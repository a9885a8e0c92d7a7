package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/promptq/promptq/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show and validate the profiles file",
	Long: `Show the named presets in the profiles file and validate them.

Checks:
  - YAML syntax (unknown fields are rejected)
  - every profile names a model
  - max_tokens, when set, is >= 1
  - endpoint, when set, is an absolute http(s) URL

The file is resolved from --profiles-file, $PROMPTQ_PROFILES, or
$HOME/.promptq/profiles.yaml, in that order.

Examples:
  # Show the default profiles file
  promptq profiles

  # Validate a specific file
  promptq profiles --profiles-file ./profiles.yaml`,
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	result := profile.Load(profilesFile)

	if result.Absent {
		fmt.Fprintf(os.Stderr, "No profiles file found at %s\n", result.Path)
		fmt.Fprintf(os.Stderr, "query works without one; profiles only provide named presets.\n")
		return nil
	}

	if result.ErrorMsg != "" {
		return fmt.Errorf("profiles file %s: %s", result.Path, result.ErrorMsg)
	}

	fmt.Fprintf(os.Stdout, "Profiles file: %s\n", result.Path)

	vr := profile.Validate(result.File)
	if !vr.Valid {
		fmt.Fprintf(os.Stdout, "Validation: FAILED\n\n")
		for _, e := range vr.Errors {
			fmt.Fprintf(os.Stdout, "  ✗ %s\n", e.String())
		}
		return fmt.Errorf("profiles validation failed with %d error(s)", len(vr.Errors))
	}

	fmt.Fprintf(os.Stdout, "Validation: OK\n\n")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Name", "Model", "Max Tokens", "Endpoint"})

	for _, name := range profile.Names(result.File) {
		p := result.File.Profiles[name]
		maxTokens := ""
		if p.MaxTokens > 0 {
			maxTokens = strconv.Itoa(p.MaxTokens)
		}
		table.Append([]string{name, p.Model, maxTokens, p.Endpoint})
	}

	table.Render()
	return nil
}
