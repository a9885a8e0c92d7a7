package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/promptq/promptq/internal/config"
	"github.com/promptq/promptq/internal/llm"
)

var modelsConfig struct {
	endpoint       string
	timeoutSeconds int
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models exposed by the endpoint",
	Long: `List the models the configured endpoint exposes.

This is a listing, not a validation step: query sends whatever --model
you give it, whether or not it appears here.

Examples:
  # List models on the default endpoint
  promptq models

  # List models on a local server
  promptq models --endpoint http://localhost:11434/v1`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().StringVar(&modelsConfig.endpoint, "endpoint", "", "API base URL (default is the Hugging Face router)")
	modelsCmd.Flags().IntVar(&modelsConfig.timeoutSeconds, "timeout-seconds", config.DefaultTimeoutSeconds, "Request timeout in seconds")
}

func runModels(cmd *cobra.Command, args []string) error {
	endpoint := modelsConfig.endpoint
	if endpoint == "" {
		endpoint = GetEndpoint()
	}

	timeout := modelsConfig.timeoutSeconds
	if !cmd.Flags().Changed("timeout-seconds") {
		if v := GetTimeoutSeconds(); v > 0 {
			timeout = v
		}
	}

	cfg, err := config.Load(endpoint, timeout)
	if err != nil {
		return err
	}

	if IsVerbose() {
		fmt.Fprintf(os.Stderr, "[promptq] Fetching models from %s\n", cfg.Endpoint)
	}

	client := &llm.Client{
		Endpoint: cfg.Endpoint,
		Token:    cfg.Token,
		Timeout:  cfg.Timeout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	models, err := client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}

	if len(models) == 0 {
		fmt.Fprintln(os.Stderr, "No models returned by the endpoint")
		return nil
	}

	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"ID", "Owned By", "Created"})

	for _, m := range models {
		created := ""
		if m.Created > 0 {
			created = time.Unix(m.Created, 0).UTC().Format("2006-01-02")
		}
		table.Append([]string{m.ID, m.OwnedBy, created})
	}

	table.Render()
	return nil
}
