package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptq/promptq/internal/config"
	"github.com/promptq/promptq/internal/llm"
	"github.com/promptq/promptq/internal/profile"
	"github.com/promptq/promptq/internal/runner"
	"github.com/promptq/promptq/internal/util"
)

var (
	ErrMissingModel     = errors.New("--model is required (set it directly or pick a --profile that provides one)")
	ErrInvalidMaxTokens = errors.New("--max-tokens must be a positive integer")
)

var queryConfig struct {
	model          string
	promptFile     string
	inputFile      string
	outputFile     string
	maxTokens      int
	endpoint       string
	profileName    string
	timeoutSeconds int
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Send a prompt to the chat-completion API",
	Long: `Send one chat-completion request assembled from local files.

The prompt file is the primary instruction. When --input is given, its
content is appended to the prompt (separated by a newline) as a single
user message. The first returned choice goes to --output, or to stdout
under an "API Response:" heading when no output file is set.

The bearer credential is read once from the HF_TOKEN environment
variable; the run fails before any file or network I/O when it is unset.

Examples:
  # Summarize a document to stdout
  promptq query --model meta-llama/Llama-3.1-8B-Instruct \
    --prompt summarize.txt --input report.txt

  # Save the response to a file, capping generation
  promptq query --model meta-llama/Llama-3.1-8B-Instruct \
    --prompt summarize.txt --input report.txt --output result.txt \
    --max-tokens 512

  # Use a named profile for model and limits
  promptq query --profile fast --prompt summarize.txt --input report.txt`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryConfig.model, "model", "", "Model identifier sent in the payload")
	queryCmd.Flags().StringVar(&queryConfig.promptFile, "prompt", "", "File containing the primary prompt text")
	queryCmd.Flags().StringVar(&queryConfig.inputFile, "input", "", "File whose content is appended to the prompt (optional)")
	queryCmd.Flags().StringVar(&queryConfig.outputFile, "output", "", "Destination file for the response; stdout if absent")
	queryCmd.Flags().IntVar(&queryConfig.maxTokens, "max-tokens", 0, "Cap on generated tokens (omitted from the payload when unset)")
	queryCmd.Flags().StringVar(&queryConfig.endpoint, "endpoint", "", "API base URL (default is the Hugging Face router)")
	queryCmd.Flags().StringVar(&queryConfig.profileName, "profile", "", "Named preset from the profiles file")
	queryCmd.Flags().IntVar(&queryConfig.timeoutSeconds, "timeout-seconds", config.DefaultTimeoutSeconds, "Request timeout in seconds")
	queryCmd.MarkFlagRequired("prompt")
}

// queryResolution is the outcome of merging explicit flag values with a
// profile's presets. An empty Endpoint means the config/env value or the
// built-in default applies.
type queryResolution struct {
	Model     string
	MaxTokens int
	Endpoint  string
}

// resolveQuery merges flag values with the chosen profile. Explicit flags
// always win; the profile only fills what was left unset.
func resolveQuery(model string, maxTokens int, endpoint string, prof *profile.Profile) (*queryResolution, error) {
	if prof != nil {
		if model == "" {
			model = prof.Model
		}
		if maxTokens == 0 {
			maxTokens = prof.MaxTokens
		}
		if endpoint == "" {
			endpoint = prof.Endpoint
		}
	}

	if model == "" {
		return nil, ErrMissingModel
	}
	if maxTokens < 0 {
		return nil, ErrInvalidMaxTokens
	}

	return &queryResolution{Model: model, MaxTokens: maxTokens, Endpoint: endpoint}, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	timeout := queryConfig.timeoutSeconds
	if !cmd.Flags().Changed("timeout-seconds") {
		if v := GetTimeoutSeconds(); v > 0 {
			timeout = v
		}
	}

	// Credential pre-flight: no file or network I/O before this.
	cfg, err := config.Load("", timeout)
	if err != nil {
		return err
	}

	var prof *profile.Profile
	if queryConfig.profileName != "" {
		res := profile.Load(profilesFile)
		if res.Absent {
			return fmt.Errorf("%w %q: no profiles file at %s", profile.ErrUnknownProfile, queryConfig.profileName, res.Path)
		}
		if res.ErrorMsg != "" {
			return fmt.Errorf("profiles file %s: %s", res.Path, res.ErrorMsg)
		}
		prof, err = profile.Resolve(res.File, queryConfig.profileName)
		if err != nil {
			return err
		}
	}

	resolved, err := resolveQuery(queryConfig.model, queryConfig.maxTokens, queryConfig.endpoint, prof)
	if err != nil {
		return err
	}

	// Endpoint precedence: flag > profile > config/env > default.
	endpoint := resolved.Endpoint
	if endpoint == "" {
		endpoint = GetEndpoint()
	}
	if endpoint != "" {
		if err := config.ValidateEndpoint(endpoint); err != nil {
			return err
		}
		cfg.Endpoint = endpoint
	}

	logger, err := config.NewLogger(IsVerbose())
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	if IsVerbose() {
		fmt.Fprintf(os.Stderr, "[promptq] Calling endpoint: %s (token %s)\n", cfg.Endpoint, util.RedactToken(cfg.Token))
	}

	client := &llm.Client{
		Endpoint: cfg.Endpoint,
		Token:    cfg.Token,
		Timeout:  cfg.Timeout,
		Logger:   logger,
	}

	r := &runner.Runner{
		Client: client,
		Logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	return r.Run(ctx, runner.Params{
		Model:      resolved.Model,
		PromptPath: queryConfig.promptFile,
		InputPath:  queryConfig.inputFile,
		OutputPath: queryConfig.outputFile,
		MaxTokens:  resolved.MaxTokens,
	})
}
