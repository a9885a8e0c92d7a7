package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var (
	// Global flags
	cfgFile      string
	profilesFile string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "promptq",
	Short: "Send a file-based prompt to a chat-completion API",
	Long: `promptq assembles a prompt from local files, sends one chat-completion
request to an OpenAI-compatible endpoint, and routes the first returned
choice to a file or to stdout.

One request per run: no retries, no streaming, no conversation state.

Features:
  - query: send a prompt (optionally combined with an input file)
  - models: list models exposed by the endpoint
  - profiles: named presets for model/endpoint/max-tokens`,
	Version: version,
	// Disable default completion command
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Historical flag spellings used underscores; accept both.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.promptq.yaml)")
	rootCmd.PersistentFlags().StringVar(&profilesFile, "profiles-file", "", "profiles file (default is $HOME/.promptq/profiles.yaml or $PROMPTQ_PROFILES)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".promptq" (without extension)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".promptq")
	}

	viper.SetEnvPrefix("PROMPTQ")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// GetEndpoint returns the endpoint from viper (config file or PROMPTQ_ENDPOINT)
func GetEndpoint() string {
	return viper.GetString("endpoint")
}

// GetTimeoutSeconds returns the request timeout from viper
func GetTimeoutSeconds() int {
	return viper.GetInt("timeout_seconds")
}

// IsVerbose returns the verbose flag value
func IsVerbose() bool {
	return verbose || viper.GetBool("verbose")
}
