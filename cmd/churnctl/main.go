package main

import (
	"fmt"
	"os"
	"time"

	"github.com/liamcoop/churn/internal/config"
	"github.com/liamcoop/churn/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	modelURI   string
	verbose    bool
	timeout    time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "churnctl",
	Short: "Telco churn predictions from the terminal",
	Long: `churnctl runs the churn model locally, with the same validation as the HTTP service.

Run "churnctl form" for the interactive form, "churnctl predict" to score a
record from a YAML or JSON file, and "churnctl catalog" to list the input fields.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.SetLevel(logger.LevelDebug)
		} else {
			// keep the terminal clean for the form and piped output
			logger.SetLevel(logger.LevelError)
		}
		return nil
	},
}

// formCmd opens the interactive form
var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the interactive churn form",
	Long: `Opens a terminal form with the Profile, Services and Billing sections.
Pre-filled values describe a high-risk customer. Press enter on RUN ANALYSIS
(or ctrl+r anywhere) to score the current values.`,
	Args: cobra.NoArgs,
	RunE: runForm,
}

// predictCmd scores one record
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score a customer record from a YAML or JSON file",
	Long: `Reads one customer record, validates it and prints the prediction as JSON.
Use --file - to read from stdin. Without --file the documented example is scored.

Example:
  churnctl predict --file customer.yaml`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

// catalogCmd lists the input fields
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the model's input fields",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $CHURN_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&modelURI, "model", "", "model path or sidecar URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Prediction timeout")

	predictCmd.Flags().StringP("file", "f", "", "record file, or - for stdin")
	catalogCmd.Flags().Bool("json", false, "print the catalog as JSON")

	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(catalogCmd)
}

// loadConfig applies --model on top of the configured settings
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if modelURI != "" {
		cfg.ModelURI = modelURI
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
