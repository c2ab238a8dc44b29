package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "cwrules",
		Short: "Crossword rules engine CLI",
		Long: `cwrules scores and encodes crossword plays.

The tokenize, decode, score, fen and leave commands run locally. The
health, alphabet, game and watch commands talk to a cwrules server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			client = NewClient(cfg.ServerURL)
			if cfg.Verbose {
				client.SetTrace(cmd.ErrOrStderr())
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CWRULES_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Local rules commands
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newFENCmd())
	rootCmd.AddCommand(newLeaveCmd())

	// Server commands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newAlphabetCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	// A missing .env file is fine
	_ = godotenv.Load()

	if err := NewRootCmd().Execute(); err != nil {
		NewOutput(cfg.Output, os.Stderr).PrintError(err)
		os.Exit(1)
	}
}
