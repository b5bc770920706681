package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chatprobe/backend/internal/assistant"
	"github.com/chatprobe/backend/internal/chat"
	"github.com/chatprobe/backend/internal/cli"
	"github.com/chatprobe/backend/internal/infrastructure/config"
)

// ProxyFactory builds the chat proxy a command talks to.
type ProxyFactory func(ctx context.Context, cfg chat.Config) (chat.Proxy, error)

// ProberFactory builds the Assistants probe.
type ProberFactory func(cfg *config.Config, logger *slog.Logger) (Prober, error)

// Prober runs one message through a hosted assistant.
type Prober interface {
	Run(ctx context.Context, message string) (string, error)
}

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	Ask      *AskCommand
	Probe    *ProbeCommand
	Validate *ValidateCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, flags *cli.Flags, newProxy ProxyFactory, newProber ProberFactory) *Commands {
	if newProxy == nil {
		newProxy = chat.New
	}
	if newProber == nil {
		newProber = openAIProber
	}

	return &Commands{
		Run:      NewRunCommand(cfg, flags, newProxy),
		Ask:      NewAskCommand(cfg, newProxy),
		Probe:    NewProbeCommand(cfg, newProber),
		Validate: NewValidateCommand(flags),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&flags.Provider, "provider", "", "Chat provider: openai, compat, anthropic or gemini (overrides LLM_PROVIDER)")
	rootCmd.PersistentFlags().StringVarP(&flags.Model, "model", "m", "", "Model name (overrides LLM_MODEL)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every case at debug level")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		flags.Apply(cfg)
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a test suite against the chat provider",
		Long:  "Ask every question of a dataset in order, score each reply against its reference answer and print the results",
		Args:  cobra.NoArgs,
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().StringVarP(&flags.DataPath, "data", "d", "test_data.json", "Dataset file (.json, .yaml or .yml)")
	runCmd.Flags().StringVarP(&flags.ReportPath, "report", "r", "", "Write a JSON report to this path")
	rootCmd.AddCommand(runCmd)

	// Ask command
	askCmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Send one question through the chat proxy",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Ask.Execute,
	}
	rootCmd.AddCommand(askCmd)

	// Probe command
	probeCmd := &cobra.Command{
		Use:   "probe [message]",
		Short: "Run a message through the hosted assistant",
		Long:  "Create a thread for ASSISTANT_ID, post the message, wait for the run and print the assistant's reply",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Probe.Execute,
	}
	rootCmd.AddCommand(probeCmd)

	// Validate command
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a dataset file without running it",
		Args:  cobra.NoArgs,
		RunE:  c.Validate.Execute,
	}
	validateCmd.Flags().StringVarP(&flags.DataPath, "data", "d", "test_data.json", "Dataset file (.json, .yaml or .yml)")
	rootCmd.AddCommand(validateCmd)
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := cfg.SlogLevel()
	if level == slog.LevelInfo {
		// Info lines would break up the progress bar.
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func openAIProber(cfg *config.Config, logger *slog.Logger) (Prober, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, chat.ErrMissingAPIKey
	}
	if cfg.AssistantID == "" {
		return nil, errMissingAssistant
	}
	return assistant.NewOpenAIProbe(cfg.OpenAIAPIKey, "", cfg.AssistantID, logger), nil
}
