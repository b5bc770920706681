package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chatprobe/backend/internal/cli"
	"github.com/chatprobe/backend/internal/cli/commands"
	"github.com/chatprobe/backend/internal/infrastructure/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "chatprobe",
		Short:         "Chatbot answer-quality regression runner",
		Long:          `Ask a chatbot a fixed set of questions and score every reply against a reference answer by word overlap and keyword coverage.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Environment and .env first, flags override later
	cfg := config.Load()

	var flags cli.Flags
	cmds := commands.NewCommands(cfg, &flags, nil, nil)
	cmds.Register(rootCmd, &flags, cfg)

	// Ctrl-C cancels a run before its next case
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
