package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatprobe/backend/internal/chat"
	"github.com/chatprobe/backend/internal/infrastructure/config"
)

// AskCommand sends a single-turn question.
type AskCommand struct {
	config   *config.Config
	newProxy ProxyFactory
}

func NewAskCommand(cfg *config.Config, newProxy ProxyFactory) *AskCommand {
	return &AskCommand{config: cfg, newProxy: newProxy}
}

func (ac *AskCommand) Execute(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question is empty")
	}
	if err := ac.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	proxy, err := ac.newProxy(cmd.Context(), ac.config.Chat())
	if err != nil {
		return fmt.Errorf("create chat proxy: %w", err)
	}

	reply, err := proxy.Ask(cmd.Context(), []chat.Message{chat.UserMessage(question)})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
