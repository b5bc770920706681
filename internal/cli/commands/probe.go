package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatprobe/backend/internal/infrastructure/config"
)

var errMissingAssistant = errors.New("ASSISTANT_ID is not set")

// ProbeCommand runs the Assistants probe once.
type ProbeCommand struct {
	config    *config.Config
	newProber ProberFactory
}

func NewProbeCommand(cfg *config.Config, newProber ProberFactory) *ProbeCommand {
	return &ProbeCommand{config: cfg, newProber: newProber}
}

func (pc *ProbeCommand) Execute(cmd *cobra.Command, args []string) error {
	probe, err := pc.newProber(pc.config, newLogger(pc.config, cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("assistant probe unavailable: %w", err)
	}

	var message string
	if len(args) > 0 {
		message = args[0]
	}

	reply, err := probe.Run(cmd.Context(), message)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
