package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chatprobe/backend/internal/cli"
	"github.com/chatprobe/backend/internal/dataset"
)

// ValidateCommand loads a dataset and reports its size.
type ValidateCommand struct {
	flags *cli.Flags
}

func NewValidateCommand(flags *cli.Flags) *ValidateCommand {
	return &ValidateCommand{flags: flags}
}

func (vc *ValidateCommand) Execute(cmd *cobra.Command, args []string) error {
	set, err := dataset.LoadFile(vc.flags.DataPath)
	if err != nil {
		return err
	}

	withKeywords := 0
	for _, tc := range set.Cases {
		if len(tc.Keywords) > 0 {
			withKeywords++
		}
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s: %d case(s), %d with keywords\n",
		vc.flags.DataPath, len(set.Cases), withKeywords)
	return nil
}
