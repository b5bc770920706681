package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chatprobe/backend/internal/cli"
	"github.com/chatprobe/backend/internal/dataset"
	"github.com/chatprobe/backend/internal/infrastructure/config"
	"github.com/chatprobe/backend/internal/report"
	"github.com/chatprobe/backend/internal/runner"
	"github.com/chatprobe/backend/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config   *config.Config
	flags    *cli.Flags
	newProxy ProxyFactory
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, flags *cli.Flags, newProxy ProxyFactory) *RunCommand {
	return &RunCommand{
		config:   cfg,
		flags:    flags,
		newProxy: newProxy,
	}
}

// Execute runs the command. Low scores and failed cases are results, not
// errors, so only setup problems make it return one.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	set, err := dataset.LoadFile(rc.flags.DataPath)
	if err != nil {
		return err
	}

	if err := rc.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	proxy, err := rc.newProxy(ctx, rc.config.Chat())
	if err != nil {
		return fmt.Errorf("create chat proxy: %w", err)
	}

	logger := newLogger(rc.config, cmd.ErrOrStderr())
	r := runner.New(proxy, logger)

	color.New(color.FgCyan).Fprintf(out, "Running %q: %d case(s) against %s (%s)\n",
		set.Name, len(set.Cases), proxy.Name(), rc.config.Model())

	bar := ui.NewProgressBar(len(set.Cases), cmd.ErrOrStderr())
	started := time.Now()
	outcomes := r.Run(ctx, set.Cases, bar.Observe)
	duration := time.Since(started)
	bar.Finish()

	rep := report.New(report.Meta{
		Suite:    set.Name,
		Provider: proxy.Name(),
		Model:    rc.config.Model(),
		State:    r.Snapshot().State.String(),
	}, started, duration, outcomes)

	formatter := ui.NewFormatter(out)
	formatter.PrintResults(outcomes)
	formatter.PrintSummary(rep)

	if rc.flags.ReportPath != "" {
		if err := report.WriteJSON(rc.flags.ReportPath, rep); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Fprintf(out, "Report written to %s\n", rc.flags.ReportPath)
	}
	return nil
}
