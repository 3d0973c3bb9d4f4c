package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/orgchart/internal/log"
	"github.com/zjrosen/orgchart/internal/shell"
)

var shellEchoLog bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run org chart commands read from stdin",
	Long: `Read org chart commands from stdin, one per line, until EOF or "quit".

Commands:
  add <id> <name> [manager-id]   quote names that contain spaces
  move <id> <manager-id>
  remove <id>
  count <id>
  print
  show <id>
  roots
  metrics
  help

A failing command prints "error: ..." and the shell keeps going. Lines starting
with # are ignored, so scripts can be piped in:

  orgchart shell < team.org`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().BoolVar(&shellEchoLog, "echo-log", false, "also print log lines to stderr")
}

func runShell(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newServices(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	if shellEchoLog {
		if listener := log.NewListener(ctx); listener != nil {
			stderr := cmd.ErrOrStderr()
			go listener.Forward(func(e log.LogEvent) {
				_, _ = fmt.Fprint(stderr, e.Payload)
			})
		}
	}

	sh := shell.New(rt.service, cmd.InOrStdin(), cmd.OutOrStdout(),
		shell.WithPrompt(cfg.Shell.Prompt),
		shell.WithColor(cfg.Shell.Color),
		shell.WithTracer(rt.provider.Tracer()),
	)
	return sh.Run(ctx)
}
