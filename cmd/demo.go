package cmd

import (
	"context"

	"github.com/spf13/cobra"

	apporg "github.com/zjrosen/orgchart/internal/application/orgchart"
	domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"
	"github.com/zjrosen/orgchart/internal/presentation"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted session and print the chart after each step",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	rt, err := newServices(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	out := presentation.NewFormatter(cmd.OutOrStdout(), presentation.WithColor(cfg.Shell.Color))
	return playDemo(cmd.Context(), rt.service, out)
}

// playDemo builds a small chart, reshuffles it and prints it between steps.
func playDemo(ctx context.Context, svc *apporg.Service, out *presentation.Formatter) error {
	steps := []func() error{
		func() error {
			if err := svc.Add(ctx, 2, "Kevin"); err != nil {
				return err
			}
			return svc.Add(ctx, 1, "Bob")
		},
		func() error {
			return svc.AddUnder(ctx, 3, "Tim", 1)
		},
		func() error {
			return svc.Move(ctx, 3, 2)
		},
		func() error {
			if err := svc.Move(ctx, 2, 1); err != nil {
				return err
			}
			if err := svc.AddUnder(ctx, 4, "Ralph", 2); err != nil {
				return err
			}
			return nil
		},
		func() error {
			return svc.Remove(ctx, 2)
		},
	}
	// Steps after which Bob's report count is shown.
	countAfter := map[int]bool{3: true, 4: true}

	for i, step := range steps {
		if i > 0 {
			if err := out.FormatSeparator(); err != nil {
				return err
			}
		}
		if err := step(); err != nil {
			return err
		}
		if err := svc.Print(ctx, out.Writer()); err != nil {
			return err
		}
		if countAfter[i] {
			if err := printCount(ctx, svc, out, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

func printCount(ctx context.Context, svc *apporg.Service, out *presentation.Formatter, id domainorg.ID) error {
	count, err := svc.CountReports(ctx, id)
	if err != nil {
		return err
	}
	e, err := svc.Get(id)
	if err != nil {
		return err
	}
	return out.FormatCount(e, count)
}
