package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/hance08/teller/internal/app"
	"github.com/hance08/teller/internal/bank"
	"github.com/hance08/teller/internal/service"
	"github.com/hance08/teller/internal/ui/views"
	"github.com/hance08/teller/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type runFlags struct {
	Quiet       bool
	MetricsAddr string
	NoHistory   bool
}

type runRunner struct {
	app   *app.App
	flags *runFlags
}

// setupRunCmd makes the root command itself run the engine.
func setupRunCmd(rootCmd *cobra.Command, a *app.App) {
	flags := &runFlags{}

	rootCmd.Args = func(cmd *cobra.Command, args []string) error {
		_, err := validation.ParseRunArgs(args)
		return err
	}
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		runner := &runRunner{
			app:   a,
			flags: flags,
		}
		return runner.Run(args)
	}

	rootCmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Do not echo every transaction")
	rootCmd.Flags().StringVar(&flags.MetricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address while running")
	rootCmd.Flags().BoolVar(&flags.NoHistory, "no-history", false, "Do not record this run in the history database")
}

func (r *runRunner) Run(args []string) error {
	parsed, err := validation.ParseRunArgs(args)
	if err != nil {
		return err
	}

	svc := r.app.Service

	metricsAddr := r.flags.MetricsAddr
	if metricsAddr == "" {
		metricsAddr = svc.Config.Metrics.Addr
	}
	if metricsAddr != "" {
		srv, err := r.app.Metrics.Serve(metricsAddr)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		pterm.Info.Printf("Serving metrics on http://%s/metrics\n", metricsAddr)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	req := service.RunRequest{
		LedgerPath: parsed.LedgerPath,
		Engine:     parsed.Engine,
		Record:     !r.flags.NoHistory,
	}

	var observers []bank.Observer
	if !r.flags.Quiet {
		req.OnStart = func(snap bank.Snapshot) {
			if err := views.NewBalanceListView("Opening Balances").Render(snap); err != nil {
				pterm.Warning.Println(err)
			}
		}
		// The bank serialises observer calls, so lines come out in audit order.
		observers = append(observers, bank.ObserverFunc(func(o bank.Outcome) {
			fmt.Println(o.Message)
		}))
	}

	report, err := svc.Run.Execute(req, observers...)
	if err != nil {
		return err
	}

	if report.Truncated() {
		pterm.Warning.Printf("Ledger truncated after %d entries: %v\n", report.Loaded, report.LoadErr)
	}
	if report.RecordErr != nil {
		pterm.Warning.Printf("Run was not saved to history: %v\n", report.RecordErr)
	}

	if !r.flags.Quiet {
		views.RenderRunSummary(report)
	}

	return views.NewBalanceListView("Final Balances").Render(report.Snapshot)
}
