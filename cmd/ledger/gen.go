package ledger

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/hance08/teller/internal/app"
	ledgerfile "github.com/hance08/teller/internal/ledger"
	"github.com/hance08/teller/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type genFlags struct {
	Count       int
	Accounts    int
	Seed        int64
	Force       bool
	Interactive bool
}

type genRunner struct {
	app   *app.App
	flags *genFlags
	cmd   *cobra.Command

	// confirm asks before overwriting an existing file.
	confirm func(message string) (bool, error)
}

func NewGenCmd(a *app.App) *cobra.Command {
	flags := &genFlags{}

	cmd := &cobra.Command{
		Use:   "gen <file>",
		Short: "Write a random ledger",
		Long: `Write a random ledger to <file>.

Amounts are between 1 and 1000. Defaults for --count, --accounts and --seed
come from the ledger and bank sections of the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &genRunner{
				app:     a,
				flags:   flags,
				cmd:     cmd,
				confirm: confirmOverwrite,
			}
			return runner.Run(args[0])
		},
	}

	cmd.Flags().IntVarP(&flags.Count, "count", "n", 0, "Number of entries (default from config)")
	cmd.Flags().IntVarP(&flags.Accounts, "accounts", "a", 0, "Account ids are drawn from [0, accounts) (default from config)")
	cmd.Flags().Int64VarP(&flags.Seed, "seed", "s", 0, "Random seed (default from config)")
	cmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "Overwrite an existing file without asking")
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Ask for count and accounts")

	return cmd
}

func confirmOverwrite(message string) (bool, error) {
	return prompts.PromptConfirm(message, false)
}

func (r *genRunner) Run(path string) error {
	opts := r.options()

	if r.flags.Interactive {
		var err error
		if opts, err = prompts.PromptLedgerGen(opts); err != nil {
			return err
		}
	}

	if opts.Count < 0 {
		return fmt.Errorf("count can't be negative, got %d", opts.Count)
	}
	if opts.Accounts < 1 {
		return fmt.Errorf("accounts must be at least 1, got %d", opts.Accounts)
	}

	if _, err := os.Stat(path); err == nil && !r.flags.Force {
		ok, err := r.confirm(fmt.Sprintf("%s already exists. Overwrite?", path))
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Generation cancelled")
			return nil
		}
	}

	entries := ledgerfile.Generate(rand.New(rand.NewSource(opts.Seed)), opts.Count, opts.Accounts)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}
	defer f.Close()

	if err := ledgerfile.Write(f, entries); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}

	counts := ledgerfile.CountByMode(entries)
	pterm.Success.Printf("Wrote %d entries to %s (deposit %d, withdraw %d, transfer %d, seed %d)\n",
		len(entries), path, counts[ledgerfile.Deposit], counts[ledgerfile.Withdraw], counts[ledgerfile.Transfer], opts.Seed)
	return f.Close()
}

// options merges explicitly set flags over the configured defaults.
func (r *genRunner) options() prompts.GenOptions {
	cfg := r.app.Service.Config
	opts := prompts.GenOptions{
		Count:    cfg.Ledger.Count,
		Accounts: cfg.Bank.Accounts,
		Seed:     cfg.Ledger.Seed,
	}

	if r.cmd.Flags().Changed("count") {
		opts.Count = r.flags.Count
	}
	if r.cmd.Flags().Changed("accounts") {
		opts.Accounts = r.flags.Accounts
	}
	if r.cmd.Flags().Changed("seed") {
		opts.Seed = r.flags.Seed
	}
	if opts.Seed == 0 {
		opts.Seed = ledgerfile.DefaultSeed
	}
	return opts
}
