// Package cli provides the command-line interface for the stock ledger.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"stock-ledger/internal/client"
	"stock-ledger/internal/dashboard"
	"stock-ledger/pkg/config"
	"stock-ledger/pkg/logger"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ReportedError is returned once the failure has already been shown to the
// user, so the caller only has to set the exit code.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// session is what every subcommand shares once the persistent flags are
// parsed.
type session struct {
	ledger *client.Client
	logger *zap.Logger
}

func (s *session) controller(view dashboard.View) *dashboard.Controller {
	return dashboard.NewController(s.ledger, view, s.logger.Named("dashboard"))
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	s := &session{}

	var (
		apiURL     string
		configPath string
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Stock Ledger - record stock trades and review holdings",
		Long: `Stock Ledger is a terminal client for the stock ledger API.
It books buy and sell transactions and shows the transaction list, buy/sell totals and net holdings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if configPath != "" {
				if err := cfg.LoadClientFile(configPath); err != nil {
					return err
				}
			}
			if apiURL != "" {
				cfg.Client.APIURL = apiURL
			}

			level := cfg.Logger.Level
			if debug {
				level = "debug"
			}
			if err := logger.InitConsole(level); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			s.logger = logger.Named("cli")
			s.ledger = client.New(&cfg.Client, logger.Named("client"))
			s.logger.Debug("Using ledger API", zap.String("url", cfg.Client.APIURL))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: open the dashboard
			return runDashboard(cmd, s)
		},
	}

	rootCmd.AddCommand(newAddCmd(s))
	rootCmd.AddCommand(newListCmd(s))
	rootCmd.AddCommand(newSummaryCmd(s))
	rootCmd.AddCommand(newHoldingsCmd(s))
	rootCmd.AddCommand(newDashboardCmd(s))

	// Global flags
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Ledger API base URL (overrides LEDGER_API_URL)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return rootCmd
}

// newAddCmd creates the add command
func newAddCmd(s *session) *cobra.Command {
	var in client.TransactionInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a buy or sell transaction",
		Long: `Book one transaction. Fields not given as flags are asked for interactively.
Example: ledger add --symbol AAPL --type buy --quantity 10 --price 150`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := transactionForm(in)
			if err != nil {
				return err
			}
			return runAdd(cmd, s, form)
		},
	}

	cmd.Flags().StringVar(&in.StockSymbol, "symbol", "", "Stock symbol, e.g. AAPL")
	cmd.Flags().StringVar(&in.TransactionType, "type", "", "Transaction type: buy or sell")
	cmd.Flags().StringVar(&in.Quantity, "quantity", "", "Number of shares")
	cmd.Flags().StringVar(&in.Price, "price", "", "Price per share")

	return cmd
}

// transactionForm uses the flags as they are when all four are set and
// prompts otherwise.
func transactionForm(in client.TransactionInput) (dashboard.Form, error) {
	if in.StockSymbol != "" && in.TransactionType != "" && in.Quantity != "" && in.Price != "" {
		return &dashboard.StaticForm{Input: in}, nil
	}

	form := dashboard.NewPromptForm()
	if err := form.Ask(); err != nil {
		return nil, err
	}
	return form, nil
}

func runAdd(cmd *cobra.Command, s *session, form dashboard.Form) error {
	view := dashboard.NewTerminalView(cmd.OutOrStdout())

	if err := s.controller(view).Submit(cmd.Context(), form); err != nil {
		if view.Error != "" {
			view.RenderError()
			return &ReportedError{Err: err}
		}
		// Booked, but reloading the views failed.
		view.Render()
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Transaction added")
	view.Render()
	return nil
}

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, s, (*dashboard.Controller).LoadTransactions, (*dashboard.TerminalView).RenderTransactions)
		},
	}
}

func newSummaryCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show buy and sell totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, s, (*dashboard.Controller).LoadSummary, (*dashboard.TerminalView).RenderSummary)
		},
	}
}

func newHoldingsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "holdings",
		Short: "Show net holdings per symbol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, s, (*dashboard.Controller).LoadHoldings, (*dashboard.TerminalView).RenderHoldings)
		},
	}
}

func newDashboardCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the full ledger page and book transactions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, s)
		},
	}
}

func runView(
	cmd *cobra.Command,
	s *session,
	load func(*dashboard.Controller, context.Context) error,
	render func(*dashboard.TerminalView),
) error {
	view := dashboard.NewTerminalView(cmd.OutOrStdout())

	if err := load(s.controller(view), cmd.Context()); err != nil {
		reportError(view, err)
		return &ReportedError{Err: err}
	}

	render(view)
	return nil
}

func runDashboard(cmd *cobra.Command, s *session) error {
	ctx := cmd.Context()
	view := dashboard.NewTerminalView(cmd.OutOrStdout())
	ctrl := s.controller(view)

	if err := ctrl.Refresh(ctx); err != nil {
		reportError(view, err)
	}
	view.Render()

	form := dashboard.NewPromptForm()
	for {
		if err := form.Ask(); err != nil {
			return ignoreInterrupt(err)
		}

		// A rejected transaction is already on the error line.
		_ = ctrl.Submit(ctx, form)
		view.Render()

		again, err := dashboard.Confirm("Add another transaction?", true)
		if err != nil {
			return ignoreInterrupt(err)
		}
		if !again {
			return nil
		}
	}
}

// reportError writes a load failure without touching the rest of the view.
func reportError(view *dashboard.TerminalView, err error) {
	msg := view.Error
	view.SetError(client.DisplayMessage(err))
	view.RenderError()
	view.SetError(msg)
}

func ignoreInterrupt(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return nil
	}
	return err
}

// Execute runs the root command and prints errors that were not shown yet.
func Execute(stderr io.Writer) error {
	err := NewRootCmd().Execute()
	if err != nil {
		var reported *ReportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(stderr, "Error:", err)
		}
	}
	return err
}
