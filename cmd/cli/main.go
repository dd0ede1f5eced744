package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/config"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/repository/storeapi"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/service"
	"github.com/rs/zerolog"
)

// app bundles what every subcommand needs
type app struct {
	log       zerolog.Logger
	finance   *service.FinanceService
	dashboard *service.DashboardService
	timeout   time.Duration
	out       io.Writer
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if !cfg.IsProduction() {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.WarnLevel)
	}

	a := newApp(cfg, log)

	var runErr error
	switch command {
	case "dashboard":
		runErr = a.runDashboard(os.Args[2:])
	case "transactions":
		runErr = a.runTransactions(os.Args[2:])
	case "goals":
		runErr = a.runGoals(os.Args[2:])
	case "add-transaction":
		runErr = a.runAddTransaction(os.Args[2:])
	case "add-goal":
		runErr = a.runAddGoal(os.Args[2:])
	case "categories":
		runErr = a.runCategories(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Str("command", command).Msg("Command failed")
	}
}

func printUsage() {
	fmt.Println("Fortuna Tracker CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  dashboard         Show totals, monthly flow, expense breakdown and goals")
	fmt.Println("  transactions      List transactions, newest first")
	fmt.Println("  goals             List savings goals with progress")
	fmt.Println("  add-transaction   Record an income or expense")
	fmt.Println("  add-goal          Create a savings goal")
	fmt.Println("  categories        List categories")
	fmt.Println("  help              Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
	fmt.Println("\nThe store URL is read from STORE_BASE_URL.")
}

func newApp(cfg *config.Config, log zerolog.Logger) *app {
	store := storeapi.NewClient(storeapi.Config{
		BaseURL: cfg.Store.BaseURL,
		Timeout: cfg.Store.Timeout,
	}, log)

	registry := domain.DefaultCategoryRegistry()
	finance := service.NewFinanceService(store, registry, nil, log, service.FinanceServiceConfig{
		StrictSplitKinds: cfg.StrictSplitKinds,
	})

	return &app{
		log:       log,
		finance:   finance,
		dashboard: service.NewDashboardService(finance, registry, nil),
		timeout:   cfg.Store.Timeout,
		out:       os.Stdout,
	}
}

// load fetches the data every command works on
func (a *app) load() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.finance.Load(ctx); err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	return nil
}

func (a *app) runDashboard(args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	fs.Parse(args)

	if err := a.load(); err != nil {
		return err
	}

	d := a.dashboard.GetDashboard()

	fmt.Fprintf(a.out, "Income:   %s\n", d.Totals.Income.StringFixed(2))
	fmt.Fprintf(a.out, "Expenses: %s\n", d.Totals.Expenses.StringFixed(2))
	fmt.Fprintf(a.out, "Balance:  %s\n", d.Totals.Balance.StringFixed(2))

	if d.InvestmentReminder {
		fmt.Fprintln(a.out, "\nReminder: no investment recorded this month.")
	}

	fmt.Fprintln(a.out, "\nIncome vs expenses")
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES")
	for _, m := range d.Monthly {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Label, m.Income.StringFixed(2), m.Expenses.StringFixed(2))
	}
	w.Flush()

	fmt.Fprintln(a.out, "\nExpenses by category")
	w = tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tAMOUNT")
	for _, c := range d.ExpenseBreakdown {
		fmt.Fprintf(w, "%s\t%s\n", c.Name, c.Amount.StringFixed(2))
	}
	w.Flush()

	if sum := service.SumBreakdown(d.ExpenseBreakdown); !sum.Equal(d.Totals.Expenses) {
		a.log.Warn().
			Str("breakdown", sum.StringFixed(2)).
			Str("expenses", d.Totals.Expenses.StringFixed(2)).
			Msg("Expense breakdown does not add up to total expenses")
	}

	if len(d.Goals) > 0 {
		fmt.Fprintln(a.out, "\nGoals")
		a.printGoals(d.Goals)
	}
	return nil
}

func (a *app) runTransactions(args []string) error {
	fs := flag.NewFlagSet("transactions", flag.ExitOnError)
	txType := fs.String("type", "", "Filter by type (income or expense)")
	category := fs.String("category", "", "Filter by category id")
	from := fs.String("from", "", "Start date, inclusive (YYYY-MM-DD)")
	to := fs.String("to", "", "End date, inclusive (YYYY-MM-DD)")
	fs.Parse(args)

	var filters domain.TransactionFilters
	if *txType != "" {
		t, err := domain.ParseTransactionType(*txType)
		if err != nil {
			return fmt.Errorf("-type: %w", err)
		}
		filters.Type = &t
	}
	filters.CategoryID = *category
	if *from != "" {
		d, err := domain.ParseDate(*from)
		if err != nil {
			return fmt.Errorf("-from: %w", err)
		}
		filters.StartDate = &d
	}
	if *to != "" {
		d, err := domain.ParseDate(*to)
		if err != nil {
			return fmt.Errorf("-to: %w", err)
		}
		filters.EndDate = &d
	}

	if err := a.load(); err != nil {
		return err
	}

	registry := a.finance.Registry()
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tTOTAL\tDESCRIPTION\tSPLITS")
	for _, t := range a.dashboard.GetTransactions(filters) {
		splits := ""
		for i, s := range t.Splits {
			if i > 0 {
				splits += ", "
			}
			splits += fmt.Sprintf("%s %s", registry.Resolve(s.CategoryID), s.Amount.StringFixed(2))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Date, t.Type, t.TotalAmount.StringFixed(2), t.Description, splits)
	}
	return w.Flush()
}

func (a *app) runGoals(args []string) error {
	fs := flag.NewFlagSet("goals", flag.ExitOnError)
	fs.Parse(args)

	if err := a.load(); err != nil {
		return err
	}

	a.printGoals(a.dashboard.GetGoals())
	return nil
}

func (a *app) printGoals(goals []domain.GoalProgress) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCURRENT\tTARGET\tPROGRESS\tTARGET DATE")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%%\t%s\n",
			g.Goal.Name,
			g.Goal.CurrentAmount.StringFixed(2),
			g.Goal.TargetAmount.StringFixed(2),
			g.Percent.StringFixed(0),
			g.Goal.TargetDate,
		)
	}
	w.Flush()
}

func (a *app) runAddTransaction(args []string) error {
	fs := flag.NewFlagSet("add-transaction", flag.ExitOnError)
	txType := fs.String("type", string(domain.TransactionTypeExpense), "income or expense")
	description := fs.String("description", "", "Description")
	date := fs.String("date", "", "Date (YYYY-MM-DD), defaults to today")
	total := fs.String("total", "", "Total amount")
	var splits splitFlags
	fs.Var(&splits, "split", "Split as category=amount, repeatable. Defaults to the full total under the type's first category")
	fs.Parse(args)

	form, err := transactionForm(a.finance.Registry(), a.finance.Today(), *txType, *description, *date, *total, splits)
	if err != nil {
		return err
	}

	draft, err := a.finance.ValidateTransaction(form.Date, form.Description, form.TotalAmount, form.Type, form.Splits())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*a.timeout)
	defer cancel()

	created, err := a.finance.AddTransaction(ctx, draft)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %s %s on %s (id %s)\n", created.Type, created.TotalAmount.StringFixed(2), created.Date, created.ID)
	return nil
}

// transactionForm fills the add-transaction form from flag values. Missing amounts are
// left at zero so the transaction model reports them.
func transactionForm(registry *domain.CategoryRegistry, today domain.Date, txType, description, date, total string, splits []domain.Split) (*service.TransactionForm, error) {
	form := service.NewTransactionForm(registry, today)

	t, err := domain.ParseTransactionType(txType)
	if err != nil {
		return nil, fmt.Errorf("-type: %w", err)
	}
	form.SetType(t)
	form.Description = description

	if date != "" {
		d, err := domain.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("-date: %w", err)
		}
		form.Date = d
	}

	amount, err := parseAmount(total)
	if err != nil {
		return nil, fmt.Errorf("-total: %w", err)
	}
	form.SetTotalAmount(amount)

	if len(splits) > 0 {
		form.SetSplits(splits)
	}
	return form, nil
}

func (a *app) runAddGoal(args []string) error {
	fs := flag.NewFlagSet("add-goal", flag.ExitOnError)
	name := fs.String("name", "", "Goal name")
	target := fs.String("target", "", "Target amount")
	date := fs.String("date", "", "Target date (YYYY-MM-DD), today or later")
	fs.Parse(args)

	amount, err := parseAmount(*target)
	if err != nil {
		return fmt.Errorf("-target: %w", err)
	}

	var targetDate domain.Date
	if *date != "" {
		targetDate, err = domain.ParseDate(*date)
		if err != nil {
			return fmt.Errorf("-date: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*a.timeout)
	defer cancel()

	created, err := a.finance.CreateGoal(ctx, *name, amount, targetDate)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added goal %q targeting %s by %s (id %s)\n", created.Name, created.TargetAmount.StringFixed(2), created.TargetDate, created.ID)
	return nil
}

func (a *app) runCategories(args []string) error {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	kind := fs.String("kind", "", "Only list income or expense categories")
	fs.Parse(args)

	registry := a.finance.Registry()
	categories := registry.All()
	if *kind != "" {
		k, err := domain.ParseTransactionType(*kind)
		if err != nil {
			return fmt.Errorf("-kind: %w", err)
		}
		categories = registry.ListByKind(k)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Kind)
	}
	return w.Flush()
}
