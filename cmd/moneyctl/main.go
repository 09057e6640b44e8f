// Command moneyctl is a command-line client for the moneykeeper server.
//
// The server address is taken from the -a flag, the SERVER_ADDRESS
// environment variable, or the built-in default, in that order. Commands
// that require authentication read the bearer token from the
// MONEYKEEPER_TOKEN environment variable; register and login print a token
// suitable for exporting.
//
// Usage:
//
//	moneyctl [-a host:port] <command> [command flags]
//
// Commands:
//
//	register, login, add, list, get, update, delete, stats, by-category,
//	monthly, export, dashboard, expense-trend, income-vs-expense, version
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"moneykeeper/internal/adapter"
	"moneykeeper/internal/config"
	"moneykeeper/internal/logger"
	"moneykeeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const tokenEnvVar = "MONEYKEEPER_TOKEN"

func main() {
	log := logger.NewLogger("moneyctl")

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}
	if token := os.Getenv(tokenEnvVar); token != "" {
		serverAdapter.SetToken(token)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err = runCommand(context.Background(), serverAdapter, args[0], args[1:]); err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("command failed")
	}
}

func runCommand(ctx context.Context, a adapter.ServerAdapter, command string, args []string) error {
	switch command {
	case "register":
		return runRegister(ctx, a, args)
	case "login":
		return runLogin(ctx, a, args)
	case "add":
		return runAdd(ctx, a, args)
	case "list":
		return runList(ctx, a, args)
	case "get":
		return runGet(ctx, a, args)
	case "update":
		return runUpdate(ctx, a, args)
	case "delete":
		return runDelete(ctx, a, args)
	case "stats":
		return runStats(ctx, a, args)
	case "by-category":
		return runByCategory(ctx, a, args)
	case "monthly":
		return runMonthly(ctx, a, args)
	case "export":
		return runExport(ctx, a, args)
	case "dashboard":
		return runDashboard(ctx, a)
	case "expense-trend":
		return runExpenseTrend(ctx, a, args)
	case "income-vs-expense":
		return runIncomeVsExpense(ctx, a, args)
	case "version":
		return runVersion(ctx, a)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runRegister(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username (at least 3 characters)")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (at least 6 characters)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.Register(ctx, models.User{Username: *username, Email: *email, Password: *password})
	if err != nil {
		return err
	}

	fmt.Printf("registered user %s (id %d)\n", user.Username, user.UserID)
	fmt.Printf("export %s=%s\n", tokenEnvVar, a.Token())
	return nil
}

func runLogin(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := a.Login(ctx, models.User{Username: *username, Password: *password})
	if err != nil {
		return err
	}

	fmt.Printf("logged in as user %d\n", token.UserID)
	fmt.Printf("export %s=%s\n", tokenEnvVar, token.SignedString)
	return nil
}

func runAdd(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	kind := kindFlag(fs)
	title := fs.String("title", "", "record title")
	amount := fs.Float64("amount", 0, "record amount")
	category := fs.String("category", "", "record category")
	date := fs.String("date", "", "record date (YYYY-MM-DD)")
	description := fs.String("description", "", "optional description")
	method := fs.String("method", "", "optional payment method (expenses only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := parseKind(*kind)
	if err != nil {
		return err
	}

	record, err := a.CreateRecord(ctx, k, models.Record{
		Title:         *title,
		Amount:        *amount,
		Category:      *category,
		Date:          *date,
		Description:   *description,
		PaymentMethod: *method,
	})
	if err != nil {
		return err
	}

	return printJSON(record)
}

func runList(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	kind := kindFlag(fs)
	category := fs.String("category", "", "filter by category")
	month := fs.Int("month", 0, "filter by month (1-12)")
	year := fs.Int("year", 0, "filter by year")
	startDate := fs.String("start", "", "inclusive start date (YYYY-MM-DD)")
	endDate := fs.String("end", "", "inclusive end date (YYYY-MM-DD)")
	search := fs.String("search", "", "substring match on title or category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := parseKind(*kind)
	if err != nil {
		return err
	}

	records, err := a.ListRecords(ctx, k, models.RecordFilter{
		Category:  *category,
		Month:     *month,
		Year:      *year,
		StartDate: *startDate,
		EndDate:   *endDate,
		Search:    *search,
	})
	if err != nil {
		return err
	}

	return printJSON(records)
}

func runGet(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	kind := kindFlag(fs)
	id := fs.Int64("id", 0, "record id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := parseKind(*kind)
	if err != nil {
		return err
	}

	record, err := a.GetRecord(ctx, k, *id)
	if err != nil {
		return err
	}

	return printJSON(record)
}

func runUpdate(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	kind := kindFlag(fs)
	id := fs.Int64("id", 0, "record id")
	title := fs.String("title", "", "new title")
	amount := fs.Float64("amount", 0, "new amount")
	category := fs.String("category", "", "new category")
	date := fs.String("date", "", "new date (YYYY-MM-DD)")
	description := fs.String("description", "", "new description")
	method := fs.String("method", "", "new payment method")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := parseKind(*kind)
	if err != nil {
		return err
	}

	// Only flags the user actually passed become part of the update.
	var update models.RecordUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			update.Title = title
		case "amount":
			update.Amount = amount
		case "category":
			update.Category = category
		case "date":
			update.Date = date
		case "description":
			update.Description = description
		case "method":
			update.PaymentMethod = method
		}
	})

	record, err := a.UpdateRecord(ctx, k, *id, update)
	if err != nil {
		return err
	}

	return printJSON(record)
}

func runDelete(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	kind := kindFlag(fs)
	id := fs.Int64("id", 0, "record id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := parseKind(*kind)
	if err != nil {
		return err
	}

	if err = a.DeleteRecord(ctx, k, *id); err != nil {
		return err
	}

	fmt.Printf("deleted %s record %d\n", k, *id)
	return nil
}

func runStats(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	kind := kindFlag(fs)
	month := fs.Int("month", 0, "constrain to month (1-12)")
	year := fs.Int("year", 0, "constrain to year")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := parseKind(*kind)
	if err != nil {
		return err
	}

	total, err := a.RecordStats(ctx, k, *month, *year)
	if err != nil {
		return err
	}

	fmt.Printf("%.2f\n", total)
	return nil
}

func runByCategory(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("by-category", flag.ExitOnError)
	kind := kindFlag(fs)
	month := fs.Int("month", 0, "constrain to month (1-12)")
	year := fs.Int("year", 0, "constrain to year")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := parseKind(*kind)
	if err != nil {
		return err
	}

	totals, err := a.RecordsByCategory(ctx, k, *month, *year)
	if err != nil {
		return err
	}

	return printJSON(totals)
}

func runMonthly(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("monthly", flag.ExitOnError)
	kind := kindFlag(fs)
	year := fs.Int("year", 0, "year (defaults to current)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := parseKind(*kind)
	if err != nil {
		return err
	}

	totals, err := a.RecordsMonthly(ctx, k, *year)
	if err != nil {
		return err
	}

	return printJSON(totals)
}

func runExport(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	kind := kindFlag(fs)
	output := fs.String("o", "", "output file (defaults to stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := parseKind(*kind)
	if err != nil {
		return err
	}

	doc, err := a.ExportCSV(ctx, k)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err = os.Stdout.Write(doc)
		return err
	}

	return os.WriteFile(*output, doc, 0o644)
}

func runDashboard(ctx context.Context, a adapter.ServerAdapter) error {
	stats, err := a.DashboardStats(ctx)
	if err != nil {
		return err
	}

	return printJSON(stats)
}

func runExpenseTrend(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("expense-trend", flag.ExitOnError)
	year := fs.Int("year", 0, "year (defaults to current)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	trend, err := a.ExpenseTrend(ctx, *year)
	if err != nil {
		return err
	}

	return printJSON(trend)
}

func runIncomeVsExpense(ctx context.Context, a adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("income-vs-expense", flag.ExitOnError)
	year := fs.Int("year", 0, "year (defaults to current)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	comparison, err := a.IncomeVsExpense(ctx, *year)
	if err != nil {
		return err
	}

	return printJSON(comparison)
}

func runVersion(ctx context.Context, a adapter.ServerAdapter) error {
	printBuildInfo()

	serverVersion, err := a.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Server version: %s\n", serverVersion)
	return nil
}

func kindFlag(fs *flag.FlagSet) *string {
	return fs.String("kind", "expense", "record kind: expense or income")
}

func parseKind(kind string) (adapter.RecordKind, error) {
	switch kind {
	case "expense", "expenses":
		return adapter.KindExpense, nil
	case "income":
		return adapter.KindIncome, nil
	default:
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: moneyctl [-a host:port] <command> [command flags]")
	fmt.Fprintln(os.Stderr, "commands: register, login, add, list, get, update, delete,")
	fmt.Fprintln(os.Stderr, "          stats, by-category, monthly, export, dashboard,")
	fmt.Fprintln(os.Stderr, "          expense-trend, income-vs-expense, version")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
