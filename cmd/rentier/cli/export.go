// Package cli implements the report export subcommand: render one
// report for a year and write it as CSV, to a file or to stdout via the
// "-" path convention.
package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rentier-erp/rentier-erp/internal/app"
	"github.com/rentier-erp/rentier-erp/internal/platform/db"
	"github.com/rentier-erp/rentier-erp/internal/reports"
	"github.com/rentier-erp/rentier-erp/internal/taxes"
)

// Run executes the export subcommand and returns a process exit code.
func Run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	kind := fs.String("kind", string(reports.ReceiptsDetailed),
		"report kind (receipts_detailed, receipts_by_owner, receipts_minimal, taxes_detailed, taxes_by_assignment, taxes_minimal)")
	year := fs.Int("year", time.Now().UTC().Year(), "report year")
	ownerID := fs.Int64("owner", 0, "restrict the report to one owner (0 = all)")
	out := fs.String("out", "-", `output path; "-" prints to stdout`)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		return 1
	}
	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect postgres:", err)
		return 1
	}
	defer pool.Close()

	taxesService := taxes.NewService(taxes.NewRepository(pool), taxes.DefaultConfig())
	// One-shot render, no cache involved.
	reportsService := reports.NewService(logger, reports.NewRepository(pool), taxesService, nil, 0)

	report, err := reportsService.Get(ctx, reports.Kind(*kind), *year, *ownerID)
	if err != nil {
		logger.Error("render report", slog.String("kind", *kind), slog.Any("error", err))
		return 1
	}

	text, err := reports.WriteCSV(*out, report)
	if err != nil {
		logger.Error("write report", slog.String("out", *out), slog.Any("error", err))
		return 1
	}
	if *out == "-" {
		fmt.Print(text)
		return 0
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stderr, "exported %d rows to %s\n", len(report.Rows), *out)
	return 0
}
