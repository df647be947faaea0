package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ruvan/cardledger/internal/category"
	"github.com/ruvan/cardledger/internal/report"
)

func summaryCmd() *cobra.Command {
	var (
		statementID string
		month       int
		year        int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show spending totals by category",
		Long: `Summarize spending by category. Payments toward the card balance are
excluded so the totals reflect actual spending. With --statement the
summary covers one statement; otherwise it covers every statement
matching the --month and --year filters.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			if statementID != "" {
				st, getErr := store.GetStatement(ctx, statementID)
				if getErr != nil {
					return fmt.Errorf("failed to load statement: %w", getErr)
				}
				printSummary(report.Summarize(*st))
				return nil
			}

			statements, err := store.ListStatements(ctx)
			if err != nil {
				return fmt.Errorf("failed to list statements: %w", err)
			}

			summaries := report.Compare(report.FilterByPeriod(statements, month, year))
			if len(summaries) == 0 {
				fmt.Println("No statements match.")
				return nil
			}
			for _, sum := range summaries {
				printSummary(sum)
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&statementID, "statement", "", "summarize one statement by ID")
	cmd.Flags().IntVar(&month, "month", 0, "only statements for this month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "only statements for this year")

	return cmd
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <statement-id>...",
		Short: "Compare spending across statements",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			for _, id := range args {
				st, getErr := store.GetStatement(ctx, id)
				if getErr != nil {
					return fmt.Errorf("failed to load statement %s: %w", id, getErr)
				}
				printSummary(report.Summarize(*st))
				fmt.Println()
			}
			return nil
		},
	}
}

func printSummary(sum report.Summary) {
	fmt.Printf("Statement %s (%04d-%02d)\n", sum.ID, sum.Year, sum.Month)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	for _, name := range summaryOrder(sum) {
		fmt.Fprintf(w, "%s\t%s\n", name, sum.Totals[name].StringFixed(2))
	}
	fmt.Fprintf(w, "Total\t%s\n", sum.Total.StringFixed(2))
}

// summaryOrder lists the standard spending categories first, then any
// learned categories outside the standard set, alphabetically.
func summaryOrder(sum report.Summary) []string {
	seen := make(map[string]bool, len(sum.Totals))
	order := make([]string, 0, len(sum.Totals))
	for _, name := range category.SpendingCategories() {
		if _, ok := sum.Totals[name]; ok {
			order = append(order, name)
			seen[name] = true
		}
	}

	var extras []string
	for name := range sum.Totals {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return append(order, extras...)
}
