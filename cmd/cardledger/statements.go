package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func statementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "List and inspect imported statements",
	}

	cmd.AddCommand(statementsListCmd())
	cmd.AddCommand(statementsShowCmd())

	return cmd
}

func statementsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all imported statements",
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

			statements, err := store.ListStatements(ctx)
			if err != nil {
				return fmt.Errorf("failed to list statements: %w", err)
			}

			if len(statements) == 0 {
				fmt.Println("No statements imported yet. Use 'cardledger import' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() {
				if flushErr := w.Flush(); flushErr != nil {
					slog.Error("failed to flush table writer", "error", flushErr)
				}
			}()

			fmt.Fprintln(w, "ID\tFILE\tPERIOD\tTRANSACTIONS\tUPLOADED")
			for _, st := range statements {
				fmt.Fprintf(w, "%s\t%s\t%04d-%02d\t%d\t%s\n",
					st.ID,
					st.Filename,
					st.Year, st.Month,
					len(st.Transactions),
					st.UploadedAt.Format("2006-01-02 15:04"))
			}

			return nil
		},
	}
}

func statementsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <statement-id>",
		Short: "Show the transactions on one statement",
		Args:  cobra.ExactArgs(1),
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

			st, err := store.GetStatement(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load statement: %w", err)
			}

			fmt.Printf("%s (%04d-%02d), %d transactions\n\n",
				st.Filename, st.Year, st.Month, len(st.Transactions))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() {
				if flushErr := w.Flush(); flushErr != nil {
					slog.Error("failed to flush table writer", "error", flushErr)
				}
			}()

			fmt.Fprintln(w, "ID\tPOSTED\tDESCRIPTION\tAMOUNT\tCATEGORY")
			for _, txn := range st.Transactions {
				amount := txn.Amount.String()
				if txn.IsCredit {
					amount += " CR"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					txn.ID,
					txn.PostDate.Format("2006-01-02"),
					txn.Description,
					amount,
					txn.Category)
			}

			return nil
		},
	}
}
