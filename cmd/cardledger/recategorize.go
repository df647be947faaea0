package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func recategorizeCmd() *cobra.Command {
	var noLearn bool

	cmd := &cobra.Command{
		Use:   "recategorize <transaction-id> <category>",
		Short: "Correct the category of a stored transaction",
		Long: `Change the category of one transaction. The correction is fed back
into the categorization engine so similar descriptions are categorized
correctly in future imports. Pass --no-learn to update the record only.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			txnID, newCategory := args[0], args[1]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			txn, err := store.GetTransaction(ctx, txnID)
			if err != nil {
				return fmt.Errorf("failed to load transaction: %w", err)
			}

			if err := store.UpdateTransactionCategory(ctx, txnID, newCategory); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			if !noLearn {
				engine := initEngine(ctx, store)
				if err := engine.Learn(ctx, txn.Description, newCategory); err != nil {
					return fmt.Errorf("failed to record correction: %w", err)
				}
			}

			fmt.Printf("%s: %s -> %s\n", txn.Description, txn.Category, newCategory)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noLearn, "no-learn", false, "update the record without training on the correction")

	return cmd
}
