package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ruvan/cardledger/internal/ingest"
	"github.com/ruvan/cardledger/internal/parser"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Import one or more statement files",
		Long: `Import credit card statements from PDF or plain text files.

Each file is parsed page by page, every transaction is categorized, and
the resulting statement is stored in the ledger. File names like
"February 2025.pdf" label the statement with that month and year.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
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

	importer := ingest.NewImporter(parser.New(), initEngine(ctx, store), store)

	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.NewOptions(len(args),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Importing statements..."),
		)
	}

	var failed int
	for _, path := range args {
		st, importErr := importer.ImportFile(ctx, path)
		if importErr != nil {
			failed++
			slog.Error("import failed", "file", path, "error", importErr)
		} else {
			slog.Info("statement imported",
				"file", st.Filename,
				"id", st.ID,
				"transactions", len(st.Transactions))
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(args))
	}
	return nil
}
