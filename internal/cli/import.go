package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"compta/internal/config"
	"compta/internal/importer"
	"compta/internal/ledger/sqlite"
)

var (
	importFile      string
	importMapping   string
	importPreview   bool
	importDelimiter string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import transactions from a bank CSV export",
	Long: `Import transactions from a bank CSV export using a mapping profile.

The mapping profile is a YAML file naming the CSV columns to read and the
category to assign, for example:

  date_column: Date
  label_column: Libellé
  amount_column: Montant
  category_id: 5
  invert_amount: true

With --preview the file is only displayed, nothing is written.

Example:
  compta import --file releve.csv --mapping bnp.yaml --preview
  compta import --file releve.csv --mapping bnp.yaml`,
	Run: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "CSV file to import (required)")
	importCmd.Flags().StringVar(&importMapping, "mapping", "", "YAML mapping profile (required unless --preview)")
	importCmd.Flags().BoolVar(&importPreview, "preview", false, "show the first rows without importing")
	importCmd.Flags().StringVar(&importDelimiter, "delimiter", "", "field delimiter (default from configuration)")

	importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	cfg := config.Load()
	exitOnError(cfg.Validate(), "invalid configuration")

	delimiter := cfg.CSVDelimiter
	if importDelimiter != "" {
		delimiter = []rune(importDelimiter)[0]
	}
	im := importer.New(delimiter)

	f, err := os.Open(importFile)
	exitOnError(err, "failed to open CSV file")
	defer f.Close()

	if importPreview {
		rows, err := im.Preview(f, 10)
		exitOnError(err, "failed to read CSV file")
		for i, row := range rows {
			fmt.Printf("row %d:\n", i+1)
			for col, val := range row {
				fmt.Printf("  %s = %s\n", col, val)
			}
		}
		fmt.Printf("%d row(s) shown\n", len(rows))
		return
	}

	if importMapping == "" {
		exitOnError(fmt.Errorf("--mapping is required"), "invalid arguments")
	}
	mapping, err := importer.LoadMapping(importMapping)
	exitOnError(err, "failed to load mapping profile")

	txs, err := im.Parse(f, mapping)
	exitOnError(err, "failed to parse CSV file")

	store, err := sqlite.New(cfg.DBPath)
	exitOnError(err, "failed to open ledger database")
	defer store.Close()

	exitOnError(store.BulkInsertTransactions(ctx, txs), "failed to import transactions")

	slog.Info("Import complete", "file", importFile, "count", len(txs))
	fmt.Printf("Imported %d transaction(s)\n", len(txs))
}
