package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compta/internal/export"
)

var (
	exportOut  string
	exportFrom string
	exportTo   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as CSV",
}

var exportAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Export every transaction with resolved names",
	Run:   runExportAll,
}

var exportRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Export the receipts register for a period",
	Long: `Export the receipts register (livre des recettes) for a period,
keeping only the income rows.

Example:
  compta export register --from 2024-01-01 --to 2024-12-31 -o recettes-2024.csv`,
	Run: runExportRegister,
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")

	exportRegisterCmd.Flags().StringVar(&exportFrom, "from", "", "start date (YYYY-MM-DD) (required)")
	exportRegisterCmd.Flags().StringVar(&exportTo, "to", "", "end date (YYYY-MM-DD) (required)")
	exportRegisterCmd.MarkFlagRequired("from")
	exportRegisterCmd.MarkFlagRequired("to")

	exportCmd.AddCommand(exportAllCmd)
	exportCmd.AddCommand(exportRegisterCmd)
}

func exportTarget() (*os.File, func()) {
	if exportOut == "" {
		return os.Stdout, func() {}
	}
	f, err := os.Create(exportOut)
	exitOnError(err, "failed to create output file")
	return f, func() {
		exitOnError(f.Close(), "failed to finish output file")
		fmt.Fprintf(os.Stderr, "Wrote %s\n", exportOut)
	}
}

func runExportAll(cmd *cobra.Command, args []string) {
	_, store := openStore()
	defer store.Close()

	out, done := exportTarget()
	exitOnError(export.New(store).WriteAllTransactionsCSV(cmd.Context(), out), "export failed")
	done()
}

func runExportRegister(cmd *cobra.Command, args []string) {
	_, store := openStore()
	defer store.Close()

	out, done := exportTarget()
	exitOnError(export.New(store).WriteReceiptsRegisterCSV(cmd.Context(), out, exportFrom, exportTo), "export failed")
	done()
}
