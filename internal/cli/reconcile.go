package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"compta/internal/core"
)

var (
	reconcileFrom      string
	reconcileTo        string
	reconcileTolerance string
	reconcileApply     bool
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Find offsetting transaction pairs in a date range",
	Long: `Scan the transactions of a date range and report the ones whose
amount matches an earlier amount within the tolerance. Matched rows are
candidates for reconciliation; with --apply they are marked reconciled.

The tolerance defaults to the reconciliation_tolerance setting.

Example:
  compta reconcile --from 2024-01-01 --to 2024-01-31
  compta reconcile --from 2024-01-01 --to 2024-01-31 --tolerance 0.05 --apply`,
	Run: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileFrom, "from", "", "start date (YYYY-MM-DD) (required)")
	reconcileCmd.Flags().StringVar(&reconcileTo, "to", "", "end date (YYYY-MM-DD) (required)")
	reconcileCmd.Flags().StringVar(&reconcileTolerance, "tolerance", "", "matching tolerance, e.g. 0.50")
	reconcileCmd.Flags().BoolVar(&reconcileApply, "apply", false, "mark the matched transactions reconciled")

	reconcileCmd.MarkFlagRequired("from")
	reconcileCmd.MarkFlagRequired("to")
}

func runReconcile(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	_, store := openStore()
	defer store.Close()

	raw := reconcileTolerance
	if raw == "" {
		var err error
		raw, err = store.Setting(ctx, "reconciliation_tolerance")
		exitOnError(err, "failed to read reconciliation tolerance")
	}
	tolerance, err := core.ParseAmount(raw)
	exitOnError(err, "invalid tolerance")

	txs, err := store.TransactionsByDateRange(ctx, reconcileFrom, reconcileTo)
	exitOnError(err, "failed to load transactions")

	matched := core.Reconcile(txs, tolerance)
	if len(matched) == 0 {
		fmt.Println("No matches found")
		return
	}

	for _, id := range matched {
		fmt.Printf("match: transaction %d\n", id)
	}

	if reconcileApply {
		exitOnError(store.MarkReconciled(ctx, matched), "failed to mark transactions reconciled")
		slog.Info("Reconciliation applied", "count", len(matched))
		fmt.Printf("Marked %d transaction(s) reconciled\n", len(matched))
	} else {
		fmt.Printf("%d match(es), rerun with --apply to mark them reconciled\n", len(matched))
	}
}
