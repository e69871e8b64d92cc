package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"compta/internal/core"
)

var (
	listLimit  int
	listOffset int

	addDate          string
	addLabel         string
	addAmount        string
	addCategoryID    int64
	addCounterparty  string
	addPaymentMethod string
	addNote          string
	addAttachment    string
	addExternalRef   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the ledger database",
	Long: `Create the ledger database at the configured path, apply pending
schema migrations and seed the default categories. Safe to run on an
existing ledger.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, store := openStore()
		defer store.Close()
		fmt.Printf("Ledger ready at %s\n", cfg.DBPath)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, most recent first",
	Run:   runList,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Long: `Record a transaction. Positive amounts are income, negative amounts
are expenses. The counterparty is created on first use.

Example:
  compta add --date 2024-01-05 --label "Prestation" --amount 100.00 --category 1 --counterparty ACME`,
	Run: runAdd,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	Run:   runDelete,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "maximum rows to show")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "rows to skip")

	addCmd.Flags().StringVar(&addDate, "date", "", "transaction date (YYYY-MM-DD) (required)")
	addCmd.Flags().StringVar(&addLabel, "label", "", "description (required)")
	addCmd.Flags().StringVar(&addAmount, "amount", "", "signed amount, e.g. -12.50 (required)")
	addCmd.Flags().Int64Var(&addCategoryID, "category", 0, "category id (required)")
	addCmd.Flags().StringVar(&addCounterparty, "counterparty", "", "counterparty name")
	addCmd.Flags().StringVar(&addPaymentMethod, "payment-method", "", "payment method")
	addCmd.Flags().StringVar(&addNote, "note", "", "free-form note")
	addCmd.Flags().StringVar(&addAttachment, "attachment", "", "path to a supporting document")
	addCmd.Flags().StringVar(&addExternalRef, "external-ref", "", "external reference, e.g. an invoice number")

	addCmd.MarkFlagRequired("date")
	addCmd.MarkFlagRequired("label")
	addCmd.MarkFlagRequired("amount")
	addCmd.MarkFlagRequired("category")
}

func runList(cmd *cobra.Command, args []string) {
	_, store := openStore()
	defer store.Close()

	txs, err := store.ListTransactions(cmd.Context(), listLimit, listOffset)
	exitOnError(err, "failed to list transactions")

	for _, tx := range txs {
		mark := " "
		if tx.Reconciled {
			mark = "R"
		}
		fmt.Printf("%6d %s %s %10s  cat:%-3d %s\n",
			tx.ID, mark, tx.Date, tx.Amount.StringFixed(), tx.CategoryID, tx.Label)
	}
	fmt.Printf("%d transaction(s)\n", len(txs))
}

func runAdd(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	_, store := openStore()
	defer store.Close()

	amount, err := core.ParseAmount(addAmount)
	exitOnError(err, "invalid amount")

	tx := core.Transaction{
		Date:          addDate,
		Label:         addLabel,
		Amount:        amount,
		CategoryID:    addCategoryID,
		PaymentMethod: addPaymentMethod,
		Note:          addNote,
		Attachment:    addAttachment,
		ExternalRef:   addExternalRef,
	}

	if addCounterparty != "" {
		cpID, err := store.UpsertCounterparty(ctx, addCounterparty, "")
		exitOnError(err, "failed to record counterparty")
		tx.CounterpartyID = cpID
	}

	id, err := store.InsertTransaction(ctx, tx)
	exitOnError(err, "failed to record transaction")

	slog.Info("Transaction recorded", "id", id)
	fmt.Printf("Recorded transaction %d\n", id)
}

func runDelete(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	exitOnError(err, "invalid transaction id")

	_, store := openStore()
	defer store.Close()

	exitOnError(store.DeleteTransaction(cmd.Context(), id), "failed to delete transaction")
	fmt.Printf("Deleted transaction %d\n", id)
}
