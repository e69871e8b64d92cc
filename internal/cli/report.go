package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"compta/internal/reports"
)

var (
	reportFrom string
	reportTo   string
	reportYear int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Period totals and category breakdown",
	Long: `Show income, expense and balance totals for a date range, with a
per-category breakdown. With --year, show the monthly net balance of that
year instead.

Example:
  compta report --from 2024-01-01 --to 2024-03-31
  compta report --year 2024`,
	Run: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "end date (YYYY-MM-DD)")
	reportCmd.Flags().IntVar(&reportYear, "year", 0, "show monthly balances for this year")
}

func runReport(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	_, store := openStore()
	defer store.Close()

	svc := reports.New(store, store)

	if reportYear != 0 {
		months, err := svc.MonthlyBalance(ctx, reportYear)
		exitOnError(err, "failed to compute monthly balances")
		for _, m := range months {
			fmt.Printf("%s %12s\n", m.Month, m.Net.StringFixed())
		}
		return
	}

	if reportFrom == "" || reportTo == "" {
		exitOnError(fmt.Errorf("--from and --to are required without --year"), "invalid arguments")
	}

	totals, err := svc.TotalsByPeriod(ctx, reportFrom, reportTo)
	exitOnError(err, "failed to compute totals")

	fmt.Printf("Period %s .. %s\n", reportFrom, reportTo)
	fmt.Printf("  income  %12s\n", totals.Income.StringFixed())
	fmt.Printf("  expense %12s\n", totals.Expense.StringFixed())
	fmt.Printf("  balance %12s\n", totals.Balance.StringFixed())

	byCategory, err := svc.TotalsByCategory(ctx, reportFrom, reportTo)
	exitOnError(err, "failed to compute category totals")

	if len(byCategory) > 0 {
		fmt.Println("By category:")
		for _, ct := range byCategory {
			name := ct.Name
			if name == "" {
				name = fmt.Sprintf("(deleted #%d)", ct.CategoryID)
			}
			fmt.Printf("  %-20s %12s\n", name, ct.Amount.StringFixed())
		}
	}
}
