package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compta/internal/core"
	"compta/internal/ledger/memory"
)

func seedLedger(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	ctx := context.Background()

	cats, err := store.ListCategories(ctx)
	require.NoError(t, err)
	ids := map[string]int64{}
	for _, c := range cats {
		ids[c.Name] = c.ID
	}

	cpID, err := store.UpsertCounterparty(ctx, "ACME", "client")
	require.NoError(t, err)

	require.NoError(t, store.BulkInsertTransactions(ctx, []core.Transaction{
		{Date: "2024-01-05", Label: "Prestation", Amount: core.MustMoney("100.5"),
			CategoryID: ids["Ventes"], CounterpartyID: cpID, PaymentMethod: "virement",
			ExternalRef: "FAC-001"},
		{Date: "2024-01-06", Label: "Fournitures", Amount: core.MustMoney("-40.00"),
			CategoryID: ids["Achats"], PaymentMethod: "CB"},
		{Date: "2024-02-10", Label: "Prestation 2", Amount: core.MustMoney("70.00"),
			CategoryID: ids["Ventes"]},
	}))
	return store
}

func TestWriteAllTransactionsCSV(t *testing.T) {
	store := seedLedger(t)
	var buf bytes.Buffer

	require.NoError(t, New(store).WriteAllTransactionsCSV(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{
		"date", "libellé", "montant", "catégorie", "tiers",
		"mode_paiement", "note", "pièce_jointe", "rapproché", "référence_externe",
	}, records[0])

	// Oldest first, amounts fixed to two decimals, names resolved.
	assert.Equal(t, "2024-01-05", records[1][0])
	assert.Equal(t, "100.50", records[1][2])
	assert.Equal(t, "Ventes", records[1][3])
	assert.Equal(t, "ACME", records[1][4])
	assert.Equal(t, "0", records[1][8])
	assert.Equal(t, "FAC-001", records[1][9])

	assert.Equal(t, "-40.00", records[2][2])
	assert.Equal(t, "", records[2][4])
}

func TestWriteReceiptsRegisterCSV(t *testing.T) {
	store := seedLedger(t)
	var buf bytes.Buffer

	require.NoError(t, New(store).WriteReceiptsRegisterCSV(context.Background(), &buf, "2024-01-01", "2024-01-31"))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Date", "Client", "Libellé", "Montant TTC", "Mode de paiement", "Référence",
	}, records[0])

	// The expense and the February receipt are filtered out.
	require.Len(t, records, 2)
	assert.Equal(t, "2024-01-05", records[1][0])
	assert.Equal(t, "ACME", records[1][1])
	assert.Equal(t, "100.50", records[1][3])
	assert.Equal(t, "FAC-001", records[1][5])
}
