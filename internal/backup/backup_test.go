package backup

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compta/internal/core"
	"compta/internal/ledger/sqlite"
)

func TestCreateAndRestore(t *testing.T) {
	ctx := context.Background()

	// Source ledger with one transaction and a customized setting.
	srcPath := filepath.Join(t.TempDir(), "compta.db")
	src, err := sqlite.New(srcPath)
	require.NoError(t, err)

	cats, err := src.ListCategories(ctx)
	require.NoError(t, err)
	_, err = src.InsertTransaction(ctx, core.Transaction{
		Date: "2024-01-05", Label: "Prestation", Amount: core.MustMoney("100.00"), CategoryID: cats[0].ID,
	})
	require.NoError(t, err)
	require.NoError(t, src.SetSetting(ctx, "reconciliation_tolerance", "0.25"))

	backupDir := t.TempDir()
	archive, err := New(src, srcPath, backupDir).Auto(ctx)
	require.NoError(t, err)
	assert.FileExists(t, archive)
	require.NoError(t, src.Close())

	// Restore into a fresh ledger elsewhere.
	destPath := filepath.Join(t.TempDir(), "compta.db")
	dest, err := sqlite.New(destPath)
	require.NoError(t, err)

	require.NoError(t, New(dest, destPath, backupDir).Restore(ctx, archive))
	require.NoError(t, dest.Close())

	// Reopen to see the restored rows.
	restored, err := sqlite.New(destPath)
	require.NoError(t, err)
	defer restored.Close()

	txs, err := restored.ListTransactions(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Prestation", txs[0].Label)

	tol, err := restored.Setting(ctx, "reconciliation_tolerance")
	require.NoError(t, err)
	assert.Equal(t, "0.25", tol)
}

func TestRestoreRejectsArchiveWithoutDatabase(t *testing.T) {
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "compta.db")
	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer store.Close()

	// A zip that only carries metadata is not a usable backup.
	bogus := filepath.Join(t.TempDir(), "bogus.zip")
	writeBogusArchive(t, bogus)

	err = New(store, dbPath, t.TempDir()).Restore(ctx, bogus)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not contain database file")
}

func writeBogusArchive(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("metadata.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"settings":{},"categories":[]}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}
