package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"compta/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create and restore ledger backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Archive the ledger into the backup directory",
	Run:   runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <archive>",
	Short: "Restore the ledger from a backup archive",
	Long: `Restore the ledger database and settings from a backup archive.
The current database file is overwritten.`,
	Args: cobra.ExactArgs(1),
	Run:  runBackupRestore,
}

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}

func runBackupCreate(cmd *cobra.Command, args []string) {
	cfg, store := openStore()
	defer store.Close()

	path, err := backup.New(store, cfg.DBPath, cfg.BackupDir).Auto(cmd.Context())
	exitOnError(err, "backup failed")
	fmt.Printf("Backup written to %s\n", path)
}

func runBackupRestore(cmd *cobra.Command, args []string) {
	cfg, store := openStore()
	defer store.Close()

	err := backup.New(store, cfg.DBPath, cfg.BackupDir).Restore(cmd.Context(), args[0])
	exitOnError(err, "restore failed")
	fmt.Printf("Restored ledger from %s\n", args[0])
}
