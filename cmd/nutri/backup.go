package nutri

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nelsoncalle/nutricion/internal/service"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot and restore the database",
}

var (
	backupDirFlag  string
	backupOutFlag  string
	restoreFrom    string
	restoreForce   bool
	restoreNoCheck bool
)

func backupDir() string {
	if backupDirFlag != "" {
		return backupDirFlag
	}
	return cfg.ResolvedBackupDir()
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the database with a checksum sidecar",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := backupOutFlag
		if target == "" {
			name := "nutri-" + time.Now().Format("20060102-150405") + ".db"
			target = filepath.Join(backupDir(), name)
		}
		return withDB(cmd.Context(), func(sqldb *sql.DB) error {
			info, err := service.CreateBackup(cmd.Context(), sqldb, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot %s\t%d bytes\tsha256 %s\n", info.Path, info.SizeBytes, info.Checksum)
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := service.ListBackups(backupDir())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "PATH\tBYTES\tTAKEN\tSHA256")
		for _, b := range items {
			sum := b.Checksum
			if sum == "" {
				sum = "-"
			}
			fmt.Fprintf(out, "%s\t%d\t%s\t%s\n", b.Path, b.SizeBytes, b.CreatedAt.Local().Format("2006-01-02 15:04"), sum)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the database with a verified snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := service.RestoreOptions{Force: restoreForce, SkipChecksum: restoreNoCheck}
		if err := service.RestoreBackup(cmd.Context(), restoreFrom, cfg.DBPath, opts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", cfg.DBPath, restoreFrom)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCmd.PersistentFlags().StringVar(&backupDirFlag, "dir", "", "Snapshot directory (default: $NUTRI_BACKUP_DIR or backups/ beside the database)")
	backupCreateCmd.Flags().StringVar(&backupOutFlag, "out", "", "Snapshot file path (overrides --dir)")
	backupRestoreCmd.Flags().StringVar(&restoreFrom, "file", "", "Snapshot .db file to restore")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Replace an existing database")
	backupRestoreCmd.Flags().BoolVar(&restoreNoCheck, "no-verify", false, "Restore a snapshot that has no .sha256 sidecar (schema is still checked)")
	_ = backupRestoreCmd.MarkFlagRequired("file")
}
