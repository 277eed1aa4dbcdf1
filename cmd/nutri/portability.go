package nutri

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nelsoncalle/nutricion/internal/service"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
	importFormat string
	importIn     string
	importMode   string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all records (json or yaml)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		format, err := service.ParseSnapshotFormat(exportFormat)
		if err != nil {
			return err
		}
		return withDB(cmd.Context(), func(sqldb *sql.DB) error {
			snap, err := service.ExportSnapshot(cmd.Context(), sqldb, time.Now())
			if err != nil {
				return err
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := service.EncodeSnapshot(f, snap, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d weights, %d foods, %d exercises to %s\n", len(snap.Weights), len(snap.Foods), len(snap.Exercises), exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import records (json or yaml)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		format, err := service.ParseSnapshotFormat(importFormat)
		if err != nil {
			return err
		}
		mode := service.ImportMode(strings.ToLower(strings.TrimSpace(importMode)))
		f, err := os.Open(importIn)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		snap, err := service.DecodeSnapshot(f, format)
		if err != nil {
			return err
		}
		return withDB(cmd.Context(), func(sqldb *sql.DB) error {
			report, err := service.ImportSnapshot(cmd.Context(), sqldb, snap, service.ImportOptions{Mode: mode, DryRun: importDryRun})
			if err != nil {
				return err
			}
			prefix := "Imported"
			if importDryRun {
				prefix = "Dry-run validated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s weights=%d foods=%d exercises=%d cleared=%d\n", prefix, report.Weights, report.Foods, report.Exercises, report.Cleared)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or yaml")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	importCmd.Flags().StringVar(&importFormat, "format", "json", "Import format: json or yaml")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().StringVar(&importMode, "mode", string(service.ImportModeAppend), "Import mode: append or replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing data")
}
