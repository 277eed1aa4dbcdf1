package nutri

import (
	"fmt"

	"github.com/nelsoncalle/nutricion/internal/db"
	"github.com/nelsoncalle/nutricion/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local nutri database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s *store.Store) error {
			if err := s.Err(); err != nil {
				return err
			}
			sqldb, err := s.Handle()
			if err != nil {
				return err
			}
			version, _, err := db.SchemaVersion(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized nutri database at %s (schema v%d)\n", cfg.DBPath, version)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
