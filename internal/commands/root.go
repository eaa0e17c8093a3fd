package commands

import (
	"database/sql"

	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/database"
	"github.com/spf13/cobra"
)

var globalConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "Operator tool for the realty CRM",
	Long: `crmctl manages the realty CRM database: it applies the schema, seeds demo
workspaces and prints the plan catalog.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute(cfg *config.Config) error {
	globalConfig = cfg
	return rootCmd.Execute()
}

func openDB() (*sql.DB, error) {
	return database.Open(globalConfig.PostgresURI)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(plansCmd)
}
