// Package commands implements the daextract CLI.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var databaseURL string

func Execute() error {
	root := &cobra.Command{
		Use:   "daextract",
		Short: "Reconstruct development-application records from council register documents",
	}

	root.PersistentFlags().StringVar(&databaseURL, "database-url", "",
		"Postgres DSN (default $DATABASE_URL)")

	root.AddCommand(linksCmd(), scrapeCmd(), serveCmd(), recognizeCmd())
	return root.Execute()
}

// resolveDatabaseURL prefers the flag over the environment.
func resolveDatabaseURL() string {
	if databaseURL != "" {
		return databaseURL
	}
	return os.Getenv("DATABASE_URL")
}
