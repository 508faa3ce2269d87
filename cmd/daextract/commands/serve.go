package commands

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planport/daextract/store"
	"github.com/planport/daextract/web"
)

// serve: run the read-only record API over the database.
func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored records over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := resolveDatabaseURL()
			if dsn == "" {
				return fmt.Errorf("database required: set --database-url or $DATABASE_URL")
			}

			s, err := store.Open(dsn)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := s.Init(ctx); err != nil {
				return err
			}

			log.Printf("serving on %s", addr)
			err = web.NewServer(addr, s).ListenAndServe(ctx)
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
